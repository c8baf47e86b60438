package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/web/templates/layout"
)

// LeaderboardData is the view model for the leaderboard page
type LeaderboardData struct {
	layout.PageData
	Entries []model.RankEntry
}

// Leaderboard renders the ranking table
func Leaderboard(data LeaderboardData) templ.Component {
	return layout.Base(data.PageData, leaderboardBody(data.Entries))
}

func leaderboardBody(entries []model.RankEntry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Ranking</h1>`); err != nil {
			return err
		}
		if len(entries) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No games yet.</p>`)
			return err
		}

		if _, err := io.WriteString(w, `<table id="ranking"><thead><tr><th>#</th><th>Game</th><th>Player</th><th>Attempts</th><th>Minutes</th><th>Score</th><th>Status</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, e := range entries {
			status := "playing"
			if e.IsOver {
				status = "finished"
			}
			row := fmt.Sprintf(
				`<tr class="entry %s"><td class="position">%d</td><td class="game"><a href="/games/%s">%s</a></td><td class="player">%s</td><td class="attempts">%d</td><td class="minutes">%d</td><td class="score">%s</td><td class="status">%s</td></tr>`,
				status,
				e.Position,
				e.GameID.String(), e.GameID.String(),
				templ.EscapeString(e.Owner),
				e.AttemptCount,
				e.ElapsedMinutes,
				strconv.FormatFloat(e.EvaluationScore, 'f', 1, 64),
				status,
			)
			if _, err := io.WriteString(w, row); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}
