package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/web/templates/layout"
)

// GuessRow is one scored guess in a game's history
type GuessRow struct {
	Attempt     int
	Combination string
	Score       model.Score
}

// GameData is the view model for a single game page
type GameData struct {
	layout.PageData
	Game *model.GameSession
	Rows []GuessRow
}

// Game renders one session with its scored guesses. The secret is shown
// only once the game is over.
func Game(data GameData) templ.Component {
	return layout.Base(data.PageData, gameBody(data))
}

func gameBody(data GameData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		g := data.Game
		out := fmt.Sprintf(`<h1>Game %s</h1><dl class="game" data-state="%s"><dt>Player</dt><dd class="player">%s</dd><dt>Attempts</dt><dd class="attempts">%d</dd>`,
			g.ID.String(), templ.EscapeString(string(g.State())), templ.EscapeString(g.Owner), g.AttemptCount)
		if g.IsOver {
			out += `<dt>Secret</dt><dd class="secret">` + templ.EscapeString(g.Secret) + `</dd>`
		}
		out += `</dl>`
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}

		if len(data.Rows) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No guesses yet.</p>`)
			return err
		}

		if _, err := io.WriteString(w, `<table id="history"><thead><tr><th>#</th><th>Combination</th><th>Toros</th><th>Vacas</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range data.Rows {
			line := fmt.Sprintf(`<tr class="guess"><td class="attempt">%d</td><td class="combination">%s</td><td class="toros">%d</td><td class="vacas">%d</td></tr>`,
				row.Attempt, templ.EscapeString(row.Combination), row.Score.Bulls, row.Score.Cows)
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}
