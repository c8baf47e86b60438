// Package ranking computes the cross-game leaderboard.
//
// Rankings are derived from a snapshot of all sessions and a single instant;
// the input sessions are never modified.
package ranking

import (
	"sort"
	"time"

	"github.com/mcoot/torosvacas/internal/model"
)

// EvaluationScore is elapsed minutes halved plus the attempt count
func EvaluationScore(elapsedMinutes, attempts int) float64 {
	return float64(elapsedMinutes)/2 + float64(attempts)
}

// Rank orders sessions for the leaderboard. Finished sessions come first,
// then every group is ordered by evaluation score, highest first. Equal keys
// keep creation order (ascending game id).
func Rank(sessions []*model.GameSession, now time.Time) []model.RankEntry {
	entries := make([]model.RankEntry, 0, len(sessions))
	for _, s := range sessions {
		elapsed := s.ElapsedMinutes(now)
		entries = append(entries, model.RankEntry{
			GameID:          s.ID,
			Owner:           s.Owner,
			IsOver:          s.IsOver,
			AttemptCount:    s.AttemptCount,
			ElapsedMinutes:  elapsed,
			EvaluationScore: EvaluationScore(elapsed, s.AttemptCount),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GameID < entries[j].GameID
	})
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsOver != b.IsOver {
			return a.IsOver
		}
		return a.EvaluationScore > b.EvaluationScore
	})

	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

// Position returns the 1-based rank of id, or 0 when it is not ranked
func Position(entries []model.RankEntry, id model.GameID) int {
	for _, e := range entries {
		if e.GameID == id {
			return e.Position
		}
	}
	return 0
}
