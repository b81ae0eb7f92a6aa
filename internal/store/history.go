package store

import (
	"fmt"
	"sort"

	"github.com/aaronzipp/rps/internal/models"
)

// History maps a player identity to that player's cumulative stats
type History map[string]models.PlayerStats

// Stats returns the record for the named player. Unknown players get a zero record.
func (h History) Stats(name string) (models.PlayerStats, bool) {
	s, ok := h[models.Identity(name)]
	return s, ok
}

// Identities returns every stored identity in sorted order
func (h History) Identities() []string {
	ids := make([]string, 0, len(h))
	for id := range h {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RecordRound folds one resolved round into the history. Each participant gets
// one more game and one more throw of the move it played. A winner of
// models.NoWinner counts a tie for both; otherwise only the winner's wins grow.
//
// The round is checked before anything is written, so an error leaves h untouched.
// Persisting the result is up to the caller.
func (h History) RecordRound(entries []models.RoundEntry, winner int) error {
	if len(entries) != models.RoundSize {
		return &models.InvalidRoundError{Count: len(entries)}
	}
	if winner != models.NoWinner && (winner < 0 || winner >= len(entries)) {
		return fmt.Errorf("record round: winner index %d out of range", winner)
	}
	for _, e := range entries {
		if !e.Move.Valid() {
			return fmt.Errorf("record round %q: %w", e.Player, models.ErrInvalidMove)
		}
	}

	for i, e := range entries {
		id := e.Identity()
		stats := h[id]
		stats.AddGame(e.Move)
		switch {
		case winner == models.NoWinner:
			stats.Ties++
		case winner == i:
			stats.Wins++
		}
		h[id] = stats
	}
	return nil
}
