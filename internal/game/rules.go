package game

import (
	"fmt"

	"github.com/aaronzipp/rps/internal/models"
)

// Resolve returns the index of the winning entry, or models.NoWinner when both
// threw the same move. Entry order is significant and is never rearranged.
//
// A round with any count other than two participants is a caller bug and yields
// *models.InvalidRoundError rather than a tie.
func Resolve(entries []models.RoundEntry) (int, error) {
	if len(entries) != models.RoundSize {
		return models.NoWinner, &models.InvalidRoundError{Count: len(entries)}
	}
	for _, e := range entries {
		if !e.Move.Valid() {
			return models.NoWinner, fmt.Errorf("resolve %q: %w", e.Player, models.ErrInvalidMove)
		}
	}
	for i := range entries {
		if entries[i].Move.Beats(entries[1-i].Move) {
			return i, nil
		}
	}
	return models.NoWinner, nil
}
