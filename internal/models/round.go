package models

import "fmt"

const (
	// RoundSize is the number of participants in every round
	RoundSize = 2

	// NoWinner is the winner index reported for a tie
	NoWinner = -1
)

// RoundEntry is one participant's move in a single round
type RoundEntry struct {
	Player string // display name as entered
	Move   Move
}

// Identity returns the history key for the entry's player
func (e RoundEntry) Identity() string {
	return Identity(e.Player)
}

// InvalidRoundError reports a round that does not have exactly two participants.
type InvalidRoundError struct {
	Count int
}

func (e *InvalidRoundError) Error() string {
	return fmt.Sprintf("round needs %d participants, got %d", RoundSize, e.Count)
}
