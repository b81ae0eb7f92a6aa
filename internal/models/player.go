package models

import "strings"

// PlayerStats tracks a player's cumulative record across games
type PlayerStats struct {
	Ties     uint `json:"ties"`
	Wins     uint `json:"wins"`
	Rock     uint `json:"rock"`
	Paper    uint `json:"paper"`
	Scissors uint `json:"scissors"`
	Games    uint `json:"games"`
}

// StatsFields are the keys every persisted PlayerStats record must carry.
var StatsFields = [...]string{"ties", "wins", "rock", "paper", "scissors", "games"}

// Losses is derived; it is never stored.
func (s PlayerStats) Losses() uint {
	if s.Wins+s.Ties > s.Games {
		return 0
	}
	return s.Games - s.Wins - s.Ties
}

// Played returns how many times the player threw m
func (s PlayerStats) Played(m Move) uint {
	switch m {
	case Rock:
		return s.Rock
	case Paper:
		return s.Paper
	case Scissors:
		return s.Scissors
	default:
		return 0
	}
}

// AddGame counts one more game played with m. Invalid moves are ignored.
func (s *PlayerStats) AddGame(m Move) {
	switch m {
	case Rock:
		s.Rock++
	case Paper:
		s.Paper++
	case Scissors:
		s.Scissors++
	default:
		return
	}
	s.Games++
}

// Identity returns the history key for a player name: the name lowercased
// with strings.ToLower. Surrounding whitespace is kept, so "bob" and " bob"
// are different players.
func Identity(name string) string {
	return fold(name)
}

// fold is the single case rule for names and move input.
func fold(s string) string {
	return strings.ToLower(s)
}
