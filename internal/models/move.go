package models

import (
	"errors"
	"strings"
)

// Move is one of the three hand signs.
type Move uint8

const (
	MoveUnspecified Move = iota
	Rock
	Paper
	Scissors
)

// Moves lists the hand signs in cycle order. Each move beats the one before it.
var Moves = [...]Move{Rock, Paper, Scissors}

func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "unspecified"
	}
}

// Valid reports whether m is one of the three hand signs
func (m Move) Valid() bool {
	return m >= Rock && m <= Scissors
}

// index returns the position of m in Moves, or -1
func (m Move) index() int {
	if !m.Valid() {
		return -1
	}
	return int(m - Rock)
}

// Beats reports whether m is the cyclic successor of other, i.e. m wins against other.
func (m Move) Beats(other Move) bool {
	i := other.index()
	if i < 0 || !m.Valid() {
		return false
	}
	return Moves[(i+1)%len(Moves)] == m
}

// Beats reports whether a wins against b.
func Beats(a, b Move) bool {
	return a.Beats(b)
}

// ResolvePrefix matches input case-insensitively against the start of each move
// name in cycle order and returns the first hit. Empty input never matches.
func ResolvePrefix(input string) (Move, bool) {
	if input == "" {
		return MoveUnspecified, false
	}
	prefix := fold(input)
	for _, m := range Moves {
		if strings.HasPrefix(m.String(), prefix) {
			return m, true
		}
	}
	return MoveUnspecified, false
}

// ParseMove returns the move with exactly the given name
func ParseMove(name string) (Move, bool) {
	for _, m := range Moves {
		if m.String() == name {
			return m, true
		}
	}
	return MoveUnspecified, false
}

// ErrInvalidMove indicates a value outside the three hand signs.
var ErrInvalidMove = errors.New("move must be rock, paper, or scissors")
