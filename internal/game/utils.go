package game

import (
	"errors"
	"strings"

	"github.com/aaronzipp/rps/internal/models"
)

// ErrSamePlayer indicates both seats name the same player.
var ErrSamePlayer = errors.New("players cannot play themselves, please enter two distinct player names")

// ErrMissingPlayer indicates an empty player name.
var ErrMissingPlayer = errors.New("player name is required")

// CheckPlayers verifies both names are present and fold to different identities
func CheckPlayers(names [models.RoundSize]string) error {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return ErrMissingPlayer
		}
	}
	if models.Identity(names[0]) == models.Identity(names[1]) {
		return ErrSamePlayer
	}
	return nil
}

// ShuffleSeats returns the names in random seat order
func ShuffleSeats(names [models.RoundSize]string, rng Source) [models.RoundSize]string {
	if rng.Float64() < 0.5 {
		names[0], names[1] = names[1], names[0]
	}
	return names
}

// IsBot reports whether name is the adaptive player's identity
func IsBot(name, botName string) bool {
	return models.Identity(name) == models.Identity(botName)
}
