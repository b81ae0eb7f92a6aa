package game

import (
	"github.com/aaronzipp/rps/internal/models"
	"github.com/aaronzipp/rps/internal/store"
)

// Source supplies uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// Distribution holds the chance of throwing each counter move
type Distribution struct {
	Scissors float64
	Rock     float64
	Paper    float64
}

// CounterDistribution mirrors the opponent's habits: each counter move is drawn
// as often as the opponent has thrown the move it beats. With no games on
// record every counter is equally likely.
func CounterDistribution(opponent models.PlayerStats) Distribution {
	if opponent.Games == 0 {
		return Distribution{
			Scissors: UniformProbability,
			Rock:     UniformProbability,
			Paper:    UniformProbability,
		}
	}
	games := float64(opponent.Games)
	return Distribution{
		Scissors: float64(opponent.Paper) / games,
		Rock:     float64(opponent.Scissors) / games,
		Paper:    float64(opponent.Rock) / games,
	}
}

// Pick maps u onto consecutive bands for scissors, rock and paper. Paper takes
// everything past the first two bands, including rounding slack.
func (d Distribution) Pick(u float64) models.Move {
	if u < d.Scissors {
		return models.Scissors
	}
	if u < d.Scissors+d.Rock {
		return models.Rock
	}
	return models.Paper
}

// ChooseCounterMove picks the adaptive player's move against opponent, who is
// looked up in history by identity. The history is only read.
func ChooseCounterMove(history store.History, opponent string, rng Source) models.Move {
	stats, _ := history.Stats(opponent)
	return CounterDistribution(stats).Pick(rng.Float64())
}
