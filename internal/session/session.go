// Package session plays one round: it gathers moves, resolves the winner and
// folds the result into the persisted history.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/aaronzipp/rps/internal/game"
	"github.com/aaronzipp/rps/internal/models"
	"github.com/aaronzipp/rps/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MoveSource asks a human player for a move. It keeps asking until it has one.
type MoveSource interface {
	ReadMove(ctx context.Context, player string) (models.Move, error)
}

// Reporter shows round progress to the players
type Reporter interface {
	BotChose(bot string) error
	Outcome(entries []models.RoundEntry, winner int) error
	Scores(entries []models.RoundEntry, history store.History) error
}

// Session holds the collaborators for playing rounds
type Session struct {
	Store    store.Backend
	Moves    MoveSource
	Reporter Reporter
	Rand     game.Source
	BotName  string
	Shuffle  bool
	Logger   *zap.Logger
}

// Result describes a finished round
type Result struct {
	RoundID string
	Entries []models.RoundEntry
	Winner  int // models.NoWinner on a tie
}

// WinningEntry returns the winning entry, or false on a tie
func (r Result) WinningEntry() (models.RoundEntry, bool) {
	if r.Winner == models.NoWinner || r.Winner < 0 || r.Winner >= len(r.Entries) {
		return models.RoundEntry{}, false
	}
	return r.Entries[r.Winner], true
}

func (s *Session) validate() error {
	switch {
	case s.Store == nil:
		return errors.New("history store is required")
	case s.Moves == nil:
		return errors.New("move source is required")
	case s.Reporter == nil:
		return errors.New("reporter is required")
	case s.Rand == nil:
		return errors.New("random source is required")
	}
	return nil
}

// PlayRound plays a single round between the two named players.
//
// Humans are asked for their moves in seat order. When one seat is the bot it
// moves last, countering the human it faces from that human's history. The
// updated history is saved before the scores are reported.
func (s *Session) PlayRound(ctx context.Context, names [models.RoundSize]string) (Result, error) {
	if err := s.validate(); err != nil {
		return Result{}, err
	}
	if err := game.CheckPlayers(names); err != nil {
		return Result{}, err
	}
	botName := s.BotName
	if botName == "" {
		botName = game.DefaultBotName
	}

	roundID := uuid.NewString()
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("round_id", roundID))

	history, err := s.Store.Load(ctx)
	if err != nil {
		return Result{}, err
	}

	seats := names
	if s.Shuffle {
		seats = game.ShuffleSeats(seats, s.Rand)
	}
	logger.Info("round started",
		zap.String("seat_1", seats[0]),
		zap.String("seat_2", seats[1]),
	)

	entries := make([]models.RoundEntry, 0, models.RoundSize)
	var bot string
	for _, name := range seats {
		if game.IsBot(name, botName) {
			bot = name
			continue
		}
		move, err := s.Moves.ReadMove(ctx, name)
		if err != nil {
			return Result{}, fmt.Errorf("read move for %s: %w", name, err)
		}
		entries = append(entries, models.RoundEntry{Player: name, Move: move})
	}

	if bot != "" {
		opponent := entries[0].Player
		move := game.ChooseCounterMove(history, opponent, s.Rand)
		entries = append(entries, models.RoundEntry{Player: bot, Move: move})
		if err := s.Reporter.BotChose(bot); err != nil {
			return Result{}, fmt.Errorf("report bot choice: %w", err)
		}
		logger.Debug("bot chose",
			zap.String("opponent", models.Identity(opponent)),
			zap.Stringer("move", move),
		)
	}

	winner, err := game.Resolve(entries)
	if err != nil {
		return Result{}, err
	}
	if err := s.Reporter.Outcome(entries, winner); err != nil {
		return Result{}, fmt.Errorf("report outcome: %w", err)
	}

	if err := history.RecordRound(entries, winner); err != nil {
		return Result{}, err
	}
	if err := s.Store.Save(ctx, history); err != nil {
		return Result{}, fmt.Errorf("save history: %w", err)
	}
	logger.Info("round recorded",
		zap.Int("winner", winner),
		zap.Stringer("move_1", entries[0].Move),
		zap.Stringer("move_2", entries[1].Move),
	)

	result := Result{RoundID: roundID, Entries: entries, Winner: winner}
	// The round is already saved, so the result is returned with the error.
	if err := s.Reporter.Scores(entries, history); err != nil {
		return result, fmt.Errorf("report scores: %w", err)
	}
	return result, nil
}

// Standings loads the history for display without playing
func (s *Session) Standings(ctx context.Context) (store.History, error) {
	if s.Store == nil {
		return nil, errors.New("history store is required")
	}
	return s.Store.Load(ctx)
}
