package session

import (
	"context"
	"errors"
	"testing"

	"github.com/aaronzipp/rps/internal/game"
	"github.com/aaronzipp/rps/internal/models"
	"github.com/aaronzipp/rps/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memoryStore struct {
	history store.History
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryStore) Load(context.Context) (store.History, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	h := store.History{}
	for k, v := range m.history {
		h[k] = v
	}
	return h, nil
}

func (m *memoryStore) Save(_ context.Context, h store.History) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.history = h
	return nil
}

func (m *memoryStore) Close() error { return nil }

type scriptedMoves struct {
	moves map[string]models.Move
	asked []string
}

func (s *scriptedMoves) ReadMove(_ context.Context, player string) (models.Move, error) {
	s.asked = append(s.asked, player)
	move, ok := s.moves[player]
	if !ok {
		return models.MoveUnspecified, errors.New("no scripted move")
	}
	return move, nil
}

type recordingReporter struct {
	bot      string
	outcomes []int
	scored   int
	err      error
}

func (r *recordingReporter) BotChose(bot string) error {
	r.bot = bot
	return nil
}

func (r *recordingReporter) Outcome(_ []models.RoundEntry, winner int) error {
	r.outcomes = append(r.outcomes, winner)
	return r.err
}

func (r *recordingReporter) Scores([]models.RoundEntry, store.History) error {
	r.scored++
	return nil
}

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func newSession(st *memoryStore, moves map[string]models.Move) (*Session, *scriptedMoves, *recordingReporter) {
	src := &scriptedMoves{moves: moves}
	rep := &recordingReporter{}
	return &Session{
		Store:    st,
		Moves:    src,
		Reporter: rep,
		Rand:     fixedSource(0.9),
		BotName:  game.DefaultBotName,
	}, src, rep
}

func TestPlayRoundHumans(t *testing.T) {
	st := &memoryStore{}
	sess, src, rep := newSession(st, map[string]models.Move{"a": models.Rock, "b": models.Scissors})

	res, err := sess.PlayRound(context.Background(), [2]string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Winner)
	assert.NotEmpty(t, res.RoundID)
	assert.Equal(t, []string{"a", "b"}, src.asked)
	assert.Equal(t, []int{0}, rep.outcomes)
	assert.Equal(t, 1, rep.scored)
	assert.Empty(t, rep.bot)
	assert.Equal(t, 1, st.saves)
	assert.Equal(t, models.PlayerStats{Wins: 1, Games: 1, Rock: 1}, st.history["a"])
	assert.Equal(t, models.PlayerStats{Games: 1, Scissors: 1}, st.history["b"])

	winner, ok := res.WinningEntry()
	require.True(t, ok)
	assert.Equal(t, "a", winner.Player)
}

func TestPlayRoundTie(t *testing.T) {
	st := &memoryStore{}
	sess, _, _ := newSession(st, map[string]models.Move{"a": models.Paper, "b": models.Paper})

	res, err := sess.PlayRound(context.Background(), [2]string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, models.NoWinner, res.Winner)
	_, ok := res.WinningEntry()
	assert.False(t, ok)
	assert.Equal(t, uint(1), st.history["a"].Ties)
	assert.Equal(t, uint(1), st.history["b"].Ties)
	assert.Zero(t, st.history["a"].Wins)
}

func TestPlayRoundBotCountersHuman(t *testing.T) {
	st := &memoryStore{history: store.History{"alice": {Paper: 4, Games: 4}}}
	sess, src, rep := newSession(st, map[string]models.Move{"Alice": models.Paper})

	res, err := sess.PlayRound(context.Background(), [2]string{"Mafaldo", "Alice"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice"}, src.asked)
	assert.Equal(t, "Mafaldo", rep.bot)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "Alice", res.Entries[0].Player)
	assert.Equal(t, models.RoundEntry{Player: "Mafaldo", Move: models.Scissors}, res.Entries[1])
	assert.Equal(t, 1, res.Winner)
	assert.Equal(t, models.PlayerStats{Wins: 1, Games: 1, Scissors: 1}, st.history["mafaldo"])
	assert.Equal(t, models.PlayerStats{Paper: 5, Games: 5}, st.history["alice"])
}

func TestPlayRoundShufflesSeats(t *testing.T) {
	st := &memoryStore{}
	sess, src, _ := newSession(st, map[string]models.Move{"a": models.Rock, "b": models.Paper})
	sess.Shuffle = true
	sess.Rand = fixedSource(0.1)

	res, err := sess.PlayRound(context.Background(), [2]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, src.asked)
	assert.Equal(t, 0, res.Winner)
	assert.Equal(t, "b", res.Entries[0].Player)
}

func TestPlayRoundRejectsSamePlayer(t *testing.T) {
	st := &memoryStore{}
	sess, src, _ := newSession(st, nil)

	_, err := sess.PlayRound(context.Background(), [2]string{"Bob", "BOB"})
	assert.ErrorIs(t, err, game.ErrSamePlayer)
	assert.Empty(t, src.asked)
	assert.Zero(t, st.saves)
}

func TestPlayRoundSurfacesFormatError(t *testing.T) {
	loadErr := &store.FormatError{Path: "h.json", Err: store.ErrInvalidShape}
	st := &memoryStore{loadErr: loadErr}
	sess, src, _ := newSession(st, nil)

	_, err := sess.PlayRound(context.Background(), [2]string{"a", "b"})
	var formatErr *store.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Same(t, loadErr, formatErr)
	assert.Empty(t, src.asked)
}

func TestPlayRoundSaveFailure(t *testing.T) {
	saveErr := errors.New("disk full")
	st := &memoryStore{saveErr: saveErr}
	sess, _, rep := newSession(st, map[string]models.Move{"a": models.Rock, "b": models.Rock})

	_, err := sess.PlayRound(context.Background(), [2]string{"a", "b"})
	assert.ErrorIs(t, err, saveErr)
	assert.Zero(t, rep.scored)
}

func TestPlayRoundMoveFailure(t *testing.T) {
	st := &memoryStore{}
	sess, _, _ := newSession(st, map[string]models.Move{"a": models.Rock})

	_, err := sess.PlayRound(context.Background(), [2]string{"a", "b"})
	assert.Error(t, err)
	assert.Zero(t, st.saves)
}

func TestPlayRoundRequiresCollaborators(t *testing.T) {
	_, err := (&Session{}).PlayRound(context.Background(), [2]string{"a", "b"})
	assert.Error(t, err)
}

func TestPlayRoundLogsRoundID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	st := &memoryStore{}
	sess, _, _ := newSession(st, map[string]models.Move{"a": models.Rock, "b": models.Paper})
	sess.Logger = zap.New(core)

	res, err := sess.PlayRound(context.Background(), [2]string{"a", "b"})
	require.NoError(t, err)

	recorded := logs.FilterMessage("round recorded").All()
	require.Len(t, recorded, 1)
	assert.Equal(t, res.RoundID, recorded[0].ContextMap()["round_id"])
}

func TestStandings(t *testing.T) {
	st := &memoryStore{history: store.History{"a": {Wins: 1, Games: 1, Rock: 1}}}
	sess, _, _ := newSession(st, nil)

	h, err := sess.Standings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, st.history, h)
}

func TestPlayRoundStopsWhenReportFails(t *testing.T) {
	st := &memoryStore{}
	sess, _, rep := newSession(st, map[string]models.Move{"a": models.Rock, "b": models.Scissors})
	rep.err = errors.New("broken pipe")

	_, err := sess.PlayRound(context.Background(), [2]string{"a", "b"})
	require.ErrorIs(t, err, rep.err)
	assert.Zero(t, st.saves)
	assert.Zero(t, rep.scored)
}
