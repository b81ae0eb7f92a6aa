// Package sqlite provides a SQLite-backed history store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aaronzipp/rps/internal/models"
	"github.com/aaronzipp/rps/internal/store"
	"github.com/aaronzipp/rps/internal/store/sqlite/migrations"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store persists player history in SQLite.
type Store struct {
	sqlDB  *sql.DB
	path   string
	logger *zap.Logger
}

var _ store.Backend = (*Store)(nil)

// Open opens a SQLite history store and applies embedded migrations. A file
// that is not a usable database is reported as a *store.FormatError.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, openError(ctx, cleanPath, fmt.Errorf("ping sqlite db: %w", err))
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, openError(ctx, cleanPath, fmt.Errorf("run migrations: %w", err))
	}
	return &Store{sqlDB: sqlDB, path: cleanPath, logger: logger}, nil
}

// openError reports a failure to read an existing database as a
// *store.FormatError. Cancellation passes through unchanged.
func openError(ctx context.Context, path string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &store.FormatError{Path: path, Err: err}
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load reads every player record. A row with a negative counter is a *store.FormatError.
func (s *Store) Load(ctx context.Context) (store.History, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT identity, ties, wins, rock, paper, scissors, games FROM player_stats`)
	if err != nil {
		return nil, &store.FormatError{Path: s.path, Err: fmt.Errorf("query player stats: %w", err)}
	}
	defer rows.Close()

	history := store.History{}
	for rows.Next() {
		var (
			identity string
			counts   [6]int64
		)
		if err := rows.Scan(&identity, &counts[0], &counts[1], &counts[2], &counts[3], &counts[4], &counts[5]); err != nil {
			return nil, &store.FormatError{Path: s.path, Err: fmt.Errorf("scan player stats: %w", err)}
		}
		for _, c := range counts {
			if c < 0 {
				return nil, &store.FormatError{Path: s.path, Err: fmt.Errorf("player %q: %w", identity, store.ErrInvalidShape)}
			}
		}
		history[identity] = models.PlayerStats{
			Ties:     uint(counts[0]),
			Wins:     uint(counts[1]),
			Rock:     uint(counts[2]),
			Paper:    uint(counts[3]),
			Scissors: uint(counts[4]),
			Games:    uint(counts[5]),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &store.FormatError{Path: s.path, Err: fmt.Errorf("iterate player stats: %w", err)}
	}
	s.logger.Debug("history loaded",
		zap.String("path", s.path),
		zap.Int("players", len(history)),
	)
	return history, nil
}

// Save rewrites the whole table inside one transaction.
func (s *Store) Save(ctx context.Context, h store.History) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM player_stats`); err != nil {
		return fmt.Errorf("clear player stats: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO player_stats (identity, ties, wins, rock, paper, scissors, games)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, identity := range h.Identities() {
		stats := h[identity]
		if _, err = stmt.ExecContext(ctx,
			identity,
			int64(stats.Ties),
			int64(stats.Wins),
			int64(stats.Rock),
			int64(stats.Paper),
			int64(stats.Scissors),
			int64(stats.Games),
		); err != nil {
			return fmt.Errorf("insert %q: %w", identity, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	s.logger.Debug("history saved",
		zap.String("path", s.path),
		zap.Int("players", len(h)),
	)
	return nil
}
