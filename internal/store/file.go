package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrReadOnly is returned by Save on a store opened with ReadOnly.
var ErrReadOnly = errors.New("history store is read-only")

// FileStore persists history as a JSON document on disk
type FileStore struct {
	path     string
	logger   *zap.Logger
	readOnly bool
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// ReadOnly makes Load open the file without creating it and Save fail.
func ReadOnly() FileOption {
	return func(s *FileStore) { s.readOnly = true }
}

// NewFileStore creates a JSON file backend. The file is not touched until Load.
func NewFileStore(path string, logger *zap.Logger, opts ...FileOption) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FileStore{path: filepath.Clean(path), logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the history file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the history file, creating it empty when it does not exist yet.
// Opening read-write with O_CREATE both creates the file atomically and proves
// it can be rewritten later. A read-only store opens O_RDONLY and treats a
// missing file as empty history. Every read or parse failure is a *FormatError.
func (s *FileStore) Load(ctx context.Context) (History, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	flag := os.O_RDWR | os.O_CREATE
	if s.readOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(s.path, flag, 0o644)
	if s.readOnly && errors.Is(err, fs.ErrNotExist) {
		return History{}, nil
	}
	if err != nil {
		return nil, &FormatError{Path: s.path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &FormatError{Path: s.path, Err: err}
	}
	history, err := Decode(data)
	if err != nil {
		return nil, &FormatError{Path: s.path, Err: err}
	}
	s.logger.Debug("history loaded",
		zap.String("path", s.path),
		zap.Int("players", len(history)),
	)
	return history, nil
}

// Save replaces the history file with h. The new contents are written to a
// temporary file in the same directory and renamed over the old one.
func (s *FileStore) Save(ctx context.Context, h History) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.readOnly {
		return ErrReadOnly
	}
	data, err := Encode(h)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp history: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync history: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace history: %w", err)
	}

	s.logger.Debug("history saved",
		zap.String("path", s.path),
		zap.Int("players", len(h)),
	)
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}
