package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aaronzipp/rps/internal/config"
	"github.com/aaronzipp/rps/internal/game"
	"github.com/aaronzipp/rps/internal/logging"
	"github.com/aaronzipp/rps/internal/models"
	"github.com/aaronzipp/rps/internal/prompt"
	"github.com/aaronzipp/rps/internal/random"
	"github.com/aaronzipp/rps/internal/render"
	"github.com/aaronzipp/rps/internal/session"
	"github.com/aaronzipp/rps/internal/store"
	"github.com/aaronzipp/rps/internal/store/sqlite"
	"go.uber.org/zap"
)

func main() {
	program := filepath.Base(os.Args[0])
	fs := flag.NewFlagSet(program, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), "usage: "+render.Usage(program))
		fs.PrintDefaults()
	}
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		stop()
		if errors.Is(err, errUsage) {
			fs.Usage()
			os.Exit(1)
		}
		config.Exitf("%v", err)
	}
}

var errUsage = errors.New("usage")

func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer logger.Sync()

	want := 1 + models.RoundSize
	if cfg.Standings {
		want = 1
	}
	if len(cfg.Args) != want {
		return errUsage
	}
	historyPath := cfg.Args[0]

	if !cfg.Standings {
		if _, err := io.WriteString(out, render.Instructions()); err != nil {
			return fmt.Errorf("write instructions: %w", err)
		}
	}

	// Standings only read, so a missing history is empty and is never created.
	if cfg.Standings {
		if _, err := os.Stat(historyPath); errors.Is(err, os.ErrNotExist) {
			_, err := io.WriteString(out, render.Standings(store.History{}))
			return err
		}
	}

	backend, err := openStore(ctx, cfg, historyPath, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	rng, seed, err := random.New(cfg.Seed)
	if err != nil {
		return err
	}
	logger.Debug("random source ready", zap.Int64("seed", seed))

	sess := &session.Session{
		Store:    backend,
		Moves:    prompt.NewTerminal(in, out),
		Reporter: render.NewText(out),
		Rand:     rng,
		BotName:  cfg.BotName,
		Shuffle:  cfg.Shuffle,
		Logger:   logger,
	}

	if cfg.Standings {
		history, err := sess.Standings(ctx)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, render.Standings(history))
		return err
	}

	names := [models.RoundSize]string{cfg.Args[1], cfg.Args[2]}
	if err := game.CheckPlayers(names); err != nil {
		return err
	}
	_, err = sess.PlayRound(ctx, names)
	return err
}

func openStore(ctx context.Context, cfg config.Config, path string, logger *zap.Logger) (store.Backend, error) {
	kind := cfg.StoreFor(path)
	logger.Debug("opening history", zap.String("path", path), zap.String("store", kind))
	switch kind {
	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		var opts []store.FileOption
		if cfg.Standings {
			opts = append(opts, store.ReadOnly())
		}
		s, err := store.NewFileStore(path, logger, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
