// Package prompt collects moves from human players at the terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aaronzipp/rps/internal/models"
	"golang.org/x/term"
)

// ErrNoInput indicates input ended before a move was chosen.
var ErrNoInput = errors.New("input closed before a move was chosen")

// Terminal asks each player for a move until the answer names one.
// Answers are hidden when the input is a terminal so the other player
// cannot read them.
type Terminal struct {
	out    io.Writer
	fd     int
	hidden bool
	lines  *bufio.Reader

	// pending carries the result of a read still in flight after a cancel,
	// so the next ReadMove picks it up instead of starting a second reader.
	pending chan readResult
	saved   *term.State
}

type readResult struct {
	line string
	err  error
}

// NewTerminal reads from in and writes prompts to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		t.hidden = true
	}
	t.lines = bufio.NewReader(in)
	return t
}

// ReadMove prompts player until ResolvePrefix accepts the answer. It returns
// ctx.Err() as soon as ctx is done, even while blocked on input.
func (t *Terminal) ReadMove(ctx context.Context, player string) (models.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return models.MoveUnspecified, err
		}
		if _, err := fmt.Fprintf(t.out, "Hello %s, please pick r (rock), p (paper), or s (scissors): ", player); err != nil {
			return models.MoveUnspecified, fmt.Errorf("write prompt: %w", err)
		}
		answer, err := t.readLineContext(ctx)
		if err != nil {
			return models.MoveUnspecified, err
		}
		if move, ok := models.ResolvePrefix(answer); ok {
			return move, nil
		}
	}
}

// readLineContext runs the blocking read in a goroutine. On cancel the
// terminal echo is restored, since ReadPassword only restores it on return.
func (t *Terminal) readLineContext(ctx context.Context) (string, error) {
	if t.pending == nil {
		t.saved = nil
		if t.hidden {
			if st, err := term.GetState(t.fd); err == nil {
				t.saved = st
			}
		}
		ch := make(chan readResult, 1)
		go func() {
			line, err := t.readLine()
			ch <- readResult{line: line, err: err}
		}()
		t.pending = ch
	}

	select {
	case res := <-t.pending:
		t.pending = nil
		return res.line, res.err
	case <-ctx.Done():
		if t.saved != nil {
			_ = term.Restore(t.fd, t.saved)
			fmt.Fprintln(t.out)
		}
		return "", ctx.Err()
	}
}

func (t *Terminal) readLine() (string, error) {
	if t.hidden {
		b, err := term.ReadPassword(t.fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("read move: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := t.lines.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line = strings.TrimSpace(line); line != "" {
				return line, nil
			}
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read move: %w", err)
	}
	return strings.TrimSpace(line), nil
}
