// Package render formats game output for the terminal.
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aaronzipp/rps/internal/models"
	"github.com/aaronzipp/rps/internal/store"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Instructions is printed before the first prompt
func Instructions() string {
	return "Welcome to Rock Paper Scissors! Please follow the instructions\n"
}

// Usage describes the command line
func Usage(program string) string {
	return program + " [flags] /path/to/game/history.json player_1_name player_2_name\n"
}

// BotChosen announces that the computer player has committed its move
func BotChosen(bot string) string {
	return cases.Title(language.Und).String(bot) + " has chosen.\n"
}

// Outcome describes a resolved round. A tie shows the shared move on both sides.
func Outcome(entries []models.RoundEntry, winner int) string {
	if len(entries) != models.RoundSize {
		return ""
	}
	if winner == models.NoWinner {
		move := entries[0].Move.String()
		return "Tie! (" + move + " == " + move + ")\n"
	}
	var b strings.Builder
	b.WriteString(entries[winner].Player)
	b.WriteString(" won! (")
	b.WriteString(entries[winner].Move.String())
	b.WriteString(" > ")
	b.WriteString(entries[1-winner].Move.String())
	b.WriteString(")\n")
	return b.String()
}

// Score shows one player's cumulative wins
func Score(player string, stats models.PlayerStats) string {
	var b strings.Builder
	b.WriteString(player)
	b.WriteString(" has won ")
	b.WriteString(strconv.FormatUint(uint64(stats.Wins), 10))
	b.WriteString(" games out of ")
	b.WriteString(strconv.FormatUint(uint64(stats.Games), 10))
	b.WriteString(" total\n")
	return b.String()
}

// Standings renders every stored player, most wins first then by name
func Standings(history store.History) string {
	if len(history) == 0 {
		return "No games played yet.\n"
	}
	ids := history.Identities()
	sort.SliceStable(ids, func(i, j int) bool {
		wi, wj := history[ids[i]].Wins, history[ids[j]].Wins
		if wi == wj {
			return ids[i] < ids[j]
		}
		return wi > wj
	})

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tWINS\tTIES\tLOSSES\tGAMES")
	for _, id := range ids {
		s := history[id]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", id, s.Wins, s.Ties, s.Losses(), s.Games)
	}
	_ = w.Flush()
	return b.String()
}

// Text writes round progress to an io.Writer
type Text struct {
	out io.Writer
}

// NewText creates a reporter writing to out
func NewText(out io.Writer) *Text {
	return &Text{out: out}
}

// BotChose reports the computer player's commitment
func (t *Text) BotChose(bot string) error {
	_, err := io.WriteString(t.out, BotChosen(bot))
	return err
}

// Outcome reports the round result
func (t *Text) Outcome(entries []models.RoundEntry, winner int) error {
	_, err := io.WriteString(t.out, Outcome(entries, winner))
	return err
}

// Scores reports the cumulative record of each participant
func (t *Text) Scores(entries []models.RoundEntry, history store.History) error {
	for _, e := range entries {
		stats, _ := history.Stats(e.Player)
		if _, err := io.WriteString(t.out, Score(e.Player, stats)); err != nil {
			return err
		}
	}
	return nil
}
