package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/mchmarny/focusforge/pkg/deck"
	"github.com/mchmarny/focusforge/pkg/review"
)

const quitAnswer = "q"

var (
	dueOnlyFlag = &urfave.BoolFlag{
		Name:  "due",
		Usage: "Only study the cards that are due for review",
	}

	studyCmd = &urfave.Command{
		Name:            "study",
		HideHelpCommand: true,
		Usage:           "Review the cards of a deck and rate each one easy, good or hard",
		ArgsUsage:       "<deck-id|name>",
		Flags:           []urfave.Flag{dueOnlyFlag, debugFlag},
		Action:          cmdStudy,
	}
)

// StudyResult summarizes a study session.
type StudyResult struct {
	Deck     string `json:"deck" yaml:"deck"`
	Studied  int    `json:"studied" yaml:"studied"`
	Total    int    `json:"total" yaml:"total"`
	Complete bool   `json:"complete" yaml:"complete"`
}

func cmdStudy(c *urfave.Context) error {
	applyFlags(c)
	cfg := getConfig(c)
	repo, decks, err := loadDecks(c)
	if err != nil {
		return err
	}

	d, err := findDeck(decks, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return err
	}

	subset := d
	if c.Bool(dueOnlyFlag.Name) {
		subset.Cards = review.Due(d.Cards, cfg.now())
	}

	s, err := review.NewSession(subset)
	if err != nil {
		return fmt.Errorf("%s: %w", d.Name, err)
	}

	if err := runSession(s, c.App.Reader, c.App.ErrWriter, cfg.now); err != nil {
		return err
	}

	// cards are rated in order, the deck may hold cards outside the session
	for _, rated := range s.Deck().Cards[:s.Studied()] {
		d, err = deck.UpdateCard(d, rated.ID, func(card *deck.Card) {
			card.Difficulty = rated.Difficulty
			card.NextReview = rated.NextReview
		})
		if err != nil {
			return err
		}
	}
	if err := saveDeck(c.Context, repo, decks, d); err != nil {
		return err
	}

	_, total := s.Position()
	return encode(c, &StudyResult{
		Deck:     d.Name,
		Studied:  s.Studied(),
		Total:    total,
		Complete: s.Complete(),
	})
}

// runSession drives s from r until every card is rated, the user quits or
// the input ends. Prompts go to w, stdout is left for the encoded result.
func runSession(s *review.Session, r io.Reader, w io.Writer, now func() time.Time) error {
	in := bufio.NewScanner(r)
	read := func() (string, bool) {
		if !in.Scan() {
			return "", false
		}
		return strings.TrimSpace(in.Text()), true
	}

	for !s.Complete() {
		card, err := s.Current()
		if err != nil {
			return err
		}
		pos, total := s.Position()

		fmt.Fprintf(w, "\n[%d/%d] %.0f%%\nQ: %s\n", pos, total, s.Progress(), card.Front)
		fmt.Fprint(w, "Press enter to show the answer (q to quit): ")
		line, ok := read()
		if !ok || strings.EqualFold(line, quitAnswer) {
			return in.Err()
		}

		s.Reveal()
		fmt.Fprintf(w, "A: %s\n", card.Back)

		for {
			fmt.Fprint(w, "How well did you know it? [easy/good/hard] (q to quit): ")
			line, ok = read()
			if !ok || strings.EqualFold(line, quitAnswer) {
				return in.Err()
			}

			d, err := review.ParseDifficulty(line)
			if err != nil {
				fmt.Fprintln(w, err)
				continue
			}

			rated, err := s.Rate(d, now())
			if err != nil {
				if errors.Is(err, review.ErrSessionComplete) {
					return nil
				}
				return err
			}
			slog.Debug("card rated", "card", rated.ID, "difficulty", rated.Difficulty, "next", rated.NextReview)
			break
		}
	}

	fmt.Fprintf(w, "\nSession complete: %d cards studied\n", s.Studied())
	return nil
}
