package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	urfave "github.com/urfave/cli/v2"

	"github.com/mchmarny/focusforge/pkg/dashboard"
	"github.com/mchmarny/focusforge/pkg/data"
	"github.com/mchmarny/focusforge/pkg/deck"
)

var (
	deckRefFlag = &urfave.StringFlag{
		Name:     "deck",
		Aliases:  []string{"d"},
		Usage:    "Deck id or name",
		Required: true,
	}

	cardIDFlag = &urfave.StringFlag{
		Name:     "card",
		Aliases:  []string{"c"},
		Usage:    "Card id",
		Required: true,
	}

	frontFlag = &urfave.StringFlag{
		Name:  "front",
		Usage: "Question side of the card",
	}

	backFlag = &urfave.StringFlag{
		Name:  "back",
		Usage: "Answer side of the card",
	}

	deckCmd = &urfave.Command{
		Name:            "deck",
		HideHelpCommand: true,
		Usage:           "Manage flashcard decks",
		Subcommands: []*urfave.Command{
			{
				Name:   "list",
				Usage:  "List decks with card and due counts",
				Flags:  []urfave.Flag{debugFlag},
				Action: cmdListDecks,
			},
			{
				Name:      "create",
				Usage:     "Create an empty deck",
				ArgsUsage: "<name>",
				Flags:     []urfave.Flag{debugFlag},
				Action:    cmdCreateDeck,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a deck and all of its cards",
				ArgsUsage: "<deck-id|name>",
				Flags:     []urfave.Flag{debugFlag},
				Action:    cmdDeleteDeck,
			},
			{
				Name:      "show",
				Usage:     "Show a deck with its cards",
				ArgsUsage: "<deck-id|name>",
				Flags:     []urfave.Flag{debugFlag},
				Action:    cmdShowDeck,
			},
		},
	}

	cardCmd = &urfave.Command{
		Name:            "card",
		HideHelpCommand: true,
		Usage:           "Manage the cards of a deck",
		Subcommands: []*urfave.Command{
			{
				Name:   "add",
				Usage:  "Add a card to a deck",
				Flags:  []urfave.Flag{deckRefFlag, frontFlag, backFlag, debugFlag},
				Action: cmdAddCard,
			},
			{
				Name:   "edit",
				Usage:  "Change the sides of a card",
				Flags:  []urfave.Flag{deckRefFlag, cardIDFlag, frontFlag, backFlag, debugFlag},
				Action: cmdEditCard,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a card",
				Flags:   []urfave.Flag{deckRefFlag, cardIDFlag, debugFlag},
				Action:  cmdDeleteCard,
			},
		},
	}
)

// findDeck looks a deck up by id, then by case-insensitive name.
func findDeck(decks []deck.Deck, ref string) (deck.Deck, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return deck.Deck{}, errors.New("deck id or name required")
	}
	if d, err := deck.Find(decks, ref); err == nil {
		return d, nil
	}
	for _, d := range decks {
		if strings.EqualFold(d.Name, ref) {
			return d, nil
		}
	}
	return deck.Deck{}, fmt.Errorf("%w: %s", deck.ErrDeckNotFound, ref)
}

func loadDecks(c *urfave.Context) (*data.Repository, []deck.Deck, error) {
	repo, err := getConfig(c).repository(c.Context)
	if err != nil {
		return nil, nil, err
	}
	decks, err := repo.Decks(c.Context)
	if err != nil {
		return nil, nil, fmt.Errorf("loading decks: %w", err)
	}
	return repo, decks, nil
}

func saveDeck(ctx context.Context, repo *data.Repository, decks []deck.Deck, d deck.Deck) error {
	decks, err := deck.Replace(decks, d)
	if err != nil {
		return err
	}
	if err := repo.SaveDecks(ctx, decks); err != nil {
		return fmt.Errorf("saving decks: %w", err)
	}
	return nil
}

func cmdListDecks(c *urfave.Context) error {
	applyFlags(c)
	_, decks, err := loadDecks(c)
	if err != nil {
		return err
	}
	s := dashboard.Build(decks, nil, getConfig(c).now())
	return encode(c, s.Decks)
}

func cmdCreateDeck(c *urfave.Context) error {
	applyFlags(c)
	repo, decks, err := loadDecks(c)
	if err != nil {
		return err
	}

	decks, d, err := deck.Create(decks, strings.Join(c.Args().Slice(), " "), getConfig(c).now())
	if err != nil {
		return fmt.Errorf("creating deck: %w", err)
	}
	if err := repo.SaveDecks(c.Context, decks); err != nil {
		return fmt.Errorf("saving decks: %w", err)
	}
	slog.Debug("deck created", "id", d.ID, "name", d.Name)
	return encode(c, d)
}

func cmdDeleteDeck(c *urfave.Context) error {
	applyFlags(c)
	repo, decks, err := loadDecks(c)
	if err != nil {
		return err
	}

	d, err := findDeck(decks, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return err
	}
	if decks, err = deck.Delete(decks, d.ID); err != nil {
		return err
	}
	if err := repo.SaveDecks(c.Context, decks); err != nil {
		return fmt.Errorf("saving decks: %w", err)
	}
	slog.Info("deck deleted", "name", d.Name, "cards", len(d.Cards))
	return nil
}

func cmdShowDeck(c *urfave.Context) error {
	applyFlags(c)
	_, decks, err := loadDecks(c)
	if err != nil {
		return err
	}
	d, err := findDeck(decks, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return err
	}
	return encode(c, d)
}

func cmdAddCard(c *urfave.Context) error {
	applyFlags(c)
	repo, decks, err := loadDecks(c)
	if err != nil {
		return err
	}
	d, err := findDeck(decks, c.String(deckRefFlag.Name))
	if err != nil {
		return err
	}

	d, card, err := deck.AddCard(d, c.String(frontFlag.Name), c.String(backFlag.Name), getConfig(c).now())
	if err != nil {
		return fmt.Errorf("adding card: %w", err)
	}
	if err := saveDeck(c.Context, repo, decks, d); err != nil {
		return err
	}
	return encode(c, card)
}

func cmdEditCard(c *urfave.Context) error {
	applyFlags(c)
	repo, decks, err := loadDecks(c)
	if err != nil {
		return err
	}
	d, err := findDeck(decks, c.String(deckRefFlag.Name))
	if err != nil {
		return err
	}

	id := c.String(cardIDFlag.Name)
	var current deck.Card
	for _, card := range d.Cards {
		if card.ID == id {
			current = card
		}
	}
	if current.ID == "" {
		return fmt.Errorf("%w: %s", deck.ErrCardNotFound, id)
	}

	front, back := current.Front, current.Back
	if c.IsSet(frontFlag.Name) {
		front = c.String(frontFlag.Name)
	}
	if c.IsSet(backFlag.Name) {
		back = c.String(backFlag.Name)
	}

	if d, err = deck.EditCard(d, id, front, back); err != nil {
		return fmt.Errorf("editing card: %w", err)
	}
	if err := saveDeck(c.Context, repo, decks, d); err != nil {
		return err
	}
	return encode(c, d)
}

func cmdDeleteCard(c *urfave.Context) error {
	applyFlags(c)
	repo, decks, err := loadDecks(c)
	if err != nil {
		return err
	}
	d, err := findDeck(decks, c.String(deckRefFlag.Name))
	if err != nil {
		return err
	}

	if d, err = deck.DeleteCard(d, c.String(cardIDFlag.Name)); err != nil {
		return err
	}
	if err := saveDeck(c.Context, repo, decks, d); err != nil {
		return err
	}
	slog.Debug("card deleted", "deck", d.Name, "remaining", len(d.Cards))
	return nil
}
