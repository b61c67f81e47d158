package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Difficulty is the self-assessed recall difficulty of a card.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var (
	ErrNameRequired      = errors.New("deck name is required")
	ErrDeckNotFound      = errors.New("deck not found")
	ErrCardNotFound      = errors.New("card not found")
	ErrCardSidesRequired = errors.New("both sides of the card are required")

	// Colors is the palette new decks pick from.
	Colors = []string{"blue", "purple", "green", "orange", "pink", "indigo"}
)

// Card is a single flashcard.
type Card struct {
	ID         string     `json:"id" yaml:"id"`
	Front      string     `json:"front" yaml:"front"`
	Back       string     `json:"back" yaml:"back"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	NextReview time.Time  `json:"nextReview" yaml:"next_review"`
}

// Deck is a named collection of cards.
type Deck struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Cards     []Card    `json:"cards" yaml:"cards"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	Color     string    `json:"color" yaml:"color"`
}

// Create returns the decks with a new empty deck appended.
func Create(decks []Deck, name string, now time.Time) ([]Deck, Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return decks, Deck{}, ErrNameRequired
	}

	d := Deck{
		ID:        uuid.NewString(),
		Name:      name,
		Cards:     []Card{},
		CreatedAt: now.UTC(),
		Color:     Colors[rand.IntN(len(Colors))],
	}

	out := make([]Deck, 0, len(decks)+1)
	out = append(out, decks...)
	return append(out, d), d, nil
}

// Delete returns the decks without the deck with the given id.
func Delete(decks []Deck, id string) ([]Deck, error) {
	if _, err := Find(decks, id); err != nil {
		return decks, err
	}

	out := make([]Deck, 0, len(decks))
	for _, d := range decks {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out, nil
}

// Find returns the deck with the given id.
func Find(decks []Deck, id string) (Deck, error) {
	for _, d := range decks {
		if d.ID == id {
			return d, nil
		}
	}
	return Deck{}, fmt.Errorf("%w: %s", ErrDeckNotFound, id)
}

// Replace returns the decks with the deck of the same id swapped for d.
func Replace(decks []Deck, d Deck) ([]Deck, error) {
	out := make([]Deck, len(decks))
	copy(out, decks)
	for i := range out {
		if out[i].ID == d.ID {
			out[i] = d
			return out, nil
		}
	}
	return decks, fmt.Errorf("%w: %s", ErrDeckNotFound, d.ID)
}

// CardCount returns the total number of cards across decks.
func CardCount(decks []Deck) int {
	var n int
	for _, d := range decks {
		n += len(d.Cards)
	}
	return n
}

// AddCard returns a copy of the deck with a new card appended. New cards start
// at medium difficulty and are due immediately.
func AddCard(d Deck, front, back string, now time.Time) (Deck, Card, error) {
	if strings.TrimSpace(front) == "" || strings.TrimSpace(back) == "" {
		return d, Card{}, ErrCardSidesRequired
	}

	c := Card{
		ID:         uuid.NewString(),
		Front:      front,
		Back:       back,
		Difficulty: Medium,
		NextReview: now.UTC(),
	}

	cards := make([]Card, 0, len(d.Cards)+1)
	cards = append(cards, d.Cards...)
	d.Cards = append(cards, c)
	return d, c, nil
}

// EditCard returns a copy of the deck with the card's sides replaced.
func EditCard(d Deck, cardID, front, back string) (Deck, error) {
	if strings.TrimSpace(front) == "" || strings.TrimSpace(back) == "" {
		return d, ErrCardSidesRequired
	}
	return UpdateCard(d, cardID, func(c *Card) {
		c.Front = front
		c.Back = back
	})
}

// UpdateCard returns a copy of the deck with fn applied to one card.
func UpdateCard(d Deck, cardID string, fn func(c *Card)) (Deck, error) {
	cards := make([]Card, len(d.Cards))
	copy(cards, d.Cards)
	for i := range cards {
		if cards[i].ID == cardID {
			fn(&cards[i])
			d.Cards = cards
			return d, nil
		}
	}
	return d, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
}

// DeleteCard returns a copy of the deck without the card.
func DeleteCard(d Deck, cardID string) (Deck, error) {
	cards := make([]Card, 0, len(d.Cards))
	for _, c := range d.Cards {
		if c.ID != cardID {
			cards = append(cards, c)
		}
	}
	if len(cards) == len(d.Cards) {
		return d, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	d.Cards = cards
	return d, nil
}
