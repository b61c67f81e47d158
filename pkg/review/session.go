package review

import (
	"time"

	"github.com/mchmarny/focusforge/pkg/deck"
)

// Session walks through every card of a deck in order.
type Session struct {
	deck     deck.Deck
	index    int
	studied  int
	revealed bool
	complete bool
}

// NewSession starts a session over a copy of d.
func NewSession(d deck.Deck) (*Session, error) {
	if len(d.Cards) == 0 {
		return nil, ErrNoCards
	}
	cards := make([]deck.Card, len(d.Cards))
	copy(cards, d.Cards)
	d.Cards = cards
	return &Session{deck: d}, nil
}

// Current returns the card being studied.
func (s *Session) Current() (deck.Card, error) {
	if s.complete {
		return deck.Card{}, ErrSessionComplete
	}
	return s.deck.Cards[s.index], nil
}

// Reveal flips the current card to its answer side.
func (s *Session) Reveal() {
	s.revealed = true
}

// Revealed reports whether the answer of the current card is showing.
func (s *Session) Revealed() bool {
	return s.revealed
}

// Rate records the difficulty of the current card, reschedules it and moves on.
func (s *Session) Rate(d deck.Difficulty, now time.Time) (deck.Card, error) {
	if s.complete {
		return deck.Card{}, ErrSessionComplete
	}

	next, err := NextReview(d, now)
	if err != nil {
		return deck.Card{}, err
	}

	c := &s.deck.Cards[s.index]
	c.Difficulty = d
	c.NextReview = next
	rated := *c

	s.studied++
	if s.index+1 >= len(s.deck.Cards) {
		s.complete = true
	} else {
		s.index++
		s.revealed = false
	}
	return rated, nil
}

// Complete reports whether every card has been rated.
func (s *Session) Complete() bool {
	return s.complete
}

// Studied returns the number of cards rated so far.
func (s *Session) Studied() int {
	return s.studied
}

// Position returns the 1-based position of the current card and the total.
func (s *Session) Position() (int, int) {
	return s.index + 1, len(s.deck.Cards)
}

// Progress returns the percentage of the deck reached, including the current card.
func (s *Session) Progress() float64 {
	pos, total := s.Position()
	return float64(pos) / float64(total) * 100
}

// Deck returns the deck with every rating applied so far.
func (s *Session) Deck() deck.Deck {
	return s.deck
}

// Reset starts over from the first card, keeping ratings.
func (s *Session) Reset() {
	s.index = 0
	s.studied = 0
	s.revealed = false
	s.complete = false
}
