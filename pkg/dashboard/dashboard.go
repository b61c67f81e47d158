package dashboard

import (
	"time"

	"github.com/mchmarny/focusforge/pkg/deck"
	"github.com/mchmarny/focusforge/pkg/notes"
	"github.com/mchmarny/focusforge/pkg/review"
)

const recentNoteLimit = 3

// DeckSummary is the short form of a deck shown on the dashboard.
type DeckSummary struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Cards int    `json:"cards" yaml:"cards"`
	Due   int    `json:"due" yaml:"due"`
}

// Summary is the home screen overview.
type Summary struct {
	Greeting    string        `json:"greeting" yaml:"greeting"`
	DeckCount   int           `json:"deck_count" yaml:"deck_count"`
	TotalCards  int           `json:"total_cards" yaml:"total_cards"`
	DueCards    int           `json:"due_cards" yaml:"due_cards"`
	NoteCount   int           `json:"note_count" yaml:"note_count"`
	Decks       []DeckSummary `json:"decks" yaml:"decks"`
	RecentNotes []notes.Note  `json:"recent_notes" yaml:"recent_notes"`
}

// Greeting returns the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// Build assembles the dashboard at now.
func Build(decks []deck.Deck, list []notes.Note, now time.Time) *Summary {
	s := &Summary{
		Greeting:    Greeting(now),
		DeckCount:   len(decks),
		TotalCards:  deck.CardCount(decks),
		NoteCount:   len(list),
		Decks:       make([]DeckSummary, 0, len(decks)),
		RecentNotes: notes.Recent(list, recentNoteLimit),
	}

	for _, d := range decks {
		due := len(review.Due(d.Cards, now))
		s.DueCards += due
		s.Decks = append(s.Decks, DeckSummary{
			ID:    d.ID,
			Name:  d.Name,
			Color: d.Color,
			Cards: len(d.Cards),
			Due:   due,
		})
	}
	return s
}
