package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/focusforge/pkg/deck"
	"github.com/mchmarny/focusforge/pkg/notes"
)

func TestGreeting(t *testing.T) {
	day := func(h int) time.Time { return time.Date(2026, 1, 1, h, 30, 0, 0, time.UTC) }
	assert.Equal(t, "Good morning", Greeting(day(0)))
	assert.Equal(t, "Good morning", Greeting(day(11)))
	assert.Equal(t, "Good afternoon", Greeting(day(12)))
	assert.Equal(t, "Good afternoon", Greeting(day(17)))
	assert.Equal(t, "Good evening", Greeting(day(18)))
	assert.Equal(t, "Good evening", Greeting(day(23)))
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	decks := []deck.Deck{
		{ID: "a", Name: "A", Cards: []deck.Card{
			{ID: "1", NextReview: now.Add(-time.Minute)},
			{ID: "2", NextReview: now.AddDate(0, 0, 3)},
		}},
		{ID: "b", Name: "B", Cards: []deck.Card{{ID: "3", NextReview: now}}},
	}
	list := []notes.Note{{ID: "n1"}, {ID: "n2"}, {ID: "n3"}, {ID: "n4"}}

	s := Build(decks, list, now)
	require.NotNil(t, s)
	assert.Equal(t, "Good morning", s.Greeting)
	assert.Equal(t, 2, s.DeckCount)
	assert.Equal(t, 3, s.TotalCards)
	assert.Equal(t, 2, s.DueCards)
	assert.Equal(t, 4, s.NoteCount)
	require.Len(t, s.RecentNotes, 3)
	assert.Equal(t, "n1", s.RecentNotes[0].ID)
	require.Len(t, s.Decks, 2)
	assert.Equal(t, 1, s.Decks[0].Due)
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil, nil, time.Now())
	assert.Zero(t, s.TotalCards)
	assert.Empty(t, s.Decks)
	assert.Empty(t, s.RecentNotes)
}
