package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	now := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)

	list, first, err := Create(nil, NewNote{Title: " Cells ", Content: "Mitochondria", Subject: "Science"}, now)
	require.NoError(t, err)
	assert.Equal(t, "Cells", first.Title)
	assert.Equal(t, "Science", first.Subject)
	assert.Equal(t, now, first.CreatedAt)
	assert.Equal(t, now, first.UpdatedAt)

	list, second, err := Create(list, NewNote{Title: "Misc", Content: "stuff"}, now)
	require.NoError(t, err)
	assert.Equal(t, SubjectOther, second.Subject)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "new notes go first")
}

func TestCreate_Invalid(t *testing.T) {
	now := time.Now()

	_, _, err := Create(nil, NewNote{Title: " ", Content: "x"}, now)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title is required")

	_, _, err = Create(nil, NewNote{Title: "x", Content: "y", Subject: "Astrology"}, now)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "Astrology")
}

func TestEdit(t *testing.T) {
	created := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)
	edited := created.Add(time.Hour)

	list, n, err := Create(nil, NewNote{Title: "a", Content: "b", Subject: "Art"}, created)
	require.NoError(t, err)

	out, got, err := Edit(list, n.ID, UpdateNote{Title: "a2", Content: "b2"}, edited)
	require.NoError(t, err)
	assert.Equal(t, "a2", got.Title)
	assert.Equal(t, "Art", got.Subject, "blank subject keeps the old one")
	assert.Equal(t, edited, got.UpdatedAt)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "a", list[0].Title)
	assert.Equal(t, "a2", out[0].Title)

	_, got, err = Edit(list, n.ID, UpdateNote{Title: "a", Content: "b", Subject: "Music"}, edited)
	require.NoError(t, err)
	assert.Equal(t, "Music", got.Subject)

	_, _, err = Edit(list, "missing", UpdateNote{Title: "a", Content: "b"}, edited)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = Edit(list, n.ID, UpdateNote{Title: "a"}, edited)
	assert.Error(t, err)
}

func TestDeleteAndGet(t *testing.T) {
	list, n, err := Create(nil, NewNote{Title: "a", Content: "b"}, time.Now())
	require.NoError(t, err)

	got, err := Get(list, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got)

	list, err = Delete(list, n.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = Delete(list, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = Get(list, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilter(t *testing.T) {
	list := []Note{
		{ID: "1", Title: "Derivatives", Content: "slope", Subject: "Mathematics"},
		{ID: "2", Title: "WWII", Content: "Normandy landings", Subject: "History"},
		{ID: "3", Title: "Integrals", Content: "area under the curve", Subject: "Mathematics"},
	}

	assert.Len(t, Filter(list, "", ""), 3)
	assert.Len(t, Filter(list, "", AllSubjects), 3)
	assert.Len(t, Filter(list, "", "Mathematics"), 2)

	got := Filter(list, "NORMANDY", AllSubjects)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = Filter(list, "curve", "History")
	assert.Empty(t, got)
}

func TestRecent(t *testing.T) {
	list := []Note{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	assert.Len(t, Recent(list, 3), 3)
	assert.Len(t, Recent(list[:2], 3), 2)
	assert.Empty(t, Recent(nil, 3))
}

func TestIsSubject(t *testing.T) {
	assert.True(t, IsSubject("Computer Science"))
	assert.False(t, IsSubject("computer science"))
}
