package gpa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoster(t *testing.T) {
	r := NewRoster(DefaultClassCount)
	require.Len(t, r, DefaultClassCount)
	assert.Equal(t, "class-1", r[0].ID)
	assert.Equal(t, "class-8", r[7].ID)
	for _, c := range r {
		assert.True(t, c.IsCore)
		assert.Empty(t, c.Name)
		assert.Empty(t, c.Grade)
	}
	assert.NoError(t, r.Validate())
}

func TestRoster_Add(t *testing.T) {
	r := NewRoster(1)
	out, c := r.Add()
	require.Len(t, out, 2)
	assert.Len(t, r, 1)
	assert.True(t, strings.HasPrefix(c.ID, classIDPrefix))
	assert.True(t, c.IsCore)
	assert.NoError(t, out.Validate())
}

func TestRoster_Apply(t *testing.T) {
	r := NewRoster(2)
	out, err := r.Apply("class-2", SetName("AP Physics"), SetGrade("91"), SetCore(false))
	require.NoError(t, err)

	c, err := out.Get("class-2")
	require.NoError(t, err)
	assert.Equal(t, "AP Physics", c.Name)
	assert.Equal(t, "91", c.Grade)
	assert.False(t, c.IsCore)

	// original untouched
	assert.Empty(t, r[1].Name)

	_, err = r.Apply("nope", SetName("x"))
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestRoster_Remove(t *testing.T) {
	r := NewRoster(2)
	out, err := r.Remove("class-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "class-2", out[0].ID)

	_, err = out.Remove("class-2")
	assert.ErrorIs(t, err, ErrLastClass)

	_, err = r.Remove("missing")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestRoster_ValidateDuplicate(t *testing.T) {
	r := Roster{{ID: "a"}, {ID: "a"}}
	assert.ErrorIs(t, r.Validate(), ErrDuplicateClass)
}
