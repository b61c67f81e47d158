package data

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mchmarny/focusforge/pkg/deck"
	"github.com/mchmarny/focusforge/pkg/gpa"
	"github.com/mchmarny/focusforge/pkg/notes"
)

const (
	ClassesKey = "gpa-classes"
	DecksKey   = "focusforge_decks"
	NotesKey   = "focusforge_notes"
)

// Keys lists every key the repository writes.
var Keys = []string{ClassesKey, DecksKey, NotesKey}

// Repository reads and writes the app collections as JSON documents.
type Repository struct {
	store      Store
	classCount int
}

// NewRepository wraps s. A missing roster is seeded with classCount empty classes.
func NewRepository(s Store, classCount int) *Repository {
	if classCount < 1 {
		classCount = gpa.DefaultClassCount
	}
	return &Repository{store: s, classCount: classCount}
}

// Classes returns the saved roster, or a fresh one when nothing was saved.
func (r *Repository) Classes(ctx context.Context) (gpa.Roster, error) {
	var list gpa.Roster
	found, err := r.load(ctx, ClassesKey, &list)
	if err != nil {
		return nil, err
	}
	if !found {
		return gpa.NewRoster(r.classCount), nil
	}
	return list, nil
}

// SaveClasses replaces the saved roster.
func (r *Repository) SaveClasses(ctx context.Context, list gpa.Roster) error {
	if err := list.Validate(); err != nil {
		return errors.Wrap(err, "invalid roster")
	}
	return r.save(ctx, ClassesKey, list)
}

// Decks returns the saved decks.
func (r *Repository) Decks(ctx context.Context) ([]deck.Deck, error) {
	list := make([]deck.Deck, 0)
	if _, err := r.load(ctx, DecksKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SaveDecks replaces the saved decks.
func (r *Repository) SaveDecks(ctx context.Context, list []deck.Deck) error {
	return r.save(ctx, DecksKey, list)
}

// Notes returns the saved notes, newest first.
func (r *Repository) Notes(ctx context.Context) ([]notes.Note, error) {
	list := make([]notes.Note, 0)
	if _, err := r.load(ctx, NotesKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SaveNotes replaces the saved notes.
func (r *Repository) SaveNotes(ctx context.Context, list []notes.Note) error {
	return r.save(ctx, NotesKey, list)
}

// Reset deletes every collection.
func (r *Repository) Reset(ctx context.Context) error {
	if r == nil || r.store == nil {
		return errStoreNotInitialized
	}
	for _, k := range Keys {
		if err := r.store.Delete(ctx, k); err != nil {
			return errors.Wrapf(err, "failed to reset %s", k)
		}
	}
	return nil
}

func (r *Repository) load(ctx context.Context, key string, v any) (bool, error) {
	if r == nil || r.store == nil {
		return false, errStoreNotInitialized
	}

	b, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to load %s", key)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return false, errors.Wrapf(err, "failed to decode %s", key)
	}
	return true, nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	if r == nil || r.store == nil {
		return errStoreNotInitialized
	}

	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}
	if err := r.store.Set(ctx, key, b); err != nil {
		return errors.Wrapf(err, "failed to save %s", key)
	}
	return nil
}
