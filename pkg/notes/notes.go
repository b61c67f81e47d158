package notes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// SubjectOther is used when no subject is picked.
	SubjectOther = "Other"

	// AllSubjects matches every subject in Filter.
	AllSubjects = "all"
)

var (
	ErrNotFound = errors.New("note not found")

	Subjects = []string{
		"Mathematics", "Science", "History", "Literature", "Language",
		"Computer Science", "Art", "Music", "Philosophy", SubjectOther,
	}
)

// Note is a free-form study note.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Subject   string    `json:"subject" yaml:"subject"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// NewNote contains the information needed to create a Note.
type NewNote struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Subject string `json:"subject" validate:"omitempty,subject"`
}

// UpdateNote contains the information that may change on an existing Note.
// A blank Subject keeps the current one.
type UpdateNote struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Subject string `json:"subject" validate:"omitempty,subject"`
}

// Create validates nn and returns the notes with the new note first.
func Create(list []Note, nn NewNote, now time.Time) ([]Note, Note, error) {
	if err := nn.Validate(); err != nil {
		return list, Note{}, err
	}

	subject := nn.Subject
	if subject == "" {
		subject = SubjectOther
	}

	now = now.UTC()
	n := Note{
		ID:        uuid.NewString(),
		Title:     nn.Title,
		Content:   nn.Content,
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
	}

	out := make([]Note, 0, len(list)+1)
	out = append(out, n)
	return append(out, list...), n, nil
}

// Edit validates un and applies it to the note with the given id.
func Edit(list []Note, id string, un UpdateNote, now time.Time) ([]Note, Note, error) {
	if err := un.Validate(); err != nil {
		return list, Note{}, err
	}

	out := make([]Note, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		out[i].Title = un.Title
		out[i].Content = un.Content
		if un.Subject != "" {
			out[i].Subject = un.Subject
		}
		out[i].UpdatedAt = now.UTC()
		return out, out[i], nil
	}
	return list, Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete returns the notes without the note with the given id.
func Delete(list []Note, id string) ([]Note, error) {
	out := make([]Note, 0, len(list))
	for _, n := range list {
		if n.ID != id {
			out = append(out, n)
		}
	}
	if len(out) == len(list) {
		return list, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return out, nil
}

// Get returns the note with the given id.
func Get(list []Note, id string) (Note, error) {
	for _, n := range list {
		if n.ID == id {
			return n, nil
		}
	}
	return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Filter returns the notes whose title or content contains search
// (case-insensitive) and whose subject matches. An empty subject or "all"
// matches every subject.
func Filter(list []Note, search, subject string) []Note {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Note, 0, len(list))
	for _, n := range list {
		if subject != "" && subject != AllSubjects && n.Subject != subject {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Content), search) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Recent returns up to n notes from the front of the list.
func Recent(list []Note, n int) []Note {
	if len(list) < n {
		n = len(list)
	}
	return list[:n]
}
