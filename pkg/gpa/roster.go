package gpa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultClassCount is the size of a fresh roster.
	DefaultClassCount = 8

	classIDPrefix = "class-"
)

var (
	ErrClassNotFound  = errors.New("class not found")
	ErrLastClass      = errors.New("cannot remove the last class")
	ErrDuplicateClass = errors.New("duplicate class id")
)

// Class is a single entry in the GPA roster.
type Class struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Grade  string `json:"grade" yaml:"grade"`
	IsCore bool   `json:"isCore" yaml:"is_core"`
}

func (c Class) filled() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Grade) != ""
}

// Update is a single field change applied to a class.
type Update interface {
	apply(c *Class)
}

// SetName changes the class name.
type SetName string

// SetGrade changes the class grade text.
type SetGrade string

// SetCore changes whether the class is a core class.
type SetCore bool

func (u SetName) apply(c *Class)  { c.Name = string(u) }
func (u SetGrade) apply(c *Class) { c.Grade = string(u) }
func (u SetCore) apply(c *Class)  { c.IsCore = bool(u) }

// Roster is the ordered list of classes a GPA is computed from.
type Roster []Class

// NewRoster returns n empty core classes.
func NewRoster(n int) Roster {
	r := make(Roster, 0, n)
	for i := 1; i <= n; i++ {
		r = append(r, Class{
			ID:     fmt.Sprintf("%s%d", classIDPrefix, i),
			IsCore: true,
		})
	}
	return r
}

// Add returns a copy of the roster with a new empty core class appended.
func (r Roster) Add() (Roster, Class) {
	c := Class{
		ID:     classIDPrefix + uuid.NewString(),
		IsCore: true,
	}
	out := make(Roster, 0, len(r)+1)
	out = append(out, r...)
	return append(out, c), c
}

// Remove returns a copy of the roster without the class with the given id.
func (r Roster) Remove(id string) (Roster, error) {
	if r.index(id) < 0 {
		return r, fmt.Errorf("%w: %s", ErrClassNotFound, id)
	}
	if len(r) <= 1 {
		return r, ErrLastClass
	}

	out := make(Roster, 0, len(r)-1)
	for _, c := range r {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out, nil
}

// Apply returns a copy of the roster with the updates applied to one class.
func (r Roster) Apply(id string, updates ...Update) (Roster, error) {
	i := r.index(id)
	if i < 0 {
		return r, fmt.Errorf("%w: %s", ErrClassNotFound, id)
	}

	out := make(Roster, len(r))
	copy(out, r)
	for _, u := range updates {
		u.apply(&out[i])
	}
	return out, nil
}

// Get returns the class with the given id.
func (r Roster) Get(id string) (Class, error) {
	i := r.index(id)
	if i < 0 {
		return Class{}, fmt.Errorf("%w: %s", ErrClassNotFound, id)
	}
	return r[i], nil
}

// Validate checks that class ids are unique.
func (r Roster) Validate() error {
	seen := make(map[string]bool, len(r))
	for _, c := range r {
		if seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateClass, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

func (r Roster) index(id string) int {
	for i, c := range r {
		if c.ID == id {
			return i
		}
	}
	return -1
}
