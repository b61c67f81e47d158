package cli

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mchmarny/focusforge/pkg/dashboard"
	"github.com/mchmarny/focusforge/pkg/data"
	"github.com/mchmarny/focusforge/pkg/deck"
	"github.com/mchmarny/focusforge/pkg/gpa"
	"github.com/mchmarny/focusforge/pkg/notes"
)

const maxRequestBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func dashboardAPIHandler(repo *data.Repository, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := buildDashboard(r.Context(), repo, now())
		if err != nil {
			slog.Error("failed to build dashboard", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to build dashboard")
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func gpaAPIHandler(repo *data.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roster, err := repo.Classes(r.Context())
		if err != nil {
			slog.Error("failed to load classes", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load classes")
			return
		}
		writeJSON(w, http.StatusOK, calculate(roster))
	}
}

// gpaCalculateAPIHandler scores the posted classes without saving them.
func gpaCalculateAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var classes []gpa.Class
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&classes); err != nil {
			slog.Debug("invalid calculate request", "error", err)
			writeError(w, http.StatusBadRequest, "expected a JSON array of classes")
			return
		}
		writeJSON(w, http.StatusOK, calculate(classes))
	}
}

func decksAPIHandler(repo *data.Repository, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decks, err := repo.Decks(r.Context())
		if err != nil {
			slog.Error("failed to load decks", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load decks")
			return
		}
		writeJSON(w, http.StatusOK, dashboard.Build(decks, nil, now()).Decks)
	}
}

func deckAPIHandler(repo *data.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decks, err := repo.Decks(r.Context())
		if err != nil {
			slog.Error("failed to load decks", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load decks")
			return
		}

		d, err := findDeck(decks, r.PathValue("id"))
		if err != nil {
			if errors.Is(err, deck.ErrDeckNotFound) {
				writeError(w, http.StatusNotFound, "deck not found")
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func notesAPIHandler(repo *data.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		subject := r.URL.Query().Get("subject")
		if subject != "" && subject != notes.AllSubjects && !notes.IsSubject(subject) {
			writeError(w, http.StatusBadRequest, "unknown subject: "+subject)
			return
		}

		list, err := repo.Notes(r.Context())
		if err != nil {
			slog.Error("failed to load notes", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load notes")
			return
		}
		writeJSON(w, http.StatusOK, notes.Filter(list, q, subject))
	}
}
