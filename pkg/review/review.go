package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mchmarny/focusforge/pkg/deck"
)

var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrNoCards           = errors.New("no cards available to study")
	ErrSessionComplete   = errors.New("study session is complete")

	// days until the next review, by difficulty
	intervals = map[deck.Difficulty]int{
		deck.Hard:   1,
		deck.Medium: 3,
		deck.Easy:   7,
	}

	difficultyAliases = map[string]deck.Difficulty{
		"easy":   deck.Easy,
		"medium": deck.Medium,
		"good":   deck.Medium,
		"hard":   deck.Hard,
	}
)

// ParseDifficulty parses a difficulty rating. "good" is accepted for medium.
func ParseDifficulty(s string) (deck.Difficulty, error) {
	d, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q (valid: easy, good|medium, hard)", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// IntervalDays returns the number of days until a card rated d is due again.
func IntervalDays(d deck.Difficulty) (int, error) {
	days, ok := intervals[d]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, d)
	}
	return days, nil
}

// NextReview returns when a card rated d at now is due again.
func NextReview(d deck.Difficulty, now time.Time) (time.Time, error) {
	days, err := IntervalDays(d)
	if err != nil {
		return time.Time{}, err
	}
	return now.AddDate(0, 0, days), nil
}

// Due returns the cards whose next review is at or before now.
func Due(cards []deck.Card, now time.Time) []deck.Card {
	list := make([]deck.Card, 0)
	for _, c := range cards {
		if !c.NextReview.After(now) {
			list = append(list, c)
		}
	}
	return list
}
