package gpa

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxGrade is the highest accepted percentage grade.
	MaxGrade = 100.0

	advancedBonus   = 2.0
	advancedCeiling = 6.0
	coreBonus       = 1.0
	coreCeiling     = 5.0
	standardCeiling = 4.0
)

var (
	// ErrInvalidGrade is returned when a grade is not a number in [0,100].
	ErrInvalidGrade = errors.New("invalid grade")

	// ErrNoScorableClasses is returned when no class yields points.
	ErrNoScorableClasses = errors.New("no scorable classes")

	advancedMarkers = []string{"advanced", "adv", "ap"}

	// percentage floor -> base points, highest first
	gradeSteps = []struct {
		min    float64
		points float64
	}{
		{97, 4.0},
		{93, 4.0},
		{90, 3.7},
		{87, 3.3},
		{83, 3.0},
		{80, 2.7},
		{77, 2.3},
		{73, 2.0},
		{70, 1.7},
		{67, 1.3},
		{65, 1.0},
	}
)

// Classify reports whether the class name marks an advanced or AP class.
// Matching is a plain case-insensitive substring test, so "Japanese" matches "ap".
func Classify(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range advancedMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Ceiling returns the maximum points a class can earn in its weighting tier.
func Ceiling(advanced, core bool) float64 {
	switch {
	case advanced:
		return advancedCeiling
	case core:
		return coreCeiling
	default:
		return standardCeiling
	}
}

// ParseGrade parses a percentage grade.
func ParseGrade(grade string) (float64, error) {
	g, err := strconv.ParseFloat(strings.TrimSpace(grade), 64)
	if err != nil || math.IsNaN(g) || math.IsInf(g, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidGrade, grade)
	}
	if g < 0 || g > MaxGrade {
		return 0, fmt.Errorf("%w: %v is outside 0-%v", ErrInvalidGrade, g, MaxGrade)
	}
	return g, nil
}

// BasePoints maps a percentage to unweighted points on the 4.0 step table.
func BasePoints(pct float64) float64 {
	for _, s := range gradeSteps {
		if pct >= s.min {
			return s.points
		}
	}
	return 0
}

// GradeToPoints converts a percentage grade into weighted points.
func GradeToPoints(grade string, advanced, core bool) (float64, error) {
	pct, err := ParseGrade(grade)
	if err != nil {
		return 0, err
	}

	base := BasePoints(pct)
	switch {
	case advanced:
		return math.Min(base+advancedBonus, advancedCeiling), nil
	case core:
		return math.Min(base+coreBonus, coreCeiling), nil
	default:
		return base, nil
	}
}

// Aggregate returns the unweighted mean of the points of every scorable class.
// Classes with a blank name or grade are ignored and classes with an invalid
// grade are excluded from the mean. ErrNoScorableClasses is returned when
// nothing is left to average.
func Aggregate(classes []Class) (float64, error) {
	var total float64
	var count int

	for _, c := range classes {
		if !c.filled() {
			continue
		}
		points, err := GradeToPoints(c.Grade, Classify(c.Name), c.IsCore)
		if err != nil {
			continue
		}
		total += points
		count++
	}

	if count == 0 {
		return 0, ErrNoScorableClasses
	}
	return total / float64(count), nil
}

// ClassScore is the scoring outcome for a single class.
type ClassScore struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Grade    string  `json:"grade" yaml:"grade"`
	IsCore   bool    `json:"isCore" yaml:"is_core"`
	Advanced bool    `json:"advanced" yaml:"advanced"`
	Ceiling  float64 `json:"ceiling" yaml:"ceiling"`
	Points   float64 `json:"points" yaml:"points"`
	Scored   bool    `json:"scored" yaml:"scored"`
	Reason   string  `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Breakdown scores each class individually, in input order.
func Breakdown(classes []Class) []ClassScore {
	list := make([]ClassScore, 0, len(classes))
	for _, c := range classes {
		adv := Classify(c.Name)
		s := ClassScore{
			ID:       c.ID,
			Name:     c.Name,
			Grade:    c.Grade,
			IsCore:   c.IsCore,
			Advanced: adv,
			Ceiling:  Ceiling(adv, c.IsCore),
		}

		if !c.filled() {
			s.Reason = "missing name or grade"
			list = append(list, s)
			continue
		}

		points, err := GradeToPoints(c.Grade, adv, c.IsCore)
		if err != nil {
			s.Reason = err.Error()
		} else {
			s.Points = points
			s.Scored = true
		}
		list = append(list, s)
	}
	return list
}
