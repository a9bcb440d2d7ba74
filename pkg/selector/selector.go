// Package selector resolves the "all" / "N" / "A-B" filters given on the command line
package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

// All selects the caller's default range
const All = "all"

// FirstYear is the earliest season FantasyPros publishes weekly stats for
const FirstYear = 2002

// LastWeek is the final regular-season week scraped by default
const LastWeek = 17

var (
	// ErrInvalidPosition is returned for a position outside AllPositions
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidRange is returned when either bound of "A-B" is not an integer
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidValue is returned for a selector that is neither "all", a range nor an integer
	ErrInvalidValue = errors.New("invalid value")
)

// Resolve turns a selector into a concrete ordered list of integers.
//
// "all" returns a copy of defaults, "A-B" returns A..B inclusive and a single
// integer returns a one-element list. A range whose end precedes its start
// resolves to an empty list without error; the bounds are never swapped.
func Resolve(value string, defaults []int) ([]int, error) {
	value = strings.TrimSpace(value)

	if strings.EqualFold(value, All) {
		out := make([]int, len(defaults))
		copy(out, defaults)
		return out, nil
	}

	if before, after, ok := strings.Cut(value, "-"); ok {
		start, err := strconv.Atoi(strings.TrimSpace(before))
		if err != nil {
			return nil, fmt.Errorf("%w %q: bad start: %w", ErrInvalidRange, value, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(after))
		if err != nil {
			return nil, fmt.Errorf("%w %q: bad end: %w", ErrInvalidRange, value, err)
		}
		return Span(start, end), nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidValue, value, err)
	}
	return []int{n}, nil
}

// Span returns start..end inclusive, or an empty list when end < start
func Span(start, end int) []int {
	if end < start {
		return []int{}
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

// Years is the default season range: FirstYear through two years before currentYear
func Years(currentYear int) []int {
	return YearsFrom(FirstYear, currentYear)
}

// YearsFrom is Years with a configurable first season
func YearsFrom(firstYear, currentYear int) []int {
	return Span(firstYear, currentYear-2)
}

// Weeks is the default week range, 1 through LastWeek
func Weeks() []int {
	return Span(1, LastWeek)
}

// ResolvePositions returns every supported position for "all", otherwise the
// single case-normalized position.
func ResolvePositions(value string) ([]models.Position, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == All {
		out := make([]models.Position, len(models.AllPositions))
		copy(out, models.AllPositions)
		return out, nil
	}

	for _, p := range models.AllPositions {
		if string(p) == value {
			return []models.Position{p}, nil
		}
	}

	if suggestion := closestPosition(value); suggestion != "" {
		return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrInvalidPosition, value, suggestion)
	}
	return nil, fmt.Errorf("%w: %q (expected one of %s or all)", ErrInvalidPosition, value, positionList())
}

// closestPosition returns the most similar supported code, if any is reasonably close
func closestPosition(value string) models.Position {
	if value == "" {
		return ""
	}
	var best models.Position
	bestScore := 0.0
	for _, p := range models.AllPositions {
		score := matchr.JaroWinkler(value, string(p), false)
		if score > bestScore {
			best, bestScore = p, score
		}
	}
	if bestScore < 0.7 {
		return ""
	}
	return best
}

func positionList() string {
	names := make([]string, len(models.AllPositions))
	for i, p := range models.AllPositions {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
