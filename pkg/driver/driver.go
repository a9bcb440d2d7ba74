// Package driver expands the position, year and week filters and runs the
// scraper for every position/season pair.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
	"github.com/myusername/nfl-stats-scraper/pkg/scraper"
	"github.com/myusername/nfl-stats-scraper/pkg/selector"
)

// Runner scrapes one position and season
type Runner interface {
	Run(ctx context.Context, position models.Position, year int, weeks []int) (scraper.Result, error)
}

// Options are the raw filter values from the command line
type Options struct {
	Position string
	Year     string
	Week     string
	// CurrentYear anchors the default season range.
	CurrentYear int
	// FirstYear overrides selector.FirstYear when non-zero.
	FirstYear int
}

// Plan is the fully resolved work list
type Plan struct {
	Positions []models.Position
	Years     []int
	Weeks     []int
}

// Pairs returns the number of position/season runs in the plan
func (p Plan) Pairs() int {
	return len(p.Positions) * len(p.Years)
}

// Resolve validates every filter. It performs no network activity, so a bad
// filter fails the run before anything is fetched.
func Resolve(opts Options) (Plan, error) {
	positions, err := selector.ResolvePositions(opts.Position)
	if err != nil {
		return Plan{}, err
	}

	firstYear := opts.FirstYear
	if firstYear == 0 {
		firstYear = selector.FirstYear
	}
	years, err := selector.Resolve(opts.Year, selector.YearsFrom(firstYear, opts.CurrentYear))
	if err != nil {
		return Plan{}, fmt.Errorf("--year: %w", err)
	}

	weeks, err := selector.Resolve(opts.Week, selector.Weeks())
	if err != nil {
		return Plan{}, fmt.Errorf("--week: %w", err)
	}

	return Plan{Positions: positions, Years: years, Weeks: weeks}, nil
}

// Run scrapes positions in the outer loop and years in the inner loop, in
// the order the filters resolved to. A failing pair is logged and the run
// moves on; all pair errors are joined into the returned error.
func Run(ctx context.Context, plan Plan, runner Runner) ([]scraper.Result, error) {
	if len(plan.Weeks) == 0 {
		slog.WarnContext(ctx, "week filter selects no weeks")
	}
	if len(plan.Years) == 0 {
		slog.WarnContext(ctx, "year filter selects no seasons")
	}

	var results []scraper.Result
	var errs []error
	for _, position := range plan.Positions {
		for _, year := range plan.Years {
			if err := ctx.Err(); err != nil {
				return results, errors.Join(append(errs, err)...)
			}

			result, err := runner.Run(ctx, position, year, plan.Weeks)
			results = append(results, result)
			if err != nil {
				if ctx.Err() != nil {
					return results, errors.Join(append(errs, err)...)
				}
				slog.ErrorContext(ctx, "scrape failed", "position", position.Display(), "year", year, "err", err)
				errs = append(errs, fmt.Errorf("%s %d: %w", position, year, err))
			}
		}
	}
	return results, errors.Join(errs...)
}
