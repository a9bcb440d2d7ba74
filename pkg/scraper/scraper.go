// Package scraper fetches FantasyPros weekly stats and writes one file per position and season
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/myusername/nfl-stats-scraper/pkg/export"
	"github.com/myusername/nfl-stats-scraper/pkg/models"
	"github.com/myusername/nfl-stats-scraper/pkg/parser"
)

var tracer = otel.Tracer("nfl-stats-scraper/scraper")

// Default pause between requests
const (
	DefaultDelayMin = 1 * time.Second
	DefaultDelayMax = 2 * time.Second
)

// Fetcher downloads the raw stats page for one week
type Fetcher interface {
	FetchWeek(ctx context.Context, position models.Position, week, year int) ([]byte, error)
}

// Result summarizes one position/season run
type Result struct {
	Position models.Position
	Year     int
	Rows     int
	// Path is empty when nothing was written
	Path string
	// Skipped lists weeks that failed to fetch or had no usable rows
	Skipped []int
}

// Scraper collects every requested week of one position and season and
// writes them to a single file.
type Scraper struct {
	Fetcher   Fetcher
	Extractor parser.Extractor
	OutputDir string
	Format    export.Format
	// Requests are spaced by a random pause drawn from [DelayMin, DelayMax).
	DelayMin time.Duration
	DelayMax time.Duration
}

// New creates a scraper with the default extractor and request spacing
func New(fetcher Fetcher, outputDir string, format export.Format) *Scraper {
	return &Scraper{
		Fetcher:   fetcher,
		Extractor: parser.DefaultExtractor,
		OutputDir: outputDir,
		Format:    format,
		DelayMin:  DefaultDelayMin,
		DelayMax:  DefaultDelayMax,
	}
}

// Run scrapes the given weeks in order. Fetch and parse failures only skip
// the affected week; the returned error is reserved for failures that
// prevent the output file from being written.
func (s *Scraper) Run(ctx context.Context, position models.Position, year int, weeks []int) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.String("position", string(position)), attribute.Int("year", year))

	result := Result{Position: position, Year: year}
	slog.InfoContext(ctx, "scraping", "position", position.Display(), "year", year, "weeks", len(weeks))

	yearly := &models.Dataset{}
	for i, week := range weeks {
		if i > 0 {
			if err := s.pause(ctx); err != nil {
				return result, err
			}
		}

		weekly, err := s.scrapeWeek(ctx, position, year, week)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			slog.ErrorContext(ctx, "skipping week",
				"position", position.Display(), "year", year, "week", week, "err", err)
			result.Skipped = append(result.Skipped, week)
			continue
		}
		if weekly.Empty() {
			result.Skipped = append(result.Skipped, week)
			continue
		}
		yearly.Append(weekly)
	}

	if yearly.Empty() {
		slog.WarnContext(ctx, "no data scraped", "position", position.Display(), "year", year)
		return result, nil
	}

	dir := filepath.Join(s.OutputDir, string(position))
	if err := os.MkdirAll(dir, 0755); err != nil {
		span.SetStatus(codes.Error, "failed to create output directory")
		return result, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, export.FileName(position, year, s.Format))
	if err := export.WriteFile(path, s.Format, yearly); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write output")
		return result, fmt.Errorf("failed to save %s: %w", path, err)
	}

	result.Rows = yearly.Len()
	result.Path = path
	span.SetAttributes(attribute.Int("rows", result.Rows))
	slog.InfoContext(ctx, "saved", "rows", result.Rows, "path", path)
	return result, nil
}

// scrapeWeek fetches and parses one week. A missing table is reported and
// returned as an empty dataset.
func (s *Scraper) scrapeWeek(ctx context.Context, position models.Position, year, week int) (*models.Dataset, error) {
	slog.InfoContext(ctx, "fetching", "position", position.Display(), "week", week, "year", year)

	content, err := s.Fetcher.FetchWeek(ctx, position, week, year)
	if err != nil {
		return nil, err
	}

	weekly, err := s.Extractor.Extract(ctx, content, year, week)
	if err != nil {
		return nil, err
	}
	if !weekly.Found() {
		slog.WarnContext(ctx, "no table found", "position", position.Display(), "week", week, "year", year)
	}
	return weekly, nil
}

// pause sleeps for a random duration in [DelayMin, DelayMax) or until ctx is done
func (s *Scraper) pause(ctx context.Context) error {
	d := s.DelayMin
	if spread := s.DelayMax - s.DelayMin; spread > 0 {
		d += time.Duration(rand.Int63n(int64(spread)))
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
