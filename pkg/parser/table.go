// Package parser extracts the weekly stats table from FantasyPros pages
package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

var tracer = otel.Tracer("nfl-stats-scraper/parser")

// DefaultTableID is the id attribute of the FantasyPros stats table
const DefaultTableID = "data"

// Extractor pulls the stats table out of a FantasyPros page.
type Extractor struct {
	// TableID identifies the table element (matched as table#TableID).
	TableID string
	// DiscardMismatchedRows drops any row whose cell count differs from the
	// header count. When false such rows are padded with empty cells or
	// truncated to the header width instead.
	DiscardMismatchedRows bool
}

// DefaultExtractor matches the live site layout and drops malformed rows
var DefaultExtractor = Extractor{
	TableID:               DefaultTableID,
	DiscardMismatchedRows: true,
}

// Extract parses page content and returns the rows of the stats table tagged
// with year and week. A page without the table yields an empty dataset whose
// Found method reports false; that is not an error.
func (e Extractor) Extract(ctx context.Context, content []byte, year, week int) (*models.Dataset, error) {
	_, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year), attribute.Int("week", week))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	tableID := e.TableID
	if tableID == "" {
		tableID = DefaultTableID
	}
	table := doc.Find("table#" + tableID).First()
	if table.Length() == 0 {
		span.AddEvent("no table found")
		return models.NotFound(), nil
	}

	var labels []string
	table.Find("th").Each(func(i int, th *goquery.Selection) {
		labels = append(labels, strings.TrimSpace(th.Text()))
	})
	dataset := models.NewDataset(models.UniqueColumns(labels))

	dropped := 0
	table.Find("tr").Each(func(rowIdx int, tr *goquery.Selection) {
		// First row holds the headers
		if rowIdx == 0 {
			return
		}

		var cells []string
		tr.Find("td").Each(func(cellIdx int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) == 0 {
			return
		}

		if len(cells) != len(labels) {
			if e.DiscardMismatchedRows {
				dropped++
				return
			}
			cells = fitCells(cells, len(labels))
		}

		dataset.Rows = append(dataset.Rows, models.StatRow{
			Year:  year,
			Week:  week,
			Cells: cells,
		})
	})

	span.SetAttributes(
		attribute.Int("rows", dataset.Len()),
		attribute.Int("dropped", dropped),
	)
	return dataset, nil
}

// fitCells pads or truncates cells to width
func fitCells(cells []string, width int) []string {
	if len(cells) > width {
		return cells[:width]
	}
	for len(cells) < width {
		cells = append(cells, "")
	}
	return cells
}
