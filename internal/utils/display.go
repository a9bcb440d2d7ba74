// Package utils provides console helpers for the nfl-stats-scraper
package utils

import (
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/myusername/nfl-stats-scraper/pkg/scraper"
)

// NewTable returns a table writer rendering to w
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// DisplayResults prints one line per position/season with the rows saved,
// the weeks skipped and the output path.
func DisplayResults(w io.Writer, results []scraper.Result) {
	t := NewTable(w)
	t.SetTitle("SCRAPE SUMMARY")
	t.AppendHeader(table.Row{"Position", "Year", "Rows", "Skipped Weeks", "File"})

	total, written := 0, 0
	for _, r := range results {
		file := r.Path
		if file == "" {
			file = "-"
		} else {
			written++
		}
		total += r.Rows
		t.AppendRow(table.Row{r.Position.Display(), r.Year, r.Rows, formatWeeks(r.Skipped), file})
	}

	t.AppendFooter(table.Row{"", "Total", total, "", strconv.Itoa(written) + " files"})
	t.Render()
}

// formatWeeks renders a week list compactly, collapsing consecutive runs: 1-3,7
func formatWeeks(weeks []int) string {
	if len(weeks) == 0 {
		return "-"
	}
	var parts []string
	start, prev := weeks[0], weeks[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, strconv.Itoa(start)+"-"+strconv.Itoa(prev))
		}
	}
	for _, w := range weeks[1:] {
		if w == prev+1 {
			prev = w
			continue
		}
		flush()
		start, prev = w, w
	}
	flush()
	return strings.Join(parts, ",")
}
