// Package models contains data structures for weekly NFL player statistics
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a FantasyPros player position code
type Position string

// Supported positions, in the order they are scraped when "all" is requested
const (
	Quarterback  Position = "qb"
	RunningBack  Position = "rb"
	WideReceiver Position = "wr"
	TightEnd     Position = "te"
	Kicker       Position = "k"
	Defense      Position = "dst"
)

// AllPositions lists every supported position
var AllPositions = []Position{Quarterback, RunningBack, WideReceiver, TightEnd, Kicker, Defense}

// Display returns the upper-case form used in console output
func (p Position) Display() string {
	return strings.ToUpper(string(p))
}

// Synthetic columns that lead every row
const (
	YearColumn = "year"
	WeekColumn = "week"
)

// StatRow holds one player's line for a given week. Cells are aligned with the
// Columns of the Dataset the row belongs to.
type StatRow struct {
	Year  int
	Week  int
	Cells []string
}

// Dataset is a rectangular table of stat rows sharing one column set.
// A weekly dataset holds one week; a yearly dataset is the concatenation of
// weeks over the union of their columns.
type Dataset struct {
	Columns []string
	Rows    []StatRow

	found bool
}

// NewDataset creates an empty dataset for the given source columns
func NewDataset(columns []string) *Dataset {
	return &Dataset{Columns: columns, found: true}
}

// NotFound returns an empty dataset recording that no table was present
func NotFound() *Dataset {
	return &Dataset{}
}

// Found reports whether the source page contained the stats table
func (d *Dataset) Found() bool {
	return d != nil && d.found
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Empty reports whether the dataset has no rows
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// Header returns the full output header: year, week, then the source columns
func (d *Dataset) Header() []string {
	header := make([]string, 0, len(d.Columns)+2)
	header = append(header, YearColumn, WeekColumn)
	return append(header, d.Columns...)
}

// Record returns row i as strings in Header order
func (d *Dataset) Record(i int) []string {
	row := d.Rows[i]
	record := make([]string, 0, len(row.Cells)+2)
	record = append(record, strconv.Itoa(row.Year), strconv.Itoa(row.Week))
	return append(record, row.Cells...)
}

// Append concatenates other onto d. Columns are merged by name: labels new
// to d are added after the existing ones, earlier rows get empty cells for
// them, and other's rows are laid out in the merged column order.
func (d *Dataset) Append(other *Dataset) {
	if other.Empty() {
		return
	}
	d.found = d.found || other.found
	if len(d.Columns) == 0 && len(d.Rows) == 0 {
		d.Columns = append([]string(nil), other.Columns...)
		d.Rows = append(d.Rows, other.Rows...)
		return
	}

	index := make(map[string]int, len(d.Columns))
	for i, c := range d.Columns {
		index[c] = i
	}
	positions := make([]int, len(other.Columns))
	for i, c := range other.Columns {
		pos, ok := index[c]
		if !ok {
			pos = len(d.Columns)
			index[c] = pos
			d.Columns = append(d.Columns, c)
		}
		positions[i] = pos
	}
	width := len(d.Columns)
	for i := range d.Rows {
		for len(d.Rows[i].Cells) < width {
			d.Rows[i].Cells = append(d.Rows[i].Cells, "")
		}
	}

	for _, row := range other.Rows {
		cells := make([]string, width)
		for i, cell := range row.Cells {
			if i < len(positions) {
				cells[positions[i]] = cell
			}
		}
		d.Rows = append(d.Rows, StatRow{Year: row.Year, Week: row.Week, Cells: cells})
	}
}

// UniqueColumns makes header labels usable as keys. Repeated labels (compared
// case-insensitively, and including the synthetic year/week columns) get a
// ".N" suffix in order of appearance; blank labels become "colN".
func UniqueColumns(labels []string) []string {
	used := map[string]bool{
		YearColumn: true,
		WeekColumn: true,
	}
	suffix := map[string]int{}
	out := make([]string, len(labels))
	for i, label := range labels {
		if label == "" {
			label = fmt.Sprintf("col%d", i)
		}
		base := strings.ToLower(label)
		name := label
		for used[strings.ToLower(name)] {
			suffix[base]++
			name = fmt.Sprintf("%s.%d", label, suffix[base])
		}
		used[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}
