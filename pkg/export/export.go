// Package export writes yearly stat datasets to disk in the supported file formats
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

// Format is an output file format
type Format string

const (
	CSV     Format = "csv"
	JSON    Format = "json"
	Parquet Format = "parquet"
	SQLite  Format = "sqlite"
	XLSX    Format = "xlsx"
)

// Formats lists the accepted --format values
var Formats = []Format{CSV, Parquet, JSON, SQLite, XLSX}

// ErrUnknownFormat is returned for a format name or value with no writer
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat maps a user-supplied name onto a Format. JSON output is
// newline-delimited, so "json-lines" and "jsonl" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return CSV, nil
	case "json", "json-lines", "jsonl":
		return JSON, nil
	case "parquet":
		return Parquet, nil
	case "sqlite", "sqlite3", "db":
		return SQLite, nil
	case "xlsx", "excel":
		return XLSX, nil
	}
	return "", fmt.Errorf("%w %q (expected one of %s)", ErrUnknownFormat, name, formatList())
}

// Ext returns the file extension used for the format, without the dot
func (f Format) Ext() string {
	return string(f)
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// FileName returns "{position}_{year}.{ext}"
func FileName(position models.Position, year int, format Format) string {
	return fmt.Sprintf("%s_%d.%s", position, year, format.Ext())
}

type fileWriter func(path string, ds *models.Dataset) error

func writerFor(format Format) (fileWriter, error) {
	switch format {
	case CSV:
		return streamTo(writeCSV), nil
	case JSON:
		return streamTo(writeJSONLines), nil
	case Parquet:
		return streamTo(writeParquet), nil
	case XLSX:
		return streamTo(writeXLSX), nil
	case SQLite:
		return writeSQLite, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// streamTo adapts an io.Writer encoder into a fileWriter
func streamTo(encode func(w io.Writer, ds *models.Dataset) error) fileWriter {
	return func(path string, ds *models.Dataset) error {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		if err := encode(f, ds); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}

// WriteFile serializes ds to path. The data is first written to a temporary
// file in the same directory and renamed into place, so a failed write never
// leaves a partial file at path.
func WriteFile(path string, format Format, ds *models.Dataset) error {
	write, err := writerFor(format)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if err := write(tmpPath, ds); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s data: %w", format, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
