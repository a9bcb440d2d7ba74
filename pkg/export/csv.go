package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

// writeCSV writes the header row followed by one record per stat row
func writeCSV(w io.Writer, ds *models.Dataset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ds.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range ds.Rows {
		if err := cw.Write(ds.Record(i)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
