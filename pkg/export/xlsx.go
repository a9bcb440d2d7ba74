package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

// XLSXSheet is the worksheet the xlsx exporter writes rows into
const XLSXSheet = "stats"

func writeXLSX(w io.Writer, ds *models.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		return err
	}

	header := make([]any, 0, len(ds.Columns)+2)
	for _, name := range ds.Header() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range ds.Rows {
		values := make([]any, 0, len(row.Cells)+2)
		values = append(values, row.Year, row.Week)
		for _, cell := range row.Cells {
			values = append(values, cell)
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(XLSXSheet, cellName, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return f.Write(w)
}
