package export

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

// parquetSchema types year and week as INT64 and every source column as a
// UTF-8 string. Parquet orders group fields by name, so leaf indexes are
// looked up rather than assumed to follow the header order.
func parquetSchema(ds *models.Dataset) (*parquet.Schema, map[string]int) {
	group := parquet.Group{
		models.YearColumn: parquet.Int(64),
		models.WeekColumn: parquet.Int(64),
	}
	for _, name := range ds.Columns {
		group[name] = parquet.String()
	}
	schema := parquet.NewSchema("stats", group)

	index := make(map[string]int, len(group))
	for i, path := range schema.Columns() {
		index[path[0]] = i
	}
	return schema, index
}

func writeParquet(w io.Writer, ds *models.Dataset) error {
	schema, index := parquetSchema(ds)
	yearIdx := index[models.YearColumn]
	weekIdx := index[models.WeekColumn]
	cellIdx := make([]int, len(ds.Columns))
	for i, name := range ds.Columns {
		cellIdx[i] = index[name]
	}

	rows := make([]parquet.Row, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		row := make(parquet.Row, len(index))
		row[yearIdx] = parquet.Int64Value(int64(r.Year)).Level(0, 0, yearIdx)
		row[weekIdx] = parquet.Int64Value(int64(r.Week)).Level(0, 0, weekIdx)
		for i, cell := range r.Cells {
			row[cellIdx[i]] = parquet.ByteArrayValue([]byte(cell)).Level(0, 0, cellIdx[i])
		}
		rows = append(rows, row)
	}

	pw := parquet.NewWriter(w, schema)
	if _, err := pw.WriteRows(rows); err != nil {
		pw.Close()
		return err
	}
	return pw.Close()
}
