package export

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

// SQLiteTable is the table the sqlite exporter writes rows into
const SQLiteTable = "stats"

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func writeSQLite(path string, ds *models.Dataset) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	defs := []string{
		quoteIdent(models.YearColumn) + " INTEGER NOT NULL",
		quoteIdent(models.WeekColumn) + " INTEGER NOT NULL",
	}
	for _, name := range ds.Columns {
		defs = append(defs, quoteIdent(name)+" TEXT")
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(SQLiteTable), strings.Join(defs, ", "))
	if _, err := db.Exec(create); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	header := ds.Header()
	cols := make([]string, len(header))
	for i, name := range header {
		cols[i] = quoteIdent(name)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(header)), ", ")
	insert := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(SQLiteTable), strings.Join(cols, ", "), placeholders,
	)

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(insert)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(header))
	for i, row := range ds.Rows {
		args[0] = row.Year
		args[1] = row.Week
		for j, cell := range row.Cells {
			args[j+2] = cell
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}
