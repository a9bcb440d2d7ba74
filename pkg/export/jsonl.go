package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

// writeJSONLines writes one JSON object per row. Keys keep column order, with
// year and week emitted as numbers and every other cell as a string.
func writeJSONLines(w io.Writer, ds *models.Dataset) error {
	bw := bufio.NewWriter(w)

	keys := make([][]byte, 0, len(ds.Columns)+2)
	for _, name := range ds.Header() {
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}

	var line bytes.Buffer
	for _, row := range ds.Rows {
		line.Reset()
		line.WriteByte('{')
		line.Write(keys[0])
		line.WriteByte(':')
		line.WriteString(strconv.Itoa(row.Year))
		line.WriteByte(',')
		line.Write(keys[1])
		line.WriteByte(':')
		line.WriteString(strconv.Itoa(row.Week))
		for i, cell := range row.Cells {
			value, err := json.Marshal(cell)
			if err != nil {
				return err
			}
			line.WriteByte(',')
			line.Write(keys[i+2])
			line.WriteByte(':')
			line.Write(value)
		}
		line.WriteString("}\n")
		if _, err := bw.Write(line.Bytes()); err != nil {
			return err
		}
	}

	return bw.Flush()
}
