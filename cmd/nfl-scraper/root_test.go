package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/myusername/nfl-stats-scraper/pkg/selector"
)

const weekOnePage = `<html><body>
<table id="data">
  <thead><tr><th>Rank</th><th>Player</th><th>FPTS</th></tr></thead>
  <tbody>
    <tr><td>1</td><td>Tua Tagovailoa (MIA)</td><td>27.6</td></tr>
    <tr><td>2</td><td>Kirk Cousins (MIN)</td><td>21.8</td></tr>
  </tbody>
</table>
</body></html>`

func stubServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nfl/stats/qb.php" || r.URL.Query().Get("week") != "1" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, weekOnePage)
	}))
	t.Cleanup(server.Close)
	return server
}

// writeConfig points the scraper at the stub server with near-zero delays
func writeConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()
	path := filepath.Join(dir, "nfl-scraper.json5")
	cfg := fmt.Sprintf(`{ base_url: %q, delay_min_ms: 1, delay_max_ms: 2 }`, baseURL)
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEndToEndCSV(t *testing.T) {
	server := stubServer(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "data")

	out, err := execute(t,
		"--position", "qb",
		"--year", "2023",
		"--week", "1-2",
		"--format", "csv",
		"--output", output,
		"--config", writeConfig(t, dir, server.URL),
	)
	require.NoError(t, err, out)

	f, err := os.Open(filepath.Join(output, "qb", "qb_2023.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	require.Equal(t, []string{"year", "week", "Rank", "Player", "FPTS"}, records[0])
	require.Equal(t, []string{"2023", "1", "2", "Kirk Cousins (MIN)", "21.8"}, records[2])
	require.Contains(t, out, "qb_2023.csv")
}

func TestConfigFormatUsedUnlessFlagSet(t *testing.T) {
	server := stubServer(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nfl-scraper.json5")
	cfg := fmt.Sprintf(`{ base_url: %q, delay_min_ms: 1, delay_max_ms: 1, format: "json", output: %q }`,
		server.URL, filepath.Join(dir, "from-config"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	_, err := execute(t, "--position", "qb", "--year", "2023", "--week", "1", "--config", cfgPath)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "from-config", "qb", "qb_2023.json"))

	_, err = execute(t, "--position", "qb", "--year", "2023", "--week", "1", "--config", cfgPath,
		"--format", "xlsx")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "from-config", "qb", "qb_2023.xlsx"))
}

func TestInvalidPositionFailsBeforeFetching(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()
	dir := t.TempDir()

	_, err := execute(t, "--position", "punter", "--config", writeConfig(t, dir, server.URL),
		"--output", filepath.Join(dir, "data"))
	require.ErrorIs(t, err, selector.ErrInvalidPosition)
	require.Zero(t, hits)
	require.NoDirExists(t, filepath.Join(dir, "data"))
}

func TestInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--format", "yaml", "--config", filepath.Join(dir, "none.json5"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown format")
}

func TestDefaultYearsFollowClock(t *testing.T) {
	prev := now
	now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })

	dir := t.TempDir()
	// an empty range selects nothing, so the run finishes without fetching
	out, err := execute(t, "--position", "qb", "--week", "3-1", "--config", filepath.Join(dir, "none.json5"),
		"--output", filepath.Join(dir, "data"))
	require.NoError(t, err)
	// summary rows for every default season
	require.Contains(t, out, fmt.Sprintf(" %d ", selector.FirstYear))
	require.Contains(t, out, " 2024 ")
	require.NotContains(t, out, " 2025 ")
}
