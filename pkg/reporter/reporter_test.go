package reporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dependabot-report/pkg/alert"
	"github.com/dependabot-report/pkg/config"
	"github.com/dependabot-report/pkg/notify"
	"github.com/dependabot-report/pkg/scanner"
	"github.com/dependabot-report/pkg/summary"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleReport(t *testing.T) *scanner.Report {
	t.Helper()
	records := []alert.Record{
		{State: alert.StateOpen, Severity: "critical", Ecosystem: "npm", PublishedAt: now.AddDate(0, 0, -20)},
		{State: alert.StateOpen, Severity: "high", Ecosystem: "pip", PublishedAt: now.AddDate(0, 0, -3)},
		{State: alert.StateFixed, Severity: "low", Ecosystem: "rust", PublishedAt: now.AddDate(0, 0, -30), FixedAt: now.AddDate(0, 0, -1)},
	}
	web, err := summary.Summarize("web", records, now)
	require.NoError(t, err)
	api, err := summary.Summarize("api", records[:1], now)
	require.NoError(t, err)

	repos := []summary.RepoSummary{web, api}
	summary.SortByPriority(repos)
	return &scanner.Report{
		Organization: "acme",
		GeneratedAt:  now,
		Repos:        repos,
		Org:          summary.Aggregate(summary.RepoBuckets{WithAlerts: 2, NoAlerts: 1}, repos),
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func column(t *testing.T, header, row []string, name string) string {
	t.Helper()
	for i, h := range header {
		if h == name {
			return row[i]
		}
	}
	t.Fatalf("column %q not found", name)
	return ""
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	for output, want := range map[string]any{
		"json":  &JSONReporter{},
		"csv":   &CSVReporter{},
		"table": &TableReporter{},
		"slack": &notify.Slack{},
	} {
		cfg.Output = output
		assert.IsType(t, want, New(cfg, io.Discard, quietLogger()), output)
	}
}

func TestCSVReporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r := &CSVReporter{dir: dir, log: quietLogger()}
	require.NoError(t, r.Report(context.Background(), sampleReport(t)))

	rows := readCSV(t, filepath.Join(dir, repoCSVFile))
	require.Len(t, rows, 3)
	header := rows[0]
	assert.Equal(t, "Name", header[0])
	assert.Len(t, header, 1+14+1+14+14+4+4)

	first := rows[1]
	assert.Equal(t, "web", first[0])
	assert.Equal(t, "2", column(t, header, first, "Open Total"))
	assert.Equal(t, "2", column(t, header, first, "Priority"))
	assert.Equal(t, "1", column(t, header, first, "Open Npm"))
	assert.Equal(t, "2024-05-12 12:00:00", column(t, header, first, "Open Date"))
	assert.Equal(t, "1", column(t, header, first, "Fixed Rust"))
	assert.Equal(t, "", column(t, header, first, "Dismissed Date"))
	assert.Equal(t, "1", column(t, header, first, "Crit Exceeded"))
	assert.Equal(t, "100", column(t, header, first, "Crit Percentage"))
	assert.Equal(t, "0", column(t, header, first, "High Percentage"))
	assert.Equal(t, "api", rows[2][0])

	org := readCSV(t, filepath.Join(dir, orgCSVFile))
	require.Len(t, org, 2)
	assert.Equal(t, "3", column(t, org[0], org[1], "Total Number of Repos"))
	assert.Equal(t, "2", column(t, org[0], org[1], "Open Crit"))
	assert.Equal(t, "3", column(t, org[0], org[1], "Open Total"))
	assert.NotContains(t, org[0], "Open Date")

	txt, err := os.ReadFile(filepath.Join(dir, repoTextFile))
	require.NoError(t, err)
	assert.Contains(t, string(txt), "REPOSITORY")
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableReporter{out: &buf}).Report(context.Background(), sampleReport(t)))

	out := buf.String()
	assert.Contains(t, out, "Organization: acme (2024-06-01 12:00:00)")
	assert.Contains(t, out, "3 total, 2 with alerts, 1 without alerts, 0 alerts disabled")
	assert.Contains(t, out, "1/1 (100%)")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("web")), bytes.Index(buf.Bytes(), []byte("api")))
}

func TestTableReporterNoAlerts(t *testing.T) {
	var buf bytes.Buffer
	report := &scanner.Report{Organization: "acme", Org: summary.Aggregate(summary.RepoBuckets{NoAlerts: 1}, nil)}
	require.NoError(t, (&TableReporter{out: &buf}).Report(context.Background(), report))
	assert.Contains(t, buf.String(), "No Dependabot alerts found.")
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{out: &buf}).Report(context.Background(), sampleReport(t)))

	var decoded struct {
		Organization string `json:"organization"`
		Org          struct {
			TotalRepos int            `json:"total_repos"`
			Open       map[string]any `json:"open"`
		} `json:"org"`
		Repos []struct {
			Name      string         `json:"name"`
			Priority  int            `json:"priority"`
			Open      map[string]any `json:"open"`
			Dismissed map[string]any `json:"dismissed"`
			SLO       struct {
				Percentage map[string]float64 `json:"percentage"`
			} `json:"slo"`
		} `json:"repos"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "acme", decoded.Organization)
	assert.Equal(t, 3, decoded.Org.TotalRepos)
	assert.NotContains(t, decoded.Org.Open, "date")
	require.Len(t, decoded.Repos, 2)
	assert.Equal(t, "web", decoded.Repos[0].Name)
	assert.Equal(t, 2, decoded.Repos[0].Priority)
	assert.Equal(t, 100.0, decoded.Repos[0].SLO.Percentage["critical"])
	assert.Equal(t, "2024-05-12T12:00:00Z", decoded.Repos[0].Open["date"])
	assert.NotContains(t, decoded.Repos[0].Dismissed, "date")
	assert.NotContains(t, buf.String(), "TotalRepos")
	assert.NotContains(t, buf.String(), "0001-01-01")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	boom := errors.New("boom")
	err = writeFile(path, func(io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = writeFile(filepath.Join(path, "nested"), func(io.Writer) error { return nil })
	assert.Error(t, err)
}
