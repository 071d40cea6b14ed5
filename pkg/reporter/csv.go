package reporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dependabot-report/pkg/alert"
	"github.com/dependabot-report/pkg/scanner"
	"github.com/dependabot-report/pkg/summary"
	"github.com/sirupsen/logrus"
)

const (
	repoCSVFile  = "parsed_data.csv"
	repoTextFile = "parsed_data.txt"
	orgCSVFile   = "org_data.csv"
)

// CSVReporter writes parsed_data.csv, parsed_data.txt and org_data.csv to dir.
type CSVReporter struct {
	dir string
	log *logrus.Logger
}

func (r *CSVReporter) Report(_ context.Context, report *scanner.Report) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("csv: mkdir: %w", err)
	}

	repoRows := [][]string{repoHeader()}
	for _, repo := range report.Repos {
		repoRows = append(repoRows, repoRow(repo))
	}
	if err := writeCSV(filepath.Join(r.dir, repoCSVFile), repoRows); err != nil {
		return err
	}
	r.log.WithField("file", filepath.Join(r.dir, repoCSVFile)).Info("Repo CSV data written")

	txtPath := filepath.Join(r.dir, repoTextFile)
	if err := writeFile(txtPath, func(w io.Writer) error { return writeTable(w, report) }); err != nil {
		return err
	}
	r.log.WithField("file", txtPath).Info("Text report written")

	if err := writeCSV(filepath.Join(r.dir, orgCSVFile), [][]string{orgHeader(), orgRow(report.Org)}); err != nil {
		return err
	}
	r.log.WithField("file", filepath.Join(r.dir, orgCSVFile)).Info("Org data written")
	return nil
}

func writeCSV(path string, rows [][]string) error {
	return writeFile(path, func(w io.Writer) error {
		return csv.NewWriter(w).WriteAll(rows)
	})
}

// writeFile creates path, fills it with write and reports the Close error.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

var severityLabels = map[alert.Severity]string{
	alert.SeverityCritical: "Crit",
	alert.SeverityHigh:     "High",
	alert.SeverityMedium:   "Med",
	alert.SeverityLow:      "Low",
}

var ecosystemLabels = map[alert.Ecosystem]string{
	alert.EcosystemNpm:      "Npm",
	alert.EcosystemPip:      "Pip",
	alert.EcosystemRubygems: "Rubygems",
	alert.EcosystemNuget:    "Nuget",
	alert.EcosystemMaven:    "Maven",
	alert.EcosystemComposer: "Composer",
	alert.EcosystemRust:     "Rust",
	alert.EcosystemUnknown:  "Unknown",
}

// tallyHeader names the columns of a state tally, prefixed with the state label.
func tallyHeader(prefix string, withDate bool) []string {
	cols := []string{prefix + " Total"}
	for _, sev := range alert.Severities {
		cols = append(cols, prefix+" "+severityLabels[sev])
	}
	if withDate {
		cols = append(cols, prefix+" Date")
	}
	for _, eco := range alert.Ecosystems {
		cols = append(cols, prefix+" "+ecosystemLabels[eco])
	}
	return cols
}

func tallyRow(t summary.StateTally, withDate bool) []string {
	cols := []string{strconv.Itoa(t.Total)}
	for _, sev := range alert.Severities {
		cols = append(cols, strconv.Itoa(t.Count(sev)))
	}
	if withDate {
		cols = append(cols, alert.FormatTimestamp(t.Date))
	}
	for _, eco := range alert.Ecosystems {
		cols = append(cols, strconv.Itoa(t.EcosystemCount(eco)))
	}
	return cols
}

func repoHeader() []string {
	cols := []string{"Name"}
	cols = append(cols, tallyHeader("Open", true)...)
	cols = append(cols, "Priority")
	cols = append(cols, tallyHeader("Fixed", true)...)
	cols = append(cols, tallyHeader("Dismissed", true)...)
	for _, sev := range alert.Severities {
		cols = append(cols, severityLabels[sev]+" Exceeded")
	}
	for _, sev := range alert.Severities {
		cols = append(cols, severityLabels[sev]+" Percentage")
	}
	return cols
}

func repoRow(repo summary.RepoSummary) []string {
	cols := []string{repo.Name}
	cols = append(cols, tallyRow(repo.Open, true)...)
	cols = append(cols, strconv.Itoa(repo.Priority))
	cols = append(cols, tallyRow(repo.Fixed, true)...)
	cols = append(cols, tallyRow(repo.Dismissed, true)...)
	for _, sev := range alert.Severities {
		cols = append(cols, strconv.Itoa(repo.SLO.Exceeded[sev]))
	}
	for _, sev := range alert.Severities {
		cols = append(cols, strconv.FormatFloat(repo.SLO.Percentage[sev], 'f', -1, 64))
	}
	return cols
}

func orgHeader() []string {
	cols := []string{"Total Number of Repos", "Repos with alerts", "Repos without alerts", "Repos disabled alerts"}
	return append(cols, tallyHeader("Open", false)...)
}

func orgRow(org summary.OrgSummary) []string {
	cols := []string{
		strconv.Itoa(org.TotalRepos),
		strconv.Itoa(org.WithAlerts),
		strconv.Itoa(org.WithoutAlerts),
		strconv.Itoa(org.Disabled),
	}
	return append(cols, tallyRow(org.Open, false)...)
}
