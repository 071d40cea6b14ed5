package reporter

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dependabot-report/pkg/alert"
	"github.com/dependabot-report/pkg/scanner"
	"github.com/dependabot-report/pkg/summary"
)

type TableReporter struct {
	out io.Writer
}

func (r *TableReporter) Report(_ context.Context, report *scanner.Report) error {
	return writeTable(r.out, report)
}

func writeTable(out io.Writer, report *scanner.Report) error {
	org := report.Org
	fmt.Fprintf(out, "Organization: %s (%s)\n", report.Organization, alert.FormatTimestamp(report.GeneratedAt))
	fmt.Fprintf(out, "Repositories: %d total, %d with alerts, %d without alerts, %d alerts disabled\n",
		org.TotalRepos, org.WithAlerts, org.WithoutAlerts, org.Disabled)
	fmt.Fprintf(out, "Open alerts: %d (critical %d, high %d, medium %d, low %d)\n\n",
		org.Open.Total, org.Open.Critical, org.Open.High, org.Open.Medium, org.Open.Low)

	if len(report.Repos) == 0 {
		fmt.Fprintln(out, "No Dependabot alerts found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPOSITORY\tPRIORITY\tOPEN\tCRITICAL\tHIGH\tMEDIUM\tLOW\tOLDEST OPEN\tFIXED\tDISMISSED")
	fmt.Fprintln(w, "----------\t--------\t----\t--------\t----\t------\t---\t-----------\t-----\t---------")

	for _, repo := range report.Repos {
		oldest := alert.FormatTimestamp(repo.Open.Date)
		if oldest == "" {
			oldest = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			repo.Name,
			repo.Priority,
			repo.Open.Total,
			sloCell(repo, alert.SeverityCritical),
			sloCell(repo, alert.SeverityHigh),
			sloCell(repo, alert.SeverityMedium),
			sloCell(repo, alert.SeverityLow),
			oldest,
			repo.Fixed.Total,
			repo.Dismissed.Total,
		)
	}
	return w.Flush()
}

// sloCell renders "open/exceeded (percentage)" for one severity.
func sloCell(repo summary.RepoSummary, sev alert.Severity) string {
	return fmt.Sprintf("%d/%d (%s)", repo.Open.Count(sev), repo.SLO.Exceeded[sev], formatPercent(repo.SLO.Percentage[sev]))
}
