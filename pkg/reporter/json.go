package reporter

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/dependabot-report/pkg/scanner"
	"github.com/dependabot-report/pkg/summary"
)

type JSONReporter struct {
	out io.Writer
}

func (r *JSONReporter) Report(_ context.Context, report *scanner.Report) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")

	type output struct {
		Organization string                `json:"organization"`
		GeneratedAt  time.Time             `json:"generated_at"`
		Org          summary.OrgSummary    `json:"org"`
		Repos        []summary.RepoSummary `json:"repos"`
		Archived     []string              `json:"archived,omitempty"`
	}

	return enc.Encode(output{
		Organization: report.Organization,
		GeneratedAt:  report.GeneratedAt,
		Org:          report.Org,
		Repos:        report.Repos,
		Archived:     report.Archived,
	})
}
