package summary

import (
	"time"

	"github.com/dependabot-report/pkg/alert"
)

// RepoSummary is the computed view of one repository with at least one alert.
type RepoSummary struct {
	Name      string     `json:"name"`
	Open      StateTally `json:"open"`
	Fixed     StateTally `json:"fixed"`
	Dismissed StateTally `json:"dismissed"`
	SLO       SLOResult  `json:"slo"`
	Priority  int        `json:"priority"`
}

// Summarize classifies records, evaluates them against the default SLO policy
// and derives the remediation priority.
func Summarize(name string, records []alert.Record, now time.Time) (RepoSummary, error) {
	return DefaultPolicy.Summarize(name, records, now)
}

// Summarize is the package-level Summarize with the thresholds of p.
func (p Policy) Summarize(name string, records []alert.Record, now time.Time) (RepoSummary, error) {
	tallies, err := Classify(records)
	if err != nil {
		return RepoSummary{}, err
	}
	slo, err := p.Evaluate(records, tallies.Open, now)
	if err != nil {
		return RepoSummary{}, err
	}
	return RepoSummary{
		Name:      name,
		Open:      tallies.Open,
		Fixed:     tallies.Fixed,
		Dismissed: tallies.Dismissed,
		SLO:       slo,
		Priority:  Priority(tallies.Open),
	}, nil
}

// Priority is the remediation score of an open tally: critical plus high.
func Priority(open StateTally) int {
	return open.Critical + open.High
}
