package summary

import (
	"fmt"
	"time"

	"github.com/dependabot-report/pkg/alert"
)

// StateTally is the breakdown of one repository's alerts in a single state.
type StateTally struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`

	Npm      int `json:"npm"`
	Pip      int `json:"pip"`
	Rubygems int `json:"rubygems"`
	Nuget    int `json:"nuget"`
	Maven    int `json:"maven"`
	Composer int `json:"composer"`
	Rust     int `json:"rust"`
	Unknown  int `json:"unknown"`

	// Date is the earliest published date for open alerts and the latest
	// fixed or dismissed date otherwise. Zero when Total is 0.
	Date time.Time `json:"date,omitzero"`
}

// Tallies holds the per-state tallies of one repository.
type Tallies struct {
	Open      StateTally
	Fixed     StateTally
	Dismissed StateTally
}

type counter func(*StateTally) *int

var severityCounters = map[alert.Severity]counter{
	alert.SeverityCritical: func(t *StateTally) *int { return &t.Critical },
	alert.SeverityHigh:     func(t *StateTally) *int { return &t.High },
	alert.SeverityMedium:   func(t *StateTally) *int { return &t.Medium },
	alert.SeverityLow:      func(t *StateTally) *int { return &t.Low },
}

var ecosystemCounters = map[alert.Ecosystem]counter{
	alert.EcosystemNpm:      func(t *StateTally) *int { return &t.Npm },
	alert.EcosystemPip:      func(t *StateTally) *int { return &t.Pip },
	alert.EcosystemRubygems: func(t *StateTally) *int { return &t.Rubygems },
	alert.EcosystemNuget:    func(t *StateTally) *int { return &t.Nuget },
	alert.EcosystemMaven:    func(t *StateTally) *int { return &t.Maven },
	alert.EcosystemComposer: func(t *StateTally) *int { return &t.Composer },
	alert.EcosystemRust:     func(t *StateTally) *int { return &t.Rust },
	alert.EcosystemUnknown:  func(t *StateTally) *int { return &t.Unknown },
}

// Count returns the number of alerts at the given severity.
func (t StateTally) Count(sev alert.Severity) int {
	return *severityCounters[alert.ParseSeverity(string(sev))](&t)
}

// EcosystemCount returns the number of alerts in the given ecosystem bucket.
func (t StateTally) EcosystemCount(eco alert.Ecosystem) int {
	return *ecosystemCounters[alert.ParseEcosystem(string(eco))](&t)
}

func (t *StateTally) add(r alert.Record) {
	t.Total++
	*severityCounters[alert.ParseSeverity(r.Severity)](t)++
	*ecosystemCounters[alert.ParseEcosystem(r.Ecosystem)](t)++
}

// merge adds the counts of o into t. Dates are not merged.
func (t *StateTally) merge(o StateTally) {
	for _, sev := range alert.Severities {
		*severityCounters[sev](t) += o.Count(sev)
	}
	for _, eco := range alert.Ecosystems {
		*ecosystemCounters[eco](t) += o.EcosystemCount(eco)
	}
}

// Classify partitions records by state and tallies each state by severity and
// ecosystem. Records with an unrecognised state are skipped. A record missing
// the date its state requires makes the whole classification fail.
func Classify(records []alert.Record) (Tallies, error) {
	var out Tallies
	for i, r := range records {
		switch r.State {
		case alert.StateOpen:
			if r.PublishedAt.IsZero() {
				return Tallies{}, malformed(i, r, "published_at")
			}
			out.Open.add(r)
			if out.Open.Date.IsZero() || r.PublishedAt.Before(out.Open.Date) {
				out.Open.Date = r.PublishedAt
			}
		case alert.StateFixed:
			if r.FixedAt.IsZero() {
				return Tallies{}, malformed(i, r, "fixed_at")
			}
			out.Fixed.add(r)
			if r.FixedAt.After(out.Fixed.Date) {
				out.Fixed.Date = r.FixedAt
			}
		case alert.StateDismissed:
			if r.DismissedAt.IsZero() {
				return Tallies{}, malformed(i, r, "dismissed_at")
			}
			out.Dismissed.add(r)
			if r.DismissedAt.After(out.Dismissed.Date) {
				out.Dismissed.Date = r.DismissedAt
			}
		}
	}
	return out, nil
}

func malformed(i int, r alert.Record, field string) error {
	return fmt.Errorf("%w: record %d (alert #%d, state %s) has no %s", alert.ErrMalformedRecord, i, r.Number, r.State, field)
}
