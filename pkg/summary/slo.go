package summary

import (
	"fmt"
	"math"
	"time"

	"github.com/dependabot-report/pkg/alert"
)

// Policy is the maximum number of days an alert of each severity may stay open.
type Policy struct {
	Critical int `yaml:"critical"`
	High     int `yaml:"high"`
	Medium   int `yaml:"medium"`
	Low      int `yaml:"low"`
}

// DefaultPolicy is the remediation SLO in days per severity.
var DefaultPolicy = Policy{
	Critical: 15,
	High:     30,
	Medium:   90,
	Low:      180,
}

// Threshold returns the SLO in days for sev.
func (p Policy) Threshold(sev alert.Severity) int {
	switch alert.ParseSeverity(string(sev)) {
	case alert.SeverityCritical:
		return p.Critical
	case alert.SeverityHigh:
		return p.High
	case alert.SeverityMedium:
		return p.Medium
	default:
		return p.Low
	}
}

// Validate reports an error for any non-positive threshold.
func (p Policy) Validate() error {
	for _, sev := range alert.Severities {
		if p.Threshold(sev) <= 0 {
			return fmt.Errorf("slo threshold for %s must be positive, got %d", sev, p.Threshold(sev))
		}
	}
	return nil
}

// SLOResult holds, per severity, how many open alerts are past their SLO and
// what share of that severity's open alerts they are.
type SLOResult struct {
	Exceeded   map[alert.Severity]int     `json:"exceeded"`
	Percentage map[alert.Severity]float64 `json:"percentage"`
}

func newSLOResult() SLOResult {
	res := SLOResult{
		Exceeded:   make(map[alert.Severity]int, len(alert.Severities)),
		Percentage: make(map[alert.Severity]float64, len(alert.Severities)),
	}
	for _, sev := range alert.Severities {
		res.Exceeded[sev] = 0
		res.Percentage[sev] = 0
	}
	return res
}

// EvaluateSLO counts open alerts whose age has reached the default policy
// threshold and converts the counts into percentages of open.
func EvaluateSLO(records []alert.Record, open StateTally, now time.Time) (SLOResult, error) {
	return DefaultPolicy.Evaluate(records, open, now)
}

// Evaluate is EvaluateSLO with the thresholds of p.
func (p Policy) Evaluate(records []alert.Record, open StateTally, now time.Time) (SLOResult, error) {
	res := newSLOResult()
	for i, r := range records {
		if r.State != alert.StateOpen {
			continue
		}
		if r.PublishedAt.IsZero() {
			return SLOResult{}, malformed(i, r, "published_at")
		}
		sev := alert.ParseSeverity(r.Severity)
		if AgeDays(r.PublishedAt, now) >= p.Threshold(sev) {
			res.Exceeded[sev]++
		}
	}
	for _, sev := range alert.Severities {
		res.Percentage[sev] = percentage(res.Exceeded[sev], open.Count(sev))
	}
	return res, nil
}

// AgeDays is the number of whole days between published and now, rounded down.
func AgeDays(published, now time.Time) int {
	return int(math.Floor(now.Sub(published).Hours() / 24))
}

func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*100*100) / 100
}
