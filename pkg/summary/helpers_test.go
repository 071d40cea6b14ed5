package summary

import (
	"time"

	"github.com/dependabot-report/pkg/alert"
)

var refNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return refNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func openAlert(sev, eco string, age int) alert.Record {
	return alert.Record{State: alert.StateOpen, Severity: sev, Ecosystem: eco, PublishedAt: daysAgo(age)}
}

func fixedAlert(sev, eco string, fixedAge int) alert.Record {
	return alert.Record{State: alert.StateFixed, Severity: sev, Ecosystem: eco, PublishedAt: daysAgo(fixedAge + 100), FixedAt: daysAgo(fixedAge)}
}

func dismissedAlert(sev, eco string, dismissedAge int) alert.Record {
	return alert.Record{State: alert.StateDismissed, Severity: sev, Ecosystem: eco, PublishedAt: daysAgo(dismissedAge + 100), DismissedAt: daysAgo(dismissedAge)}
}

func mixedRecords() []alert.Record {
	return []alert.Record{
		openAlert("critical", "npm", 20),
		openAlert("high", "pip", 31),
		openAlert("medium", "maven", 5),
		openAlert("low", "rust", 200),
		openAlert("moderate", "go", 1),
		fixedAlert("critical", "nuget", 3),
		fixedAlert("high", "composer", 1),
		dismissedAlert("low", "rubygems", 9),
		{State: "auto_dismissed", Severity: "high", Ecosystem: "npm"},
	}
}

func severitySum(t StateTally) int {
	return t.Critical + t.High + t.Medium + t.Low
}

func ecosystemSum(t StateTally) int {
	return t.Npm + t.Pip + t.Rubygems + t.Nuget + t.Maven + t.Composer + t.Rust + t.Unknown
}
