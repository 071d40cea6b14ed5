package alert

import (
	"errors"
	"time"
)

// ErrMalformedRecord is returned when a record lacks the date its state requires.
var ErrMalformedRecord = errors.New("malformed alert record")

type State string

const (
	StateOpen      State = "open"
	StateFixed     State = "fixed"
	StateDismissed State = "dismissed"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists the severities from most to least urgent.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

type Ecosystem string

const (
	EcosystemNpm      Ecosystem = "npm"
	EcosystemPip      Ecosystem = "pip"
	EcosystemRubygems Ecosystem = "rubygems"
	EcosystemNuget    Ecosystem = "nuget"
	EcosystemMaven    Ecosystem = "maven"
	EcosystemComposer Ecosystem = "composer"
	EcosystemRust     Ecosystem = "rust"
	EcosystemUnknown  Ecosystem = "unknown"
)

// Ecosystems lists every ecosystem bucket, catch-all last.
var Ecosystems = []Ecosystem{
	EcosystemNpm,
	EcosystemPip,
	EcosystemRubygems,
	EcosystemNuget,
	EcosystemMaven,
	EcosystemComposer,
	EcosystemRust,
	EcosystemUnknown,
}

// Record is a single Dependabot alert, flattened from the API representation.
// Only the date matching State is meaningful; a zero time means absent.
type Record struct {
	Number      int
	Repository  string
	Package     string
	State       State
	Severity    string
	Ecosystem   string
	PublishedAt time.Time
	FixedAt     time.Time
	DismissedAt time.Time
}

var severityByName = map[string]Severity{
	"critical": SeverityCritical,
	"high":     SeverityHigh,
	"medium":   SeverityMedium,
}

// ParseSeverity maps an API severity to its bucket. Anything that is not
// critical, high or medium is counted as low.
func ParseSeverity(s string) Severity {
	if sev, ok := severityByName[s]; ok {
		return sev
	}
	return SeverityLow
}

var ecosystemByName = map[string]Ecosystem{
	"npm":      EcosystemNpm,
	"pip":      EcosystemPip,
	"rubygems": EcosystemRubygems,
	"nuget":    EcosystemNuget,
	"maven":    EcosystemMaven,
	"composer": EcosystemComposer,
	"rust":     EcosystemRust,
}

// ParseEcosystem maps an API package ecosystem to its bucket, defaulting to unknown.
func ParseEcosystem(s string) Ecosystem {
	if eco, ok := ecosystemByName[s]; ok {
		return eco
	}
	return EcosystemUnknown
}
