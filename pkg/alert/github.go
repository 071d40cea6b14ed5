package alert

import (
	"github.com/google/go-github/v60/github"
)

// FromDependabot flattens a go-github Dependabot alert into a Record.
func FromDependabot(repo string, a *github.DependabotAlert) Record {
	pkg := a.GetDependency().GetPackage()
	adv := a.GetSecurityAdvisory()
	return Record{
		Number:      a.GetNumber(),
		Repository:  repo,
		Package:     pkg.GetName(),
		State:       State(a.GetState()),
		Severity:    adv.GetSeverity(),
		Ecosystem:   pkg.GetEcosystem(),
		PublishedAt: adv.GetPublishedAt().Time,
		FixedAt:     a.GetFixedAt().Time,
		DismissedAt: a.GetDismissedAt().Time,
	}
}

// FromDependabotList converts a page set of alerts for one repository.
func FromDependabotList(repo string, alerts []*github.DependabotAlert) []Record {
	records := make([]Record, 0, len(alerts))
	for _, a := range alerts {
		records = append(records, FromDependabot(repo, a))
	}
	return records
}
