package summary

// RepoBuckets counts repositories by alert availability.
type RepoBuckets struct {
	NoAlerts   int
	WithAlerts int
	Disabled   int
}

// OrgSummary rolls the open alerts of every repository up to the organization.
type OrgSummary struct {
	TotalRepos    int        `json:"total_repos"`
	WithAlerts    int        `json:"with_alerts"`
	WithoutAlerts int        `json:"without_alerts"`
	Disabled      int        `json:"disabled"`
	Open          StateTally `json:"open"`
}

// Aggregate sums the open tallies of repos. Fixed and dismissed alerts are not
// rolled up, and the open Date is left zero.
func Aggregate(buckets RepoBuckets, repos []RepoSummary) OrgSummary {
	org := OrgSummary{
		TotalRepos:    buckets.NoAlerts + buckets.WithAlerts + buckets.Disabled,
		WithAlerts:    buckets.WithAlerts,
		WithoutAlerts: buckets.NoAlerts,
		Disabled:      buckets.Disabled,
	}
	for _, r := range repos {
		org.Open.merge(r.Open)
	}
	org.Open.Total = org.Open.Critical + org.Open.High + org.Open.Medium + org.Open.Low
	return org
}
