package summary

import "sort"

// SortByPriority orders repos by priority, highest first. Repositories with
// equal priority keep their relative order.
func SortByPriority(repos []RepoSummary) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Priority > repos[j].Priority
	})
}

// Top returns the first n entries of repos, or all of them if there are fewer.
func Top(repos []RepoSummary, n int) []RepoSummary {
	if n < 0 || n > len(repos) {
		n = len(repos)
	}
	return repos[:n]
}
