package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v60/github"
)

// ErrAlertsDisabled matches errors reporting that a repository has
// Dependabot alerts turned off.
var ErrAlertsDisabled = errors.New("dependabot alerts disabled")

// DisabledError carries the upstream message for a repository with alerts disabled.
type DisabledError struct {
	Repo    string
	Message string
}

func (e *DisabledError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Repo, ErrAlertsDisabled, e.Message)
}

func (e *DisabledError) Is(target error) bool {
	return target == ErrAlertsDisabled
}

type Repository struct {
	Name     string
	Archived bool
}

type AlertSource interface {
	// ListRepos returns every repository of the organization, archived included.
	ListRepos(ctx context.Context, org string) ([]Repository, error)

	// ListAlerts returns all Dependabot alerts of a repository in every state.
	// It returns a *DisabledError when alerts are disabled for the repository.
	ListAlerts(ctx context.Context, org, repo string) ([]*github.DependabotAlert, error)
}
