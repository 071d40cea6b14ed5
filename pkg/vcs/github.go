package vcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"
)

const perPage = 100

type GitHubClient struct {
	client *github.Client
	log    *logrus.Logger
}

func NewGitHubClient(client *github.Client, log *logrus.Logger) *GitHubClient {
	return &GitHubClient{
		client: client,
		log:    log,
	}
}

func (g *GitHubClient) ListRepos(ctx context.Context, org string) ([]Repository, error) {
	var repos []Repository
	opts := &github.RepositoryListByOrgOptions{ListOptions: github.ListOptions{PerPage: perPage}}

	for {
		page, resp, err := g.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("list repos for %s: %w", org, err)
		}
		for _, r := range page {
			repos = append(repos, Repository{
				Name:     r.GetName(),
				Archived: r.GetArchived(),
			})
		}
		g.log.WithFields(logrus.Fields{"org": org, "page": opts.Page, "count": len(page)}).Debug("Listed repositories")
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func (g *GitHubClient) ListAlerts(ctx context.Context, org, repo string) ([]*github.DependabotAlert, error) {
	var all []*github.DependabotAlert
	opts := &github.ListAlertsOptions{ListCursorOptions: github.ListCursorOptions{PerPage: perPage}}

	for {
		page, resp, err := g.client.Dependabot.ListRepoAlerts(ctx, org, repo, opts)
		if err != nil {
			var errResp *github.ErrorResponse
			if errors.As(err, &errResp) && isDisabledStatus(errResp) {
				return nil, &DisabledError{Repo: repo, Message: errResp.Message}
			}
			return nil, fmt.Errorf("list dependabot alerts for %s/%s: %w", org, repo, err)
		}
		all = append(all, page...)
		if resp.After == "" {
			break
		}
		opts.ListCursorOptions.After = resp.After
	}
	g.log.WithFields(logrus.Fields{"repo": repo, "alerts": len(all)}).Debug("Fetched dependabot alerts")
	return all, nil
}

// The alerts endpoint answers 403 when Dependabot alerts are turned off and
// 404 when the token cannot see them; both mean no alert data for the repo.
func isDisabledStatus(errResp *github.ErrorResponse) bool {
	if errResp.Response == nil {
		return false
	}
	switch errResp.Response.StatusCode {
	case http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}
