package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dependabot-report/pkg/alert"
	"github.com/dependabot-report/pkg/config"
	"github.com/dependabot-report/pkg/summary"
	"github.com/dependabot-report/pkg/vcs"
	"github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Bucket string

const (
	BucketNoAlerts   Bucket = "no_alerts"
	BucketWithAlerts Bucket = "with_alerts"
	BucketDisabled   Bucket = "disabled"
)

// RepoResult is what was retrieved for one active repository.
type RepoResult struct {
	Name            string
	Bucket          Bucket
	Alerts          []*github.DependabotAlert
	DisabledMessage string
}

type Report struct {
	Organization string
	GeneratedAt  time.Time

	// Repos holds one summary per repository with alerts, highest priority first.
	Repos []summary.RepoSummary
	Org   summary.OrgSummary

	// Results is in repository listing order.
	Results  []RepoResult
	Archived []string
}

type Scanner struct {
	source vcs.AlertSource
	config *config.Config
	log    *logrus.Logger
}

func New(source vcs.AlertSource, cfg *config.Config, log *logrus.Logger) *Scanner {
	return &Scanner{
		source: source,
		config: cfg,
		log:    log,
	}
}

func (s *Scanner) Scan(ctx context.Context) (*Report, error) {
	repos, err := s.source.ListRepos(ctx, s.config.Org)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}

	now := s.config.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	report := &Report{Organization: s.config.Org, GeneratedAt: now}

	var active []string
	for _, r := range repos {
		if r.Archived && !s.config.IncludeArchived {
			report.Archived = append(report.Archived, r.Name)
			continue
		}
		active = append(active, r.Name)
	}
	s.log.WithFields(logrus.Fields{
		"org":      s.config.Org,
		"active":   len(active),
		"archived": len(report.Archived),
	}).Info("Scanning repositories")

	results := make([]RepoResult, len(active))
	summaries := make([]*summary.RepoSummary, len(active))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)
	for i, name := range active {
		g.Go(func() error {
			result, sum, err := s.scanRepo(gctx, name, now)
			if err != nil {
				return err
			}
			results[i] = result
			summaries[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buckets summary.RepoBuckets
	for i, res := range results {
		switch res.Bucket {
		case BucketNoAlerts:
			buckets.NoAlerts++
		case BucketDisabled:
			buckets.Disabled++
		case BucketWithAlerts:
			buckets.WithAlerts++
			report.Repos = append(report.Repos, *summaries[i])
		}
	}
	summary.SortByPriority(report.Repos)
	report.Org = summary.Aggregate(buckets, report.Repos)
	report.Results = results

	s.log.WithFields(logrus.Fields{
		"with_alerts": buckets.WithAlerts,
		"no_alerts":   buckets.NoAlerts,
		"disabled":    buckets.Disabled,
		"open":        report.Org.Open.Total,
	}).Info("Scan complete")
	return report, nil
}

func (s *Scanner) scanRepo(ctx context.Context, name string, now time.Time) (RepoResult, *summary.RepoSummary, error) {
	log := s.log.WithField("repo", name)
	log.Info("Getting Dependabot alert info")

	alerts, err := s.source.ListAlerts(ctx, s.config.Org, name)
	if err != nil {
		var disabled *vcs.DisabledError
		if errors.As(err, &disabled) {
			log.WithField("message", disabled.Message).Warn("Dependabot alerts disabled")
			return RepoResult{Name: name, Bucket: BucketDisabled, DisabledMessage: disabled.Message}, nil, nil
		}
		return RepoResult{}, nil, fmt.Errorf("repository %s: %w", name, err)
	}
	if len(alerts) == 0 {
		return RepoResult{Name: name, Bucket: BucketNoAlerts}, nil, nil
	}

	sum, err := s.config.SLO.Summarize(name, alert.FromDependabotList(name, alerts), now)
	if err != nil {
		return RepoResult{}, nil, fmt.Errorf("summarize %s: %w", name, err)
	}
	log.WithFields(logrus.Fields{"open": sum.Open.Total, "priority": sum.Priority}).Debug("Summarized alerts")
	return RepoResult{Name: name, Bucket: BucketWithAlerts, Alerts: alerts}, &sum, nil
}
