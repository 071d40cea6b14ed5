package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dependabot-report/pkg/config"
	"github.com/dependabot-report/pkg/scanner"
	"github.com/dependabot-report/pkg/summary"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

const noReposText = "No repositories with open Dependabot alerts."

// Slack posts report summaries to an incoming webhook. In dry-run mode the
// messages are written to out instead.
type Slack struct {
	webhook    string
	httpClient *http.Client
	settings   config.Slack
	top        int
	dryRun     bool
	out        io.Writer
	log        *logrus.Logger
}

func NewSlack(cfg *config.Config, out io.Writer, log *logrus.Logger) *Slack {
	return &Slack{
		webhook:    cfg.SlackWebhook,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		settings:   cfg.Slack,
		top:        cfg.Top,
		dryRun:     cfg.DryRun,
		out:        out,
		log:        log,
	}
}

// Report sends the top repositories message followed by the organization totals.
func (s *Slack) Report(ctx context.Context, report *scanner.Report) error {
	reposText, err := RenderRepos(summary.Top(report.Repos, s.top))
	if err != nil {
		return err
	}
	if reposText == "" {
		reposText = noReposText
	}
	if err := s.Post(ctx, s.reposHeader(), reposText); err != nil {
		return fmt.Errorf("post repos message: %w", err)
	}

	orgText, err := RenderOrg(s.settings.Title, report.Org)
	if err != nil {
		return err
	}
	if err := s.Post(ctx, s.settings.HeaderOrg, orgText); err != nil {
		return fmt.Errorf("post org message: %w", err)
	}
	return nil
}

var countWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten"}

// reposHeader is the configured header, or one naming the top count.
func (s *Slack) reposHeader() string {
	if s.settings.HeaderRepos != "" {
		return s.settings.HeaderRepos
	}
	n := strconv.Itoa(s.top)
	if s.top > 0 && s.top < len(countWords) {
		n = countWords[s.top]
	}
	return "Top " + n + " Repos - Dependabot Alerts Severity"
}

func newMessage(header, text string) *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Blocks: &slack.Blocks{BlockSet: []slack.Block{
			slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, header, false, false)),
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
			slack.NewDividerBlock(),
		}},
	}
}

// Post sends one header + section + divider message.
func (s *Slack) Post(ctx context.Context, header, text string) error {
	if s.dryRun {
		_, err := fmt.Fprintf(s.out, "%s\n%s\n", header, text)
		return err
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, s.webhook, s.httpClient, newMessage(header, text)); err != nil {
		return fmt.Errorf("slack webhook: %w", err)
	}
	s.log.WithField("header", header).Info("Sent Slack message")
	return nil
}
