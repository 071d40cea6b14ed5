package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dependabot-report/pkg/config"
	"github.com/dependabot-report/pkg/reporter"
	"github.com/dependabot-report/pkg/scanner"
	"github.com/dependabot-report/pkg/vcs"
	"github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dependabot-report",
		Short:        "Summarize Dependabot alerts across a GitHub organization",
		Long:         `Collects Dependabot alerts for every active repository of an organization, tallies them by state, severity and ecosystem, checks open alerts against remediation SLOs and reports the highest-priority repositories.`,
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().String("config", ".dependabot-report.yml", "Path to config file")
	rootCmd.Flags().String("org", os.Getenv("GH_ORG"), "GitHub organization to scan")
	rootCmd.Flags().String("github-token", os.Getenv("GH_API_KEY"), "GitHub token for API access")
	rootCmd.Flags().String("slack-url", os.Getenv("SLACK_URL"), "Slack incoming webhook URL")
	rootCmd.Flags().String("output", "slack", "Output format: slack | csv | table | json")
	rootCmd.Flags().String("output-dir", "output", "Directory for csv output and raw alert dumps")
	rootCmd.Flags().Int("top", 5, "Number of repositories in the Slack summary and its header")
	rootCmd.Flags().Int("concurrency", 4, "Repositories fetched in parallel")
	rootCmd.Flags().Bool("include-archived", false, "Include archived repositories")
	rootCmd.Flags().Bool("save-raw", false, "Save raw alert JSON per repository under <output-dir>/raw")
	rootCmd.Flags().String("from-dir", "", "Read raw alert JSON from this directory instead of the GitHub API")
	rootCmd.Flags().String("now", "", "Reference time for SLO ages, RFC 3339 (e.g. 2024-06-01T00:00:00Z)")
	rootCmd.Flags().String("log-level", "info", "Log level: debug | info | warn | error")
	rootCmd.Flags().String("log-format", "text", "Log format: text | json")
	rootCmd.Flags().Bool("dry-run", false, "Print Slack messages instead of posting them")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("config") {
			return fmt.Errorf("load config %s: %w", cfgPath, err)
		}
		cfg = config.Default()
	}

	cfg, err = config.MergeFlags(cfg, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	var source vcs.AlertSource
	if cfg.FromDir != "" {
		log.WithField("dir", cfg.FromDir).Info("Reading saved alerts")
		source = vcs.NewDirSource(cfg.FromDir)
	} else {
		source = vcs.NewGitHubClient(github.NewClient(nil).WithAuthToken(cfg.Token), log)
	}

	report, err := scanner.New(source, cfg, log).Scan(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.SaveRaw {
		dir := filepath.Join(cfg.OutputDir, "raw")
		if err := reporter.WriteRaw(dir, report.Results); err != nil {
			return err
		}
		log.WithField("dir", dir).Info("Raw alert data written")
	}

	return reporter.New(cfg, cmd.OutOrStdout(), log).Report(cmd.Context(), report)
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
