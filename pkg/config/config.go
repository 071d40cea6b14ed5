package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dependabot-report/pkg/summary"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Org             string         `yaml:"org"`
	Output          string         `yaml:"output"`
	OutputDir       string         `yaml:"output_dir"`
	Top             int            `yaml:"top"`
	Concurrency     int            `yaml:"concurrency"`
	IncludeArchived bool           `yaml:"include_archived"`
	SaveRaw         bool           `yaml:"save_raw"`
	FromDir         string         `yaml:"from_dir"`
	LogLevel        string         `yaml:"log_level"`
	LogFormat       string         `yaml:"log_format"`
	SLO             summary.Policy `yaml:"slo"`
	Slack           Slack          `yaml:"slack"`
	DryRun          bool           `yaml:"-"`
	Token           string         `yaml:"-"`
	SlackWebhook    string         `yaml:"-"`
	Now             time.Time      `yaml:"-"`
}

type Slack struct {
	Title string `yaml:"title"`
	// HeaderRepos overrides the top repositories header, which otherwise
	// names the top count.
	HeaderRepos string `yaml:"header_repos"`
	HeaderOrg   string `yaml:"header_org"`
}

var outputs = map[string]bool{
	"slack": true,
	"csv":   true,
	"table": true,
	"json":  true,
}

func Default() *Config {
	return &Config{
		Output:      "slack",
		OutputDir:   "output",
		Top:         5,
		Concurrency: 4,
		LogLevel:    "info",
		LogFormat:   "text",
		SLO:         summary.DefaultPolicy,
		Slack: Slack{
			Title:     "Active GitHub Repositories",
			HeaderOrg: "All Dependabot Alerts",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MergeFlags(cfg *Config, flags *pflag.FlagSet) (*Config, error) {
	if v, err := flags.GetString("org"); err == nil && v != "" {
		cfg.Org = v
	}
	if v, err := flags.GetString("github-token"); err == nil && v != "" {
		cfg.Token = v
	}
	if v, err := flags.GetString("slack-url"); err == nil && v != "" {
		cfg.SlackWebhook = v
	}
	if v, err := flags.GetString("output"); err == nil && v != "" && flags.Changed("output") {
		cfg.Output = v
	}
	if v, err := flags.GetString("output-dir"); err == nil && v != "" && flags.Changed("output-dir") {
		cfg.OutputDir = v
	}
	if v, err := flags.GetInt("top"); err == nil && flags.Changed("top") {
		cfg.Top = v
	}
	if v, err := flags.GetInt("concurrency"); err == nil && flags.Changed("concurrency") {
		cfg.Concurrency = v
	}
	if v, err := flags.GetBool("include-archived"); err == nil && flags.Changed("include-archived") {
		cfg.IncludeArchived = v
	}
	if v, err := flags.GetBool("save-raw"); err == nil && flags.Changed("save-raw") {
		cfg.SaveRaw = v
	}
	if v, err := flags.GetString("from-dir"); err == nil && v != "" {
		cfg.FromDir = v
	}
	if v, err := flags.GetString("log-level"); err == nil && v != "" && flags.Changed("log-level") {
		cfg.LogLevel = v
	}
	if v, err := flags.GetString("log-format"); err == nil && v != "" && flags.Changed("log-format") {
		cfg.LogFormat = v
	}
	if v, err := flags.GetBool("dry-run"); err == nil {
		cfg.DryRun = v
	}
	if v, err := flags.GetString("now"); err == nil && v != "" {
		now, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("--now: %w", err)
		}
		cfg.Now = now.UTC()
	}
	return cfg, nil
}

// Validate checks that the settings needed for the chosen source and output are present.
func (c *Config) Validate() error {
	var errs []error
	if c.FromDir == "" {
		if c.Org == "" {
			errs = append(errs, errors.New("organization is required (--org or GH_ORG)"))
		}
		if c.Token == "" {
			errs = append(errs, errors.New("github token is required (--github-token or GH_API_KEY)"))
		}
	}
	if !outputs[c.Output] {
		errs = append(errs, fmt.Errorf("unknown output %q: want slack | csv | table | json", c.Output))
	}
	if c.Output == "slack" && c.SlackWebhook == "" && !c.DryRun {
		errs = append(errs, errors.New("slack webhook is required for slack output (--slack-url or SLACK_URL)"))
	}
	if c.Top <= 0 {
		errs = append(errs, fmt.Errorf("top must be positive, got %d", c.Top))
	}
	if c.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	if err := c.SLO.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
