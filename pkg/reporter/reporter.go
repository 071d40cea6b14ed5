package reporter

import (
	"context"
	"io"
	"strconv"

	"github.com/dependabot-report/pkg/config"
	"github.com/dependabot-report/pkg/notify"
	"github.com/dependabot-report/pkg/scanner"
	"github.com/sirupsen/logrus"
)

type Reporter interface {
	Report(ctx context.Context, report *scanner.Report) error
}

func New(cfg *config.Config, out io.Writer, log *logrus.Logger) Reporter {
	switch cfg.Output {
	case "json":
		return &JSONReporter{out: out}
	case "csv":
		return &CSVReporter{dir: cfg.OutputDir, log: log}
	case "slack":
		return notify.NewSlack(cfg, out, log)
	default:
		return &TableReporter{out: out}
	}
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
