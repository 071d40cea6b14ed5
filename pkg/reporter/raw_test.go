package reporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dependabot-report/pkg/scanner"
	"github.com/dependabot-report/pkg/vcs"
	"github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRawRoundTripsThroughDirSource(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "raw")
	results := []scanner.RepoResult{
		{Name: "web", Bucket: scanner.BucketWithAlerts, Alerts: []*github.DependabotAlert{
			{Number: github.Int(1), State: github.String("open")},
		}},
		{Name: "docs", Bucket: scanner.BucketNoAlerts},
		{Name: "old", Bucket: scanner.BucketDisabled, DisabledMessage: "Dependabot alerts are disabled for this repository."},
	}
	require.NoError(t, WriteRaw(dir, results))

	data, err := os.ReadFile(filepath.Join(dir, "docs.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	src := vcs.NewDirSource(dir)
	ctx := context.Background()

	alerts, err := src.ListAlerts(ctx, "", "web")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "open", alerts[0].GetState())

	_, err = src.ListAlerts(ctx, "", "old")
	assert.ErrorIs(t, err, vcs.ErrAlertsDisabled)
}
