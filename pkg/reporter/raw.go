package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dependabot-report/pkg/scanner"
	"github.com/google/go-github/v60/github"
)

// WriteRaw saves the alerts of every repository as dir/<repo>.json, in the
// layout vcs.DirSource reads back.
func WriteRaw(dir string, results []scanner.RepoResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("raw: mkdir: %w", err)
	}
	for _, res := range results {
		var payload any
		switch res.Bucket {
		case scanner.BucketDisabled:
			payload = map[string]string{"message": res.DisabledMessage}
		default:
			alerts := res.Alerts
			if alerts == nil {
				alerts = []*github.DependabotAlert{}
			}
			payload = alerts
		}

		data, err := json.MarshalIndent(payload, "", "    ")
		if err != nil {
			return fmt.Errorf("raw: encode %s: %w", res.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, res.Name+".json"), data, 0o644); err != nil {
			return fmt.Errorf("raw: write %s: %w", res.Name, err)
		}
	}
	return nil
}
