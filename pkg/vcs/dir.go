package vcs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-github/v60/github"
)

// DirSource reads alerts previously saved as <dir>/<repo>.json. A file holding
// a JSON object with a "message" key marks a repository with alerts disabled.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// ListRepos lists the saved repositories in name order. The org is ignored.
func (d *DirSource) ListRepos(_ context.Context, _ string) ([]Repository, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("read alert dir %s: %w", d.dir, err)
	}
	var repos []Repository
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		repos = append(repos, Repository{Name: strings.TrimSuffix(e.Name(), ".json")})
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })
	return repos, nil
}

func (d *DirSource) ListAlerts(_ context.Context, _, repo string) ([]*github.DependabotAlert, error) {
	path := filepath.Join(d.dir, repo+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alerts for %s: %w", repo, err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return nil, &DisabledError{Repo: repo, Message: msg.Message}
	}

	var alerts []*github.DependabotAlert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return alerts, nil
}
