package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// DiscoveryError reports a failure to enumerate workspace members.
// It is fatal for the whole run, before any file is touched.
type DiscoveryError struct {
	Msg string
	Err error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("workspace discovery: %s: %v", e.Msg, e.Err)
	}
	return "workspace discovery: " + e.Msg
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

type workspaceManifest struct {
	Workspace struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
	} `toml:"workspace"`
}

// Members returns every manifest path belonging to the workspace rooted
// at rootManifest: the root manifest itself plus each member glob match
// that contains a manifest, minus excluded directories. The result is
// sorted and deduplicated.
func Members(fsys afero.Fs, rootManifest string) ([]string, error) {
	data, err := afero.ReadFile(fsys, rootManifest)
	if err != nil {
		return nil, &DiscoveryError{Msg: fmt.Sprintf("failed to read %s", rootManifest), Err: err}
	}
	var ws workspaceManifest
	if _, err := toml.Decode(string(data), &ws); err != nil {
		return nil, &DiscoveryError{Msg: fmt.Sprintf("failed to parse %s", rootManifest), Err: err}
	}

	root := filepath.Dir(rootManifest)
	manifests := []string{rootManifest}

	if len(ws.Workspace.Members) > 0 {
		// Glob against a filesystem rooted at the workspace so patterns
		// stay relative and cannot escape it.
		rooted := afero.NewIOFS(afero.NewBasePathFs(fsys, root))
		for _, pattern := range ws.Workspace.Members {
			if err := validatePattern(pattern); err != nil {
				return nil, &DiscoveryError{Msg: fmt.Sprintf("invalid member pattern %q", pattern), Err: err}
			}
			matches, err := doublestar.Glob(rooted, pattern)
			if err != nil {
				return nil, &DiscoveryError{Msg: fmt.Sprintf("invalid member pattern %q", pattern), Err: err}
			}
			for _, match := range matches {
				if excluded(match, ws.Workspace.Exclude) {
					continue
				}
				candidate := filepath.Join(root, filepath.FromSlash(match), ManifestName)
				if ok, _ := afero.Exists(fsys, candidate); ok {
					manifests = append(manifests, candidate)
				}
			}
		}
	}

	sort.Strings(manifests)
	return dedupe(manifests), nil
}

func validatePattern(pattern string) error {
	if filepath.IsAbs(pattern) {
		return fmt.Errorf("pattern must be relative")
	}
	for _, part := range strings.Split(filepath.ToSlash(pattern), "/") {
		if part == ".." {
			return fmt.Errorf("pattern must not escape the workspace root")
		}
	}
	return nil
}

func excluded(match string, excludes []string) bool {
	for _, ex := range excludes {
		if ok, err := doublestar.Match(ex, match); err == nil && ok {
			return true
		}
	}
	return false
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
