// Package layout computes the build targets a package's conventional
// source layout implies. It is a pure function of a directory listing;
// callers supply the listing, so inference is testable without disk.
package layout

import (
	"path"
	"sort"
	"strings"
)

// Listing enumerates candidate target sources for one package.
// All paths are slash-separated and relative to the package root.
type Listing struct {
	HasSrcMain bool
	HasSrcLib  bool
	// Bins, Examples, Tests, Benches hold every file found under the
	// kind's conventional directory, at any depth.
	Bins     []string
	Examples []string
	Tests    []string
	Benches  []string
}

// Target is one inferred build target.
type Target struct {
	Name string
	Path string
}

// Inferred is the per-kind result of layout inference.
type Inferred struct {
	Lib      *Target
	Bins     []Target
	Examples []Target
	Tests    []Target
	Benches  []Target
}

// Infer computes the targets the build system would discover from the
// listing alone. Deterministic: results are sorted by name. An empty
// listing yields an empty result.
func Infer(pkgName string, l Listing) Inferred {
	inf := Inferred{
		Bins:     inferDir("src/bin", l.Bins),
		Examples: inferDir("examples", l.Examples),
		Tests:    inferDir("tests", l.Tests),
		Benches:  inferDir("benches", l.Benches),
	}
	if l.HasSrcLib {
		inf.Lib = &Target{Name: pkgName, Path: "src/lib.rs"}
	}
	if l.HasSrcMain {
		inf.Bins = append(inf.Bins, Target{Name: pkgName, Path: "src/main.rs"})
		sortTargets(inf.Bins)
	}
	return inf
}

// inferDir applies the discovery convention to one kind directory:
// a direct child `<name>.rs` is one target, and a child directory
// containing `main.rs` is one target named after the directory, no
// matter how many other source files that directory holds.
func inferDir(dir string, files []string) []Target {
	var targets []Target
	seen := make(map[string]struct{})
	files = append([]string(nil), files...)
	sort.Strings(files)
	for _, f := range files {
		rel, ok := strings.CutPrefix(path.Clean(f), dir+"/")
		if !ok {
			continue
		}
		if !strings.Contains(rel, "/") {
			if name, ok := strings.CutSuffix(rel, ".rs"); ok && name != "" {
				if _, dup := seen[name]; !dup {
					seen[name] = struct{}{}
					targets = append(targets, Target{Name: name, Path: dir + "/" + rel})
				}
			}
			continue
		}
		// Nested: only <dir>/<name>/main.rs roots a target.
		name, rest, _ := strings.Cut(rel, "/")
		if rest != "main.rs" || name == "" {
			continue
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			targets = append(targets, Target{Name: name, Path: dir + "/" + name + "/main.rs"})
		}
	}
	sortTargets(targets)
	return targets
}

func sortTargets(ts []Target) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Name < ts[j].Name })
}

// ByKind returns the inferred set for a named target kind
// (bin, example, test, bench).
func (inf Inferred) ByKind(kind string) []Target {
	switch kind {
	case "bin":
		return inf.Bins
	case "example":
		return inf.Examples
	case "test":
		return inf.Tests
	case "bench":
		return inf.Benches
	}
	return nil
}
