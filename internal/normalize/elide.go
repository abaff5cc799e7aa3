package normalize

import (
	"manifmt/internal/manifest"
)

// packageDefaults maps [package] keys to the value that makes them
// redundant. Keys without a documented default are never elided.
var packageDefaults = map[string]any{
	"readme":       "README.md",
	"build":        "build.rs",
	"publish":      true,
	"autobins":     true,
	"autoexamples": true,
	"autotests":    true,
	"autobenches":  true,
}

// targetDefaults maps target-table keys to their documented defaults.
var targetDefaults = map[string]any{
	"harness":    true,
	"doc":        true,
	"doctest":    true,
	"proc-macro": false,
	"plugin":     false,
}

// elideDefaults removes every key whose value equals its documented
// default, in the package table, dependency entries, and target tables.
func elideDefaults(m *manifest.Manifest, _ *Context) *manifest.Manifest {
	elideTableDefaults(m.Package, packageDefaults)

	for _, g := range m.Groups {
		for _, d := range g.Deps {
			if d.Unknown {
				continue
			}
			// The default branch of a git source is implied.
			if d.Git != "" && d.Branch == "master" {
				d.Branch = ""
			}
		}
	}

	pkgName := m.PackageName()
	for _, t := range m.Targets {
		elideTableDefaults(t.Extras, targetDefaults)
		if t.Kind == manifest.KindLib && t.Name == pkgName {
			t.Name = ""
		}
		if isConventionalPath(t.Kind, targetName(t, pkgName), pkgName, t.Path) {
			t.Path = ""
		}
	}
	return m
}

// isConventionalPath reports whether an explicit path is exactly where
// inference would look for a target of this kind and name.
func isConventionalPath(kind manifest.TargetKind, name, pkgName, path string) bool {
	if path == "" {
		return false
	}
	if path == conventionalPath(kind, name) || path == conventionalDirPath(kind, name) {
		return true
	}
	return kind == manifest.KindBin && name == pkgName && path == "src/main.rs"
}

func targetName(t *manifest.TargetTable, pkgName string) string {
	if t.Name == "" {
		return pkgName
	}
	return t.Name
}

// conventionalPath is the single-file location inference would pick.
func conventionalPath(kind manifest.TargetKind, name string) string {
	switch kind {
	case manifest.KindLib:
		return "src/lib.rs"
	case manifest.KindBin:
		return "src/bin/" + name + ".rs"
	case manifest.KindExample:
		return "examples/" + name + ".rs"
	case manifest.KindTest:
		return "tests/" + name + ".rs"
	case manifest.KindBench:
		return "benches/" + name + ".rs"
	}
	return ""
}

// conventionalDirPath is the directory form of the same convention.
func conventionalDirPath(kind manifest.TargetKind, name string) string {
	switch kind {
	case manifest.KindBin:
		return "src/bin/" + name + "/main.rs"
	case manifest.KindExample:
		return "examples/" + name + "/main.rs"
	case manifest.KindTest:
		return "tests/" + name + "/main.rs"
	case manifest.KindBench:
		return "benches/" + name + "/main.rs"
	}
	return ""
}

func elideTableDefaults(t *manifest.Table, defaults map[string]any) {
	if t == nil {
		return
	}
	kept := t.Entries[:0]
	for _, e := range t.Entries {
		if !e.Unknown {
			if def, ok := defaults[e.Key]; ok && e.Value == def {
				continue
			}
		}
		kept = append(kept, e)
	}
	t.Entries = kept
}
