package manifest

import (
	"reflect"
	"strings"
	"testing"

	"manifmt/internal/diag"
	"manifmt/internal/tomlscan"
)

func buildSource(t *testing.T, src string) (*Manifest, *diag.Bag) {
	t.Helper()
	doc, err := tomlscan.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	bag := diag.NewBag(64)
	return Build("Cargo.toml", doc, bag), bag
}

func TestBuildPackage(t *testing.T) {
	m, bag := buildSource(t, strings.Join([]string{
		`[package]`,
		`name = "demo"`,
		`version = "0.1.0"`,
		`edition = "2021"`,
	}, "\n")+"\n")

	if bag.HasWarnings() {
		t.Fatalf("unexpected warnings: %+v", bag.Items())
	}
	if got := m.PackageName(); got != "demo" {
		t.Fatalf("package name = %q", got)
	}
	if v, ok := m.Package.Str("version"); !ok || v != "0.1.0" {
		t.Fatalf("version = %q, %v", v, ok)
	}
	if len(m.Sections) != 1 || m.Sections[0].Construct != any(m.Package) {
		t.Fatalf("package section not tied to its construct")
	}
}

func TestBuildUnknownPackageKey(t *testing.T) {
	m, _ := buildSource(t, strings.Join([]string{
		`[package]`,
		`name = "demo"`,
		`foo-unknown-field = 42`,
		`version = "0.1.0"`,
	}, "\n")+"\n")

	entries := m.Package.Entries
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	u := entries[1]
	if !u.Unknown || u.Raw != "foo-unknown-field = 42" || u.AfterKey != "name" {
		t.Fatalf("unknown entry = %+v", u)
	}
}

func TestBuildDependencies(t *testing.T) {
	m, _ := buildSource(t, strings.Join([]string{
		`[dependencies]`,
		`serde = { version = "1", features = ["derive"], optional = true }`,
		`local = { path = "../local" }`,
		`plain = "2.3"`,
	}, "\n")+"\n")

	g, ok := m.Group(DepNormal, "")
	if !ok {
		t.Fatalf("missing unconditional dependency group")
	}
	if len(g.Deps) != 3 {
		t.Fatalf("expected 3 deps, got %d", len(g.Deps))
	}

	serde := g.Deps[0]
	if serde.Name != "serde" || serde.Version != "1" || !serde.Optional {
		t.Fatalf("serde = %+v", serde)
	}
	if !reflect.DeepEqual(serde.Features, []string{"derive"}) {
		t.Fatalf("serde features = %v", serde.Features)
	}
	if !serde.DefaultFeatures {
		t.Fatalf("default-features should default to true")
	}

	local := g.Deps[1]
	if local.Path != "../local" || local.Version != "" {
		t.Fatalf("local = %+v", local)
	}

	plain := g.Deps[2]
	if plain.Version != "2.3" || !plain.DefaultFeatures {
		t.Fatalf("plain = %+v", plain)
	}
}

func TestBuildDependencySection(t *testing.T) {
	m, _ := buildSource(t, strings.Join([]string{
		`[dependencies]`,
		`a = "1"`,
		``,
		`# from a fork`,
		`[dependencies.bar]`,
		`git = "https://example.com/bar"`,
		`rev = "abc123"`,
	}, "\n")+"\n")

	g, _ := m.Group(DepNormal, "")
	if len(g.Deps) != 2 {
		t.Fatalf("expected 2 deps, got %d", len(g.Deps))
	}
	bar := g.Deps[1]
	if bar.Git != "https://example.com/bar" || bar.Rev != "abc123" {
		t.Fatalf("bar = %+v", bar)
	}
	if got := strings.Join(bar.Comment, "\n"); got != "# from a fork" {
		t.Fatalf("bar comment = %q", got)
	}
}

func TestBuildScopedGroups(t *testing.T) {
	m, _ := buildSource(t, strings.Join([]string{
		`[dependencies]`,
		`shared = "1"`,
		``,
		`[target.'cfg(unix)'.dependencies]`,
		`libc = "0.2"`,
		``,
		`[target.'cfg(unix)'.dev-dependencies]`,
		`nix = "0.29"`,
	}, "\n")+"\n")

	if len(m.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(m.Groups))
	}
	g, ok := m.Group(DepNormal, "cfg(unix)")
	if !ok || len(g.Deps) != 1 || g.Deps[0].Name != "libc" {
		t.Fatalf("scoped normal group = %+v", g)
	}
	if _, ok := m.Group(DepDev, "cfg(unix)"); !ok {
		t.Fatalf("scoped dev group missing")
	}
}

func TestBuildUnsupportedDependencyShape(t *testing.T) {
	m, bag := buildSource(t, strings.Join([]string{
		`[dependencies]`,
		`weird = { version = "1", unknown-key = true }`,
		`dotted.version = "1"`,
	}, "\n")+"\n")

	g, _ := m.Group(DepNormal, "")
	for _, d := range g.Deps {
		if !d.Unknown {
			t.Fatalf("dep %q should be kept verbatim", d.Name)
		}
		if d.Raw == "" {
			t.Fatalf("unknown dep %q lost its raw text", d.Name)
		}
	}
	if !bag.HasWarnings() {
		t.Fatalf("expected unsupported-shape warnings")
	}
}

func TestBuildIrregularRecognizedValues(t *testing.T) {
	m, bag := buildSource(t, strings.Join([]string{
		`[package]`,
		`name = "demo"`,
		`edition = 2021-01-01`,
		`authors = ["A", 1979-05-27]`,
	}, "\n")+"\n")

	if !bag.HasWarnings() {
		t.Fatalf("irregular values under recognized keys must warn")
	}
	edition := m.Package.Entries[1]
	if !edition.Unknown || edition.Raw != "edition = 2021-01-01" {
		t.Fatalf("date-valued edition not kept verbatim: %+v", edition)
	}
	authors := m.Package.Entries[2]
	if !authors.Unknown || authors.Raw != `authors = ["A", 1979-05-27]` {
		t.Fatalf("date-bearing array not kept verbatim: %+v", authors)
	}
}

func TestBuildIrregularTargetValues(t *testing.T) {
	m, bag := buildSource(t, strings.Join([]string{
		`[lib]`,
		`name = 42`,
		`doc = 1979-05-27`,
	}, "\n")+"\n")

	if !bag.HasWarnings() {
		t.Fatalf("irregular target values must warn")
	}
	lib := m.Targets[0]
	if lib.Name != "" {
		t.Fatalf("non-string name must not be typed: %q", lib.Name)
	}
	for _, e := range lib.Extras.Entries {
		if !e.Unknown {
			t.Fatalf("entry %q should be kept verbatim", e.Key)
		}
	}
}

func TestBuildFeatures(t *testing.T) {
	m, _ := buildSource(t, strings.Join([]string{
		`[features]`,
		`default = ["std"]`,
		`# requires nightly`,
		`simd = []`,
	}, "\n")+"\n")

	if m.Features == nil || len(m.Features.List) != 2 {
		t.Fatalf("features = %+v", m.Features)
	}
	simd := m.Features.List[1]
	if simd.Name != "simd" || simd.Unknown {
		t.Fatalf("simd = %+v", simd)
	}
	if got := strings.Join(simd.Comment, "\n"); got != "# requires nightly" {
		t.Fatalf("simd comment = %q", got)
	}
}

func TestBuildTargetTables(t *testing.T) {
	m, _ := buildSource(t, strings.Join([]string{
		`[lib]`,
		`name = "demo"`,
		`crate-type = ["cdylib"]`,
		``,
		`[[bin]]`,
		`name = "one"`,
		`path = "src/bin/one.rs"`,
		``,
		`[[bin]]`,
		`name = "two"`,
	}, "\n")+"\n")

	if len(m.Targets) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(m.Targets))
	}
	lib := m.Targets[0]
	if lib.Kind != KindLib || lib.Name != "demo" {
		t.Fatalf("lib = %+v", lib)
	}
	if _, ok := lib.Extras.Get("crate-type"); !ok {
		t.Fatalf("crate-type not captured: %+v", lib.Extras.Entries)
	}
	if m.Targets[1].Name != "one" || m.Targets[1].Path != "src/bin/one.rs" {
		t.Fatalf("bin one = %+v", m.Targets[1])
	}
	if m.Targets[2].Name != "two" {
		t.Fatalf("bin two = %+v", m.Targets[2])
	}
}

func TestBuildPassthroughSection(t *testing.T) {
	m, bag := buildSource(t, strings.Join([]string{
		`[package]`,
		`name = "demo"`,
		``,
		`[profile.release]`,
		`opt-level = 3`,
	}, "\n")+"\n")

	if bag.HasWarnings() {
		t.Fatalf("passthrough must not warn: %+v", bag.Items())
	}
	if len(m.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(m.Sections))
	}
	pt := m.Sections[1]
	if pt.Construct != nil {
		t.Fatalf("[profile.release] should be passthrough")
	}
	if got := pt.Raw(); got != "[profile.release]\nopt-level = 3" {
		t.Fatalf("passthrough raw = %q", got)
	}
}

func TestBuildWorkspace(t *testing.T) {
	m, _ := buildSource(t, strings.Join([]string{
		`[workspace]`,
		`members = ["crates/*"]`,
		`resolver = "2"`,
	}, "\n")+"\n")

	if m.Workspace == nil {
		t.Fatalf("workspace table missing")
	}
	if v, ok := m.Workspace.Str("resolver"); !ok || v != "2" {
		t.Fatalf("resolver = %q, %v", v, ok)
	}
}
