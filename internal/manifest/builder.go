package manifest

import (
	"fmt"

	"manifmt/internal/diag"
	"manifmt/internal/tomlscan"
)

var packageKeys = keySet(
	"name", "version", "description", "authors", "keywords", "categories",
	"license", "license-file", "readme", "homepage", "repository",
	"documentation", "exclude", "include", "links", "edition",
	"rust-version", "publish", "default-run", "build",
	"autobins", "autoexamples", "autotests", "autobenches",
)

var workspaceKeys = keySet("members", "exclude", "default-members", "resolver")

var targetExtraKeys = keySet(
	"harness", "doc", "doctest", "test", "bench", "proc-macro", "plugin",
	"crate-type", "required-features", "edition",
)

var depValueKeys = keySet(
	"version", "registry", "package", "path", "git", "branch", "tag", "rev",
	"default-features", "features", "optional",
)

func keySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// Build walks a scanned document and produces the typed model.
// It never fails: syntactic validity is already established, and every
// construct the model does not understand becomes a passthrough node.
// Irregularly-shaped values under recognized keys are preserved verbatim
// and reported as warnings on the bag.
func Build(path string, doc *tomlscan.Document, bag *diag.Bag) *Manifest {
	b := &builder{path: path, doc: doc, bag: bag, m: &Manifest{}}
	return b.build()
}

type builder struct {
	path string
	doc  *tomlscan.Document
	bag  *diag.Bag
	m    *Manifest

	// arrayIdx tracks how many [[kind]] sections were seen per kind,
	// to index into the decoded slices.
	arrayIdx map[string]int
}

func (b *builder) build() *Manifest {
	b.arrayIdx = make(map[string]int)

	for _, e := range b.doc.Preamble {
		b.m.Preamble = append(b.m.Preamble, PreambleEntry{Comment: e.Comment, Raw: e.Raw})
	}

	for i := range b.doc.Sections {
		scanSec := &b.doc.Sections[i]
		sec := &Section{Scan: scanSec}
		b.m.Sections = append(b.m.Sections, sec)
		b.classify(sec)
	}
	return b.m
}

func (b *builder) classify(sec *Section) {
	key := sec.Scan.Key
	switch {
	case pathEq(key, "package"):
		b.m.Package = b.buildTable(sec, b.tableValue("package"), packageKeys)
		sec.Construct = b.m.Package

	case len(key) == 1 && depKindOf(key[0]) >= 0:
		b.buildGroup(sec, DepKind(depKindOf(key[0])), "", b.tableValue(key[0]))

	case len(key) == 2 && depKindOf(key[0]) >= 0:
		b.buildGroupDep(sec, DepKind(depKindOf(key[0])), "", key[1])

	case len(key) == 3 && key[0] == "target" && depKindOf(key[2]) >= 0:
		b.buildGroup(sec, DepKind(depKindOf(key[2])), key[1], b.tableValue("target", key[1], key[2]))

	case len(key) == 4 && key[0] == "target" && depKindOf(key[2]) >= 0:
		b.buildGroupDep(sec, DepKind(depKindOf(key[2])), key[1], key[3])

	case pathEq(key, "features"):
		b.buildFeatures(sec, b.tableValue("features"))

	case pathEq(key, "workspace"):
		b.m.Workspace = b.buildTable(sec, b.tableValue("workspace"), workspaceKeys)
		sec.Construct = b.m.Workspace

	case len(key) == 1 && targetKindOf(key[0]) >= 0:
		b.buildTarget(sec, TargetKind(targetKindOf(key[0])), key[0])

	default:
		// Passthrough: Construct stays nil.
	}
}

func pathEq(key []string, want string) bool {
	return len(key) == 1 && key[0] == want
}

// depKindOf maps a table name to its DepKind, or -1.
func depKindOf(name string) int {
	switch name {
	case "dependencies":
		return int(DepNormal)
	case "dev-dependencies":
		return int(DepDev)
	case "build-dependencies":
		return int(DepBuild)
	}
	return -1
}

// targetKindOf maps a table name to its TargetKind, or -1.
func targetKindOf(name string) int {
	switch name {
	case "lib":
		return int(KindLib)
	case "bin":
		return int(KindBin)
	case "example":
		return int(KindExample)
	case "test":
		return int(KindTest)
	case "bench":
		return int(KindBench)
	}
	return -1
}

// tableValue resolves a decoded table by key path; nil if absent or not
// a table.
func (b *builder) tableValue(path ...string) map[string]any {
	var v any = b.doc.Root
	for _, k := range path {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v, ok = m[k]
		if !ok {
			return nil
		}
	}
	m, _ := v.(map[string]any)
	return m
}

func (b *builder) group(kind DepKind, scope string, sec *Section) *DependencyGroup {
	for _, g := range b.m.Groups {
		if g.Kind == kind && g.Scope == scope {
			g.sections = append(g.sections, sec)
			return g
		}
	}
	g := &DependencyGroup{Kind: kind, Scope: scope}
	g.sections = append(g.sections, sec)
	b.m.Groups = append(b.m.Groups, g)
	return g
}

func (b *builder) buildGroup(sec *Section, kind DepKind, scope string, decoded map[string]any) {
	g := b.group(kind, scope, sec)
	sec.Construct = g
	for _, se := range sec.Scan.Entries {
		if se.Dotted {
			b.addUnknownDep(g, se)
			continue
		}
		dep := buildDep(se.Key, decoded[se.Key])
		if dep == nil {
			b.addUnknownDep(g, se)
			continue
		}
		dep.Comment = se.Comment
		g.Deps = append(g.Deps, dep)
	}
}

// buildGroupDep folds a `[dependencies.<name>]` style section into its
// group as a single dependency entry.
func (b *builder) buildGroupDep(sec *Section, kind DepKind, scope, name string) {
	var decoded map[string]any
	if scope == "" {
		decoded = b.tableValue(kind.String())
	} else {
		decoded = b.tableValue("target", scope, kind.String())
	}
	dep := buildDep(name, decoded[name])
	if dep == nil {
		// The whole section stays passthrough.
		b.warnUnsupported(name, sec.Scan.Line)
		return
	}
	dep.Comment = sec.Scan.HeaderComment
	g := b.group(kind, scope, sec)
	sec.Construct = g
	g.Deps = append(g.Deps, dep)
}

func (b *builder) addUnknownDep(g *DependencyGroup, se tomlscan.Entry) {
	g.Deps = append(g.Deps, &Dependency{
		Name:    se.Key,
		Comment: se.Comment,
		Raw:     se.Raw,
		Unknown: true,
	})
	b.warnUnsupported(se.Key, se.Line)
}

func (b *builder) warnUnsupported(name string, line int) {
	b.bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.CodeUnsupportedConstruct,
		Message:  fmt.Sprintf("dependency %q has an unsupported shape; kept verbatim", name),
		Path:     b.path,
		Line:     line,
	})
}

func (b *builder) warnIrregular(key string, line int) {
	b.bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.CodeUnsupportedConstruct,
		Message:  fmt.Sprintf("key %q has an unsupported value shape; kept verbatim", key),
		Path:     b.path,
		Line:     line,
	})
}

// buildDep converts a decoded dependency value into a typed entry.
// Returns nil when the value is neither a version string nor an inline
// table made only of recognized, well-typed keys.
func buildDep(name string, v any) *Dependency {
	switch val := v.(type) {
	case string:
		return &Dependency{Name: name, Version: val, DefaultFeatures: true}
	case map[string]any:
		dep := &Dependency{Name: name, DefaultFeatures: true}
		for k, kv := range val {
			if !depValueKeys[k] {
				return nil
			}
			switch k {
			case "version", "registry", "package", "path", "git", "branch", "tag", "rev":
				s, ok := kv.(string)
				if !ok {
					return nil
				}
				switch k {
				case "version":
					dep.Version = s
				case "registry":
					dep.RegistryName = s
				case "package":
					dep.Package = s
				case "path":
					dep.Path = s
				case "git":
					dep.Git = s
				case "branch":
					dep.Branch = s
				case "tag":
					dep.Tag = s
				case "rev":
					dep.Rev = s
				}
			case "default-features":
				bv, ok := kv.(bool)
				if !ok {
					return nil
				}
				dep.DefaultFeatures = bv
			case "optional":
				bv, ok := kv.(bool)
				if !ok {
					return nil
				}
				dep.Optional = bv
			case "features":
				feats, ok := stringSlice(kv)
				if !ok {
					return nil
				}
				dep.Features = feats
			}
		}
		return dep
	}
	return nil
}

func stringSlice(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func (b *builder) buildFeatures(sec *Section, decoded map[string]any) {
	if b.m.Features == nil {
		b.m.Features = &Features{}
	}
	sec.Construct = b.m.Features
	for _, se := range sec.Scan.Entries {
		if !se.Dotted {
			if values, ok := stringSlice(decoded[se.Key]); ok {
				b.m.Features.List = append(b.m.Features.List, &Feature{
					Name:    se.Key,
					Values:  values,
					Comment: se.Comment,
				})
				continue
			}
		}
		b.m.Features.List = append(b.m.Features.List, &Feature{
			Name:    se.Key,
			Comment: se.Comment,
			Raw:     se.Raw,
			Unknown: true,
		})
		b.warnUnsupported(se.Key, se.Line)
	}
}

// buildTable maps a scanned section onto a Table: recognized scalar and
// array keys become typed entries, anything else keeps its raw lines and
// an anchor to the nearest preceding recognized key.
func (b *builder) buildTable(sec *Section, decoded map[string]any, recognized map[string]bool) *Table {
	t := &Table{}
	lastKnown := ""
	for _, se := range sec.Scan.Entries {
		v, present := value(decoded, se.Key)
		if se.Dotted || !recognized[se.Key] || !present || !renderableValue(v) {
			if !se.Dotted && recognized[se.Key] && present {
				b.warnIrregular(se.Key, se.Line)
			}
			t.Entries = append(t.Entries, &Entry{
				Key:      se.Key,
				Raw:      se.Raw,
				Unknown:  true,
				AfterKey: lastKnown,
			})
			continue
		}
		t.Entries = append(t.Entries, &Entry{Key: se.Key, Value: v})
		lastKnown = se.Key
	}
	return t
}

func value(decoded map[string]any, key string) (any, bool) {
	if decoded == nil {
		return nil, false
	}
	v, ok := decoded[key]
	return v, ok
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// renderableValue limits typed entries to the closed set of shapes the
// serializer reproduces faithfully. Anything else (nested tables, dates,
// mixed arrays) must stay verbatim.
func renderableValue(v any) bool {
	switch val := v.(type) {
	case string, bool, int, int64, float64:
		return true
	case []string:
		return true
	case []any:
		for _, e := range val {
			if !renderableValue(e) {
				return false
			}
		}
		return true
	}
	return false
}

func (b *builder) buildTarget(sec *Section, kind TargetKind, tableName string) {
	var decoded map[string]any
	root := b.doc.Root[tableName]
	switch rv := root.(type) {
	case map[string]any:
		decoded = rv
	case []map[string]any:
		idx := b.arrayIdx[tableName]
		b.arrayIdx[tableName] = idx + 1
		if idx < len(rv) {
			decoded = rv[idx]
		}
	case []any:
		idx := b.arrayIdx[tableName]
		b.arrayIdx[tableName] = idx + 1
		if idx < len(rv) {
			decoded, _ = rv[idx].(map[string]any)
		}
	}

	t := &TargetTable{Kind: kind, Extras: &Table{}, section: sec}
	lastKnown := ""
	for _, se := range sec.Scan.Entries {
		v, present := value(decoded, se.Key)
		switch {
		case !se.Dotted && se.Key == "name":
			if s, ok := v.(string); ok {
				t.Name = s
				lastKnown = se.Key
				continue
			}
		case !se.Dotted && se.Key == "path":
			if s, ok := v.(string); ok {
				t.Path = s
				lastKnown = se.Key
				continue
			}
		case !se.Dotted && targetExtraKeys[se.Key] && present && renderableValue(v):
			t.Extras.Entries = append(t.Extras.Entries, &Entry{Key: se.Key, Value: v})
			lastKnown = se.Key
			continue
		}
		irregularScalar := (se.Key == "name" || se.Key == "path") && !isString(v)
		irregularExtra := targetExtraKeys[se.Key] && !renderableValue(v)
		if !se.Dotted && present && (irregularScalar || irregularExtra) {
			b.warnIrregular(se.Key, se.Line)
		}
		t.Extras.Entries = append(t.Extras.Entries, &Entry{
			Key:      se.Key,
			Raw:      se.Raw,
			Unknown:  true,
			AfterKey: lastKnown,
		})
	}
	sec.Construct = t
	b.m.Targets = append(b.m.Targets, t)
}

// DemoteGroup turns a dependency group back into passthrough sections.
// Used when the group's platform scope is not a recognized predicate.
func (m *Manifest) DemoteGroup(g *DependencyGroup) {
	for _, sec := range g.sections {
		sec.Construct = nil
	}
	for i, other := range m.Groups {
		if other == g {
			m.Groups = append(m.Groups[:i], m.Groups[i+1:]...)
			return
		}
	}
}
