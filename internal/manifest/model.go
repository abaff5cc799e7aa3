// Package manifest holds the typed document model for a package
// manifest and the builder that produces it from scanned TOML.
package manifest

import (
	"manifmt/internal/tomlscan"
)

// Manifest is the document model for one manifest file.
type Manifest struct {
	// Sections mirrors the input's top-level tables in source order.
	// A section with a nil Construct is a passthrough node, re-emitted
	// verbatim at its original relative position.
	Sections []*Section
	// Preamble holds content that appeared before the first table.
	Preamble []PreambleEntry

	Package   *Table
	Groups    []*DependencyGroup
	Features  *Features
	Targets   []*TargetTable
	Workspace *Table
}

// Section ties a scanned source section to the construct built from it.
type Section struct {
	Scan *tomlscan.Section
	// Construct points at the typed construct this section contributed
	// to; nil marks the section as passthrough.
	Construct any
}

// Raw returns the section's verbatim source text.
func (s *Section) Raw() string { return s.Scan.Raw }

// PreambleEntry is a top-of-file entry preserved verbatim.
type PreambleEntry struct {
	Comment []string
	Raw     string
}

// Entry is a single key/value pair within a recognized table.
// Unknown entries carry their verbatim source line(s) instead of a
// typed value and keep their position via AfterKey.
type Entry struct {
	Key     string
	Value   any
	Raw     string
	Unknown bool
	// AfterKey names the nearest preceding recognized key in the input,
	// or "" when the entry led the table.
	AfterKey string
}

// Table is an ordered set of entries ([package], [workspace], and the
// non-name/path keys of target tables).
type Table struct {
	Entries []*Entry
}

// Get returns the entry for key, if present and recognized.
func (t *Table) Get(key string) (*Entry, bool) {
	if t == nil {
		return nil, false
	}
	for _, e := range t.Entries {
		if !e.Unknown && e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// Str returns the string value of key, if present.
func (t *Table) Str(key string) (string, bool) {
	e, ok := t.Get(key)
	if !ok {
		return "", false
	}
	s, ok := e.Value.(string)
	return s, ok
}

// Bool returns the boolean value of key, or def when absent.
func (t *Table) Bool(key string, def bool) bool {
	e, ok := t.Get(key)
	if !ok {
		return def
	}
	if b, ok := e.Value.(bool); ok {
		return b
	}
	return def
}

// Remove deletes the entry for key, if present.
func (t *Table) Remove(key string) {
	if t == nil {
		return
	}
	for i, e := range t.Entries {
		if !e.Unknown && e.Key == key {
			t.Entries = append(t.Entries[:i], t.Entries[i+1:]...)
			return
		}
	}
}

// DepKind classifies a dependency group by build role.
type DepKind uint8

const (
	DepNormal DepKind = iota
	DepDev
	DepBuild
)

func (k DepKind) String() string {
	switch k {
	case DepNormal:
		return "dependencies"
	case DepDev:
		return "dev-dependencies"
	case DepBuild:
		return "build-dependencies"
	}
	return "dependencies"
}

// DependencyGroup holds the dependencies of one (kind, scope) pair.
// Scope is "" for the unconditional group, otherwise the target
// predicate from `[target.<scope>.<kind>]`.
type DependencyGroup struct {
	Kind  DepKind
	Scope string
	Deps  []*Dependency

	sections []*Section
}

// Dependency is one dependency entry. Unknown dependencies keep their
// verbatim source and only participate in sorting by name.
type Dependency struct {
	Name    string
	Comment []string
	Raw     string
	Unknown bool

	Version         string
	Package         string
	RegistryName    string
	Path            string
	Git             string
	Branch          string
	Tag             string
	Rev             string
	DefaultFeatures bool
	Features        []string
	Optional        bool
}

// Feature is one entry of the [features] table.
type Feature struct {
	Name    string
	Values  []string
	Comment []string
	Raw     string
	Unknown bool
}

// Features is the [features] table.
type Features struct {
	List []*Feature
}

// TargetKind classifies an explicit target table.
type TargetKind uint8

const (
	KindLib TargetKind = iota
	KindBin
	KindExample
	KindTest
	KindBench
)

func (k TargetKind) String() string {
	switch k {
	case KindLib:
		return "lib"
	case KindBin:
		return "bin"
	case KindExample:
		return "example"
	case KindTest:
		return "test"
	case KindBench:
		return "bench"
	}
	return "lib"
}

// TargetTable is one explicit target table ([lib], [[bin]], ...).
type TargetTable struct {
	Kind TargetKind
	Name string
	Path string
	// Extras holds every key other than name and path, input order.
	Extras *Table
	// Elide is set by normalization when layout inference makes the
	// table redundant.
	Elide bool

	section *Section
}

// PackageName returns the [package] name, or "".
func (m *Manifest) PackageName() string {
	s, _ := m.Package.Str("name")
	return s
}

// AutoFlag returns the effective auto-discovery flag for a target kind
// (autobins, autoexamples, autotests, autobenches); absent means true.
func (m *Manifest) AutoFlag(kind TargetKind) bool {
	return m.Package.Bool(autoKey(kind), true)
}

func autoKey(kind TargetKind) string {
	switch kind {
	case KindBin:
		return "autobins"
	case KindExample:
		return "autoexamples"
	case KindTest:
		return "autotests"
	case KindBench:
		return "autobenches"
	}
	return ""
}

// Group returns the dependency group for (kind, scope), if present.
func (m *Manifest) Group(kind DepKind, scope string) (*DependencyGroup, bool) {
	for _, g := range m.Groups {
		if g.Kind == kind && g.Scope == scope {
			return g, true
		}
	}
	return nil, false
}
