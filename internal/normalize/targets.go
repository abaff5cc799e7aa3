package normalize

import (
	"manifmt/internal/layout"
	"manifmt/internal/manifest"
)

var elidableKinds = []manifest.TargetKind{
	manifest.KindBin,
	manifest.KindExample,
	manifest.KindTest,
	manifest.KindBench,
}

// elideTargets drops explicit target tables that restate exactly what
// layout inference would discover, and keeps the auto<kind> flag only
// when it actually overrides the layout-based default.
func elideTargets(m *manifest.Manifest, ctx *Context) *manifest.Manifest {
	pkgName := m.PackageName()

	for _, kind := range elidableKinds {
		explicit := targetsOfKind(m, kind)
		inferred := ctx.Inferred.ByKind(kind.String())

		if len(explicit) > 0 && matchesInferred(explicit, inferred, pkgName) {
			for _, t := range explicit {
				t.Elide = true
			}
		}

		// An autoX = false that guards nothing is inert; pass 4 already
		// dropped the true form.
		if !m.AutoFlag(kind) && setsEqual(explicit, inferred, pkgName) {
			m.Package.Remove(autoFlagKey(kind))
		}
	}

	// A [lib] table reduced entirely to defaults says nothing inference
	// would not.
	for _, t := range m.Targets {
		if t.Kind == manifest.KindLib && t.Name == "" && t.Path == "" && len(t.Extras.Entries) == 0 {
			t.Elide = true
		}
	}
	return m
}

func autoFlagKey(kind manifest.TargetKind) string {
	switch kind {
	case manifest.KindBin:
		return "autobins"
	case manifest.KindExample:
		return "autoexamples"
	case manifest.KindTest:
		return "autotests"
	case manifest.KindBench:
		return "autobenches"
	}
	return ""
}

func targetsOfKind(m *manifest.Manifest, kind manifest.TargetKind) []*manifest.TargetTable {
	var out []*manifest.TargetTable
	for _, t := range m.Targets {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// matchesInferred reports whether the explicit tables are a pure
// restatement of the inferred set: same names, same (or omitted) paths,
// and nothing else authored in any table.
func matchesInferred(explicit []*manifest.TargetTable, inferred []layout.Target, pkgName string) bool {
	if !setsEqual(explicit, inferred, pkgName) {
		return false
	}
	for _, t := range explicit {
		if len(t.Extras.Entries) > 0 {
			return false
		}
	}
	return true
}

// setsEqual compares just the target identities (name plus effective
// path) of explicit tables against the inferred set.
func setsEqual(explicit []*manifest.TargetTable, inferred []layout.Target, pkgName string) bool {
	if len(explicit) != len(inferred) {
		return false
	}
	byName := make(map[string]layout.Target, len(inferred))
	for _, inf := range inferred {
		byName[inf.Name] = inf
	}
	for _, t := range explicit {
		name := targetName(t, pkgName)
		inf, ok := byName[name]
		if !ok {
			return false
		}
		if t.Path != "" && t.Path != inf.Path {
			return false
		}
		delete(byName, name)
	}
	return len(byName) == 0
}
