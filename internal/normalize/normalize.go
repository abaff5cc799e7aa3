// Package normalize applies the canonicalization rules to a built
// manifest: an ordered sequence of passes, each idempotent on its own,
// none of which can fail. Irregular constructs were already routed to
// passthrough by the builder; the only demotion left here is a
// dependency group with an unrecognized platform scope.
package normalize

import (
	"manifmt/internal/diag"
	"manifmt/internal/layout"
	"manifmt/internal/manifest"
)

// Context carries the inputs the passes consult.
type Context struct {
	Path     string
	Inferred layout.Inferred
	Bag      *diag.Bag
}

type pass func(*manifest.Manifest, *Context) *manifest.Manifest

var passes = []pass{
	orderPackageKeys,
	sortDependencies,
	canonicalizeVersions,
	elideDefaults,
	elideTargets,
	validateScopes,
}

// Normalize runs the full pipeline and returns the normalized manifest.
func Normalize(m *manifest.Manifest, ctx *Context) *manifest.Manifest {
	for _, p := range passes {
		m = p(m, ctx)
	}
	return m
}
