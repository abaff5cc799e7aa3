package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"manifmt/internal/manifest"
)

// bareConstraint matches the bare or caret numeric constraint forms that
// are subject to expansion. Anything else (explicit operators, comma
// lists, pre-release or build-metadata suffixes) passes through as-is.
var bareConstraint = regexp.MustCompile(`^\^?([0-9]+)(?:\.([0-9]+))?(?:\.([0-9]+))?$`)

// canonicalizeVersions expands every registry dependency's constraint
// into the fully-specified three-component form.
func canonicalizeVersions(m *manifest.Manifest, _ *Context) *manifest.Manifest {
	for _, g := range m.Groups {
		for _, d := range g.Deps {
			if d.Unknown || d.Version == "" {
				continue
			}
			d.Version = ExpandConstraint(d.Version)
		}
	}
	return m
}

// ExpandConstraint expands a bare or caret numeric constraint to
// major.minor.patch, stripping the caret: the caret is the implicit
// default for bare constraints, so spelling the version out changes no
// resolution semantics. Non-matching constraints return unchanged.
func ExpandConstraint(constraint string) string {
	groups := bareConstraint.FindStringSubmatch(strings.TrimSpace(constraint))
	if groups == nil {
		return constraint
	}
	minor, patch := groups[2], groups[3]
	if minor == "" {
		minor = "0"
	}
	if patch == "" {
		patch = "0"
	}
	expanded := fmt.Sprintf("%s.%s.%s", groups[1], minor, patch)
	if _, err := semver.NewVersion(expanded); err != nil {
		return constraint
	}
	return expanded
}
