package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"manifmt/internal/diag"
	"manifmt/internal/manifest"
)

// targetTriple matches plain target-triple scopes such as
// x86_64-unknown-linux-gnu or wasm32-wasip1.
var targetTriple = regexp.MustCompile(`^[A-Za-z0-9_]+(-[A-Za-z0-9_.]+)+$`)

// validateScopes checks each group's platform scope. An unrecognized
// predicate is not an error: the whole group reverts to passthrough and
// its source sections are emitted verbatim.
func validateScopes(m *manifest.Manifest, ctx *Context) *manifest.Manifest {
	var demote []*manifest.DependencyGroup
	for _, g := range m.Groups {
		if g.Scope == "" || validScope(g.Scope) {
			continue
		}
		demote = append(demote, g)
		ctx.Bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.CodeUnsupportedConstruct,
			Message:  fmt.Sprintf("unrecognized platform scope %q; group kept verbatim", g.Scope),
			Path:     ctx.Path,
		})
	}
	for _, g := range demote {
		m.DemoteGroup(g)
	}
	return m
}

// validScope accepts cfg(...) predicates with balanced parentheses and
// dash-separated target triples.
func validScope(scope string) bool {
	if strings.HasPrefix(scope, "cfg(") && strings.HasSuffix(scope, ")") {
		depth := 0
		for _, r := range scope {
			switch r {
			case '(':
				depth++
			case ')':
				depth--
				if depth < 0 {
					return false
				}
			}
		}
		return depth == 0
	}
	return targetTriple.MatchString(scope)
}
