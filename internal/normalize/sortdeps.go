package normalize

import (
	"sort"

	"manifmt/internal/manifest"
)

// sortDependencies orders every group's entries by name, case-sensitive
// lexicographic. Names are unique within a group, so no tie-break is
// needed; unknown entries sort by their key like any other.
func sortDependencies(m *manifest.Manifest, _ *Context) *manifest.Manifest {
	for _, g := range m.Groups {
		sort.SliceStable(g.Deps, func(i, j int) bool {
			return g.Deps[i].Name < g.Deps[j].Name
		})
	}
	if m.Features != nil {
		sort.SliceStable(m.Features.List, func(i, j int) bool {
			return m.Features.List[i].Name < m.Features.List[j].Name
		})
	}
	return m
}
