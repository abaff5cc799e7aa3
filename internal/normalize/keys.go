package normalize

import (
	"manifmt/internal/manifest"
)

// packageKeyOrder is the canonical [package] key sequence. Keys absent
// from the document stay absent; unknown keys are re-inserted after the
// recognized key that preceded them in the input.
var packageKeyOrder = []string{
	"name",
	"description",
	"version",
	"authors",
	"keywords",
	"categories",
	"license",
	"license-file",
	"readme",
	"homepage",
	"repository",
	"documentation",
	"exclude",
	"include",
	"links",
	"edition",
	"rust-version",
	"publish",
	"default-run",
	"build",
	"autobins",
	"autoexamples",
	"autotests",
	"autobenches",
}

var packageKeyRank = func() map[string]int {
	rank := make(map[string]int, len(packageKeyOrder))
	for i, k := range packageKeyOrder {
		rank[k] = i
	}
	return rank
}()

func orderPackageKeys(m *manifest.Manifest, _ *Context) *manifest.Manifest {
	if m.Package == nil {
		return m
	}
	m.Package.Entries = orderEntries(m.Package.Entries, packageKeyRank)
	return m
}

// orderEntries rebuilds an entry list in canonical key order, keeping
// every unknown entry directly after its input anchor.
func orderEntries(entries []*manifest.Entry, rank map[string]int) []*manifest.Entry {
	known := make([]*manifest.Entry, 0, len(entries))
	var unknown []*manifest.Entry
	for _, e := range entries {
		if e.Unknown {
			unknown = append(unknown, e)
		} else {
			known = append(known, e)
		}
	}

	ordered := make([]*manifest.Entry, 0, len(entries))
	for _, key := range orderedKeys(known, rank) {
		for _, e := range known {
			if e.Key == key {
				ordered = append(ordered, e)
			}
		}
	}

	for _, u := range unknown {
		ordered = insertAfter(ordered, u)
	}
	return ordered
}

func orderedKeys(known []*manifest.Entry, rank map[string]int) []string {
	keys := make([]string, 0, len(known))
	for _, e := range known {
		keys = append(keys, e.Key)
	}
	// Insertion sort by rank; key sets are tiny and ranks unique.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && rank[keys[j]] < rank[keys[j-1]]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// insertAfter places an unknown entry directly after its anchor key,
// after any unknown entries already holding that spot. An empty anchor
// means the head of the table.
func insertAfter(ordered []*manifest.Entry, u *manifest.Entry) []*manifest.Entry {
	at := 0
	if u.AfterKey != "" {
		at = -1
		for i, e := range ordered {
			if !e.Unknown && e.Key == u.AfterKey {
				at = i + 1
				break
			}
		}
		if at < 0 {
			// Anchor vanished; keep the entry at the tail.
			at = len(ordered)
		}
	}
	for at < len(ordered) && ordered[at].Unknown {
		at++
	}
	out := make([]*manifest.Entry, 0, len(ordered)+1)
	out = append(out, ordered[:at]...)
	out = append(out, u)
	out = append(out, ordered[at:]...)
	return out
}
