// Package render serializes a normalized manifest back to canonical
// text: fixed top-level table order, comment blocks directly above
// their entries, passthrough nodes re-inserted at their original
// relative position, LF line endings, one trailing newline.
package render

import (
	"sort"
	"strings"

	"manifmt/internal/manifest"
)

// Render produces the canonical text for a normalized manifest.
// Feeding the output back through the pipeline is byte-identical.
func Render(m *manifest.Manifest) []byte {
	r := &renderer{m: m}
	return r.render()
}

type renderer struct {
	m           *manifest.Manifest
	blocks      []string
	hasPreamble bool
	// byConstruct maps an emitted construct to its block index.
	byConstruct map[any]int
}

func (r *renderer) render() []byte {
	r.byConstruct = make(map[any]int)

	if pre := r.preamble(); pre != "" {
		r.blocks = append(r.blocks, pre)
		r.hasPreamble = true
	}
	r.emit(r.m.Package, r.packageBlock())
	for _, g := range orderedGroups(r.m.Groups) {
		r.emit(g, r.groupBlock(g))
	}
	if r.m.Features != nil {
		r.emit(r.m.Features, r.featuresBlock())
	}
	for _, t := range orderedTargets(r.m.Targets) {
		if t.Elide {
			continue
		}
		r.emit(t, r.targetBlock(t))
	}
	r.emit(r.m.Workspace, r.workspaceBlock())

	r.insertPassthrough()

	if len(r.blocks) == 0 {
		return nil
	}
	return []byte(strings.Join(r.blocks, "\n\n") + "\n")
}

func (r *renderer) emit(construct any, text string) {
	if text == "" {
		return
	}
	r.byConstruct[construct] = len(r.blocks)
	r.blocks = append(r.blocks, text)
}

// insertPassthrough re-inserts passthrough sections after the nearest
// preceding section (in input order) whose construct was emitted, or at
// the head of the file when none was.
func (r *renderer) insertPassthrough() {
	type insertion struct {
		after int // block index, -1 for head
		text  string
	}
	var ins []insertion
	for i, sec := range r.m.Sections {
		if sec.Construct != nil {
			continue
		}
		after := -1
		for j := i - 1; j >= 0; j-- {
			c := r.m.Sections[j].Construct
			if c == nil {
				continue
			}
			if idx, ok := r.byConstruct[c]; ok {
				after = idx
				break
			}
		}
		ins = append(ins, insertion{after: after, text: sec.Raw()})
	}
	if len(ins) == 0 {
		return
	}

	appendAt := func(out []string, after int) []string {
		for _, in := range ins {
			if in.after == after {
				out = append(out, in.text)
			}
		}
		return out
	}

	head := 0
	if r.hasPreamble {
		head = 1
	}
	out := make([]string, 0, len(r.blocks)+len(ins))
	out = append(out, r.blocks[:head]...)
	out = appendAt(out, -1)
	for i := head; i < len(r.blocks); i++ {
		out = append(out, r.blocks[i])
		out = appendAt(out, i)
	}
	r.blocks = out
}

func (r *renderer) preamble() string {
	var b strings.Builder
	for i, p := range r.m.Preamble {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range p.Comment {
			b.WriteString(c)
			b.WriteByte('\n')
		}
		b.WriteString(p.Raw)
	}
	return b.String()
}

func (r *renderer) packageBlock() string {
	if r.m.Package == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("[package]")
	writeTable(&b, r.m.Package)
	return b.String()
}

func (r *renderer) workspaceBlock() string {
	if r.m.Workspace == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("[workspace]")
	writeTable(&b, r.m.Workspace)
	return b.String()
}

// writeTable appends a table's entries below an already-written header.
func writeTable(b *strings.Builder, t *manifest.Table) {
	for _, e := range t.Entries {
		b.WriteByte('\n')
		if e.Unknown {
			b.WriteString(e.Raw)
			continue
		}
		b.WriteString(Key(e.Key))
		b.WriteString(" = ")
		b.WriteString(Value(e.Value, prettyArrayKeys[e.Key]))
	}
}

// orderedGroups returns dependency groups in canonical order: normal,
// development, build; within a kind the unconditional scope first, then
// platform scopes sorted.
func orderedGroups(groups []*manifest.DependencyGroup) []*manifest.DependencyGroup {
	out := append([]*manifest.DependencyGroup(nil), groups...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		if (out[i].Scope == "") != (out[j].Scope == "") {
			return out[i].Scope == ""
		}
		return out[i].Scope < out[j].Scope
	})
	return out
}

func (r *renderer) groupBlock(g *manifest.DependencyGroup) string {
	if len(g.Deps) == 0 {
		return ""
	}
	var b strings.Builder
	if g.Scope == "" {
		b.WriteString("[" + g.Kind.String() + "]")
	} else {
		b.WriteString("[target." + Key(g.Scope) + "." + g.Kind.String() + "]")
	}
	b.WriteByte('\n')
	for _, d := range g.Deps {
		dependency(&b, d)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (r *renderer) featuresBlock() string {
	if len(r.m.Features.List) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("[features]\n")
	for _, f := range r.m.Features.List {
		for _, c := range f.Comment {
			b.WriteString(c)
			b.WriteByte('\n')
		}
		if f.Unknown {
			b.WriteString(f.Raw)
			b.WriteByte('\n')
			continue
		}
		b.WriteString(Key(f.Name))
		b.WriteString(" = ")
		b.WriteString(FlatStrings(f.Values))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// orderedTargets returns target tables kind-major (lib, bin, example,
// test, bench), sorted by name within a kind.
func orderedTargets(targets []*manifest.TargetTable) []*manifest.TargetTable {
	out := append([]*manifest.TargetTable(nil), targets...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *renderer) targetBlock(t *manifest.TargetTable) string {
	var b strings.Builder
	if t.Kind == manifest.KindLib {
		b.WriteString("[lib]")
	} else {
		b.WriteString("[[" + t.Kind.String() + "]]")
	}
	if t.Name != "" {
		b.WriteString("\nname = " + String(t.Name))
	}
	if t.Path != "" {
		b.WriteString("\npath = " + String(t.Path))
	}
	writeTable(&b, t.Extras)
	return b.String()
}
