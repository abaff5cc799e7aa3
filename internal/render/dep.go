package render

import (
	"strings"

	"manifmt/internal/manifest"
)

// dependency renders one dependency entry, comment block included.
// A dependency carrying only a version renders as a plain string value;
// anything richer becomes a single-line inline table with a fixed key
// order: version, package rename, source fields, default-features,
// features, optional.
func dependency(b *strings.Builder, d *manifest.Dependency) {
	for _, c := range d.Comment {
		b.WriteString(c)
		b.WriteByte('\n')
	}
	if d.Unknown {
		b.WriteString(d.Raw)
		b.WriteByte('\n')
		return
	}

	var meta []string
	add := func(key, rendered string) {
		meta = append(meta, key+" = "+rendered)
	}

	if d.Package != "" {
		add("package", String(d.Package))
	}
	switch {
	case d.Path != "":
		add("path", String(d.Path))
	case d.Git != "":
		add("git", String(d.Git))
		if d.Branch != "" {
			add("branch", String(d.Branch))
		}
		if d.Tag != "" {
			add("tag", String(d.Tag))
		}
		if d.Rev != "" {
			add("rev", String(d.Rev))
		}
	case d.RegistryName != "":
		add("registry", String(d.RegistryName))
	}
	if !d.DefaultFeatures {
		add("default-features", "false")
	}
	if len(d.Features) > 0 {
		add("features", FlatStrings(d.Features))
	}
	if d.Optional {
		add("optional", "true")
	}

	b.WriteString(Key(d.Name))
	b.WriteString(" = ")
	if len(meta) == 0 {
		version := d.Version
		if version == "" {
			// A bare empty table means "any version".
			version = "*"
		}
		b.WriteString(String(version))
		b.WriteByte('\n')
		return
	}
	if d.Version != "" && d.Version != "*" {
		meta = append([]string{"version = " + String(d.Version)}, meta...)
	}
	b.WriteString("{ ")
	b.WriteString(strings.Join(meta, ", "))
	b.WriteString(" }\n")
}
