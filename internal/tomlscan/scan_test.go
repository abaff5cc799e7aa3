package tomlscan

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestScanSections(t *testing.T) {
	doc := mustParse(t, strings.Join([]string{
		`[package]`,
		`name = "demo"`,
		``,
		`[dependencies]`,
		`serde = "1"`,
		``,
		`[[bin]]`,
		`name = "demo"`,
	}, "\n")+"\n")

	if len(doc.Preamble) != 0 {
		t.Fatalf("expected no preamble, got %d entries", len(doc.Preamble))
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}

	pkg := doc.Sections[0]
	if got := strings.Join(pkg.Key, "."); got != "package" {
		t.Fatalf("section 0 key = %q", got)
	}
	if pkg.Array {
		t.Fatalf("[package] flagged as array table")
	}
	if len(pkg.Entries) != 1 || pkg.Entries[0].Key != "name" {
		t.Fatalf("package entries = %+v", pkg.Entries)
	}

	bin := doc.Sections[2]
	if !bin.Array {
		t.Fatalf("[[bin]] not flagged as array table")
	}
	if bin.Line != 7 {
		t.Fatalf("[[bin]] line = %d, want 7", bin.Line)
	}
}

func TestScanCommentAttachment(t *testing.T) {
	doc := mustParse(t, strings.Join([]string{
		`# about the group`,
		`[dependencies]`,
		`# pinned for compatibility`,
		`zeta = "1"`,
		`alpha = "2.3"`,
	}, "\n")+"\n")

	sec := doc.Sections[0]
	if got := strings.Join(sec.HeaderComment, "\n"); got != "# about the group" {
		t.Fatalf("header comment = %q", got)
	}
	if len(sec.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(sec.Entries))
	}
	if got := strings.Join(sec.Entries[0].Comment, "\n"); got != "# pinned for compatibility" {
		t.Fatalf("zeta comment = %q", got)
	}
	if sec.Entries[1].Comment != nil {
		t.Fatalf("alpha unexpectedly carries a comment: %v", sec.Entries[1].Comment)
	}
}

func TestScanDetachedCommentNotAttached(t *testing.T) {
	doc := mustParse(t, strings.Join([]string{
		`[dependencies]`,
		`# floating`,
		``,
		`alpha = "1"`,
	}, "\n")+"\n")

	sec := doc.Sections[0]
	if sec.Entries[0].Comment != nil {
		t.Fatalf("blank line should break attachment, got %v", sec.Entries[0].Comment)
	}
}

func TestScanMultiLineEntry(t *testing.T) {
	doc := mustParse(t, strings.Join([]string{
		`[package]`,
		`authors = [`,
		`    "A",`,
		`    "B",`,
		`]`,
		`description = """`,
		`multi [line]`,
		`text"""`,
	}, "\n")+"\n")

	sec := doc.Sections[0]
	if len(sec.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(sec.Entries))
	}
	authors := sec.Entries[0]
	if got, want := authors.Raw, "authors = [\n    \"A\",\n    \"B\",\n]"; got != want {
		t.Fatalf("authors raw:\nwant %q\ngot  %q", want, got)
	}
	desc := sec.Entries[1]
	if !strings.Contains(desc.Raw, "multi [line]") {
		t.Fatalf("multi-line string not carried in raw: %q", desc.Raw)
	}
	if desc.Key != "description" {
		t.Fatalf("entry key = %q", desc.Key)
	}
}

func TestScanPreamble(t *testing.T) {
	doc := mustParse(t, strings.Join([]string{
		`# file header`,
		`cargo-features = ["edition2024"]`,
		``,
		`[package]`,
		`name = "demo"`,
	}, "\n")+"\n")

	if len(doc.Preamble) != 1 {
		t.Fatalf("expected 1 preamble entry, got %d", len(doc.Preamble))
	}
	pre := doc.Preamble[0]
	if pre.Key != "cargo-features" {
		t.Fatalf("preamble key = %q", pre.Key)
	}
	if got := strings.Join(pre.Comment, "\n"); got != "# file header" {
		t.Fatalf("preamble comment = %q", got)
	}
}

func TestScanSectionRaw(t *testing.T) {
	doc := mustParse(t, strings.Join([]string{
		`[profile.release]`,
		`opt-level = 3`,
		`lto = true`,
		``,
		`[package]`,
		`name = "demo"`,
	}, "\n")+"\n")

	want := "[profile.release]\nopt-level = 3\nlto = true"
	if got := doc.Sections[0].Raw; got != want {
		t.Fatalf("section raw:\nwant %q\ngot  %q", want, got)
	}
}

func TestScanDottedEntry(t *testing.T) {
	doc := mustParse(t, "[dependencies]\nserde.version = \"1\"\n")
	e := doc.Sections[0].Entries[0]
	if e.Key != "serde" || !e.Dotted {
		t.Fatalf("entry = %+v, want key serde dotted", e)
	}
}

func TestScanCRLF(t *testing.T) {
	doc := mustParse(t, "[package]\r\nname = \"demo\"\r\n")
	if got := doc.Sections[0].Entries[0].Raw; got != `name = "demo"` {
		t.Fatalf("raw with CRLF input = %q", got)
	}
}
