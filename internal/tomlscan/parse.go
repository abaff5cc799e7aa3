package tomlscan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseError reports TOML that is not syntactically valid.
// Line and Col are 1-based; zero when unknown.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Col > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Entry is a single key line within a section, with the continuation
// lines of its value and any directly preceding comment lines.
type Entry struct {
	Key     string
	Dotted  bool
	Line    int
	Raw     string
	Comment []string
}

// Section is one bracketed table in source order.
type Section struct {
	Key   []string
	Array bool
	Line  int
	// HeaderComment holds comment lines immediately above the header.
	HeaderComment []string
	// Raw is the verbatim section text from the header line through the
	// last non-blank body line, LF-joined, without a trailing newline.
	Raw     string
	Entries []Entry
}

// Document is the scanned form of one manifest.
type Document struct {
	// Root is the typed value tree decoded by the TOML library.
	Root map[string]any
	// Preamble holds entries that appear before the first section header.
	Preamble []Entry
	// Sections lists every bracketed table in source order.
	Sections []Section
}

// Parse validates and decodes manifest text, then segments it.
// A syntactically invalid input yields a *ParseError.
func Parse(src []byte) (*Document, error) {
	text := string(src)
	text = strings.TrimPrefix(text, "\ufeff")

	var root map[string]any
	if _, err := toml.Decode(text, &root); err != nil {
		return nil, toParseError(text, err)
	}

	doc := scan(text)
	doc.Root = root
	return doc, nil
}

func toParseError(input string, err error) *ParseError {
	var pe toml.ParseError
	if errors.As(err, &pe) {
		line := pe.Position.Line
		col := columnAt(input, pe.Position.Start, line)
		return &ParseError{Line: line, Col: col, Msg: pe.Message}
	}
	return &ParseError{Msg: err.Error()}
}

// columnAt converts a byte offset into a 1-based column on the given line.
func columnAt(input string, offset, line int) int {
	if offset <= 0 || offset > len(input) || line <= 0 {
		return 0
	}
	lineStart := 0
	current := 1
	for i := 0; i < offset && i < len(input); i++ {
		if input[i] == '\n' {
			current++
			lineStart = i + 1
		}
	}
	if current != line {
		return 0
	}
	return offset - lineStart + 1
}
