package tomlscan

import (
	"strings"
)

// scan segments validated TOML text into preamble entries and sections.
//
// Comment lines are held back until the next significant line decides
// where they belong: immediately above an entry they become that entry's
// comment block, immediately above a header they travel with the new
// section, and otherwise they are committed verbatim to the enclosing
// section's raw text.
func scan(text string) *Document {
	lines := splitLines(text)
	doc := &Document{}

	var (
		current *Section
		raw     []string
		pending []string
	)

	commitPending := func() {
		if current != nil {
			raw = append(raw, pending...)
		}
		pending = nil
	}

	flush := func() {
		commitPending()
		if current == nil {
			return
		}
		current.Raw = joinTrimmed(raw)
		doc.Sections = append(doc.Sections, *current)
		current = nil
		raw = nil
	}

	for i := 0; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			commitPending()
			if current != nil {
				raw = append(raw, line)
			}
			i++

		case strings.HasPrefix(trimmed, "#"):
			pending = append(pending, line)
			i++

		case strings.HasPrefix(trimmed, "["):
			headerComment := pending
			pending = nil
			flush()
			key, array := parseHeader(trimmed)
			current = &Section{
				Key:           key,
				Array:         array,
				Line:          i + 1,
				HeaderComment: headerComment,
			}
			raw = append(raw, headerComment...)
			raw = append(raw, line)
			i++

		default:
			key, dotted := parseEntryKey(trimmed)
			consumed := entryLines(lines, i)
			entry := Entry{
				Key:     key,
				Dotted:  dotted,
				Line:    i + 1,
				Raw:     strings.Join(lines[i:i+consumed], "\n"),
				Comment: pending,
			}
			comment := pending
			pending = nil
			if current == nil {
				doc.Preamble = append(doc.Preamble, entry)
			} else {
				raw = append(raw, comment...)
				raw = append(raw, lines[i:i+consumed]...)
				current.Entries = append(current.Entries, entry)
			}
			i += consumed
		}
	}
	flush()

	return doc
}

// entryLines reports how many physical lines the entry starting at index
// i spans, following multi-line arrays and multi-line strings.
func entryLines(lines []string, i int) int {
	var st lineState
	n := 0
	for i+n < len(lines) {
		st.feed(lines[i+n])
		n++
		if st.done() {
			return n
		}
	}
	return n
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// joinTrimmed joins raw lines, dropping trailing blank lines.
func joinTrimmed(lines []string) string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}
