package tomlscan

import (
	"strconv"
	"strings"
)

// parseHeader splits a `[a.b."c.d"]` or `[[a.b]]` header line into its
// dotted key path. Assumes the line is valid TOML.
func parseHeader(trimmed string) (key []string, array bool) {
	s := trimmed[1:]
	if strings.HasPrefix(s, "[") {
		array = true
		s = s[1:]
	}
	if end := closingBracket(s); end >= 0 {
		s = s[:end]
	}
	return splitDottedKey(s), array
}

// closingBracket finds the index of the header's closing bracket,
// skipping brackets inside quoted key parts.
func closingBracket(s string) int {
	i := 0
	for i < len(s) {
		switch s[i] {
		case '"':
			i = skipBasicString(s, i+1)
		case '\'':
			i = skipLiteralString(s, i+1)
		case ']':
			return i
		default:
			i++
		}
	}
	return -1
}

// splitDottedKey splits a dotted key on unquoted dots and unquotes the parts.
func splitDottedKey(s string) []string {
	var parts []string
	var start int
	i := 0
	for i < len(s) {
		switch s[i] {
		case '"':
			i = skipBasicString(s, i+1)
		case '\'':
			i = skipLiteralString(s, i+1)
		case '.':
			parts = append(parts, unquoteKey(strings.TrimSpace(s[start:i])))
			i++
			start = i
		default:
			i++
		}
	}
	parts = append(parts, unquoteKey(strings.TrimSpace(s[start:])))
	return parts
}

// parseEntryKey extracts the first key segment of an entry line and
// whether the full key is dotted.
func parseEntryKey(trimmed string) (key string, dotted bool) {
	var rest string
	switch {
	case strings.HasPrefix(trimmed, `"`):
		end := skipBasicString(trimmed, 1)
		key = unquoteKey(trimmed[:end])
		rest = trimmed[end:]
	case strings.HasPrefix(trimmed, "'"):
		end := skipLiteralString(trimmed, 1)
		key = unquoteKey(trimmed[:end])
		rest = trimmed[end:]
	default:
		end := 0
		for end < len(trimmed) && isBareKeyChar(trimmed[end]) {
			end++
		}
		key = trimmed[:end]
		rest = trimmed[end:]
	}
	dotted = strings.HasPrefix(strings.TrimLeft(rest, " \t"), ".")
	return key, dotted
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_'
}

// unquoteKey decodes a quoted key part; bare keys pass through.
func unquoteKey(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}
