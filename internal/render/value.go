package render

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders a TOML string value. A value containing double quotes
// but no single quotes (and nothing unprintable) becomes a literal
// string; everything else becomes a basic string with standard escapes.
func String(s string) string {
	if strings.Contains(s, `"`) && !strings.Contains(s, "'") && !hasControl(s) {
		return "'" + s + "'"
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 0x20 {
			return true
		}
	}
	return false
}

// Key renders a table or entry key, quoting only when it is not a valid
// bare key.
func Key(k string) string {
	if bareKey(k) {
		return k
	}
	return String(k)
}

func bareKey(k string) bool {
	if k == "" {
		return false
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			c >= '0' && c <= '9' || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

// Value renders a scalar or array value in canonical form. pretty
// selects the multi-line array style for multi-element arrays.
func Value(v any, pretty bool) string {
	switch val := v.(type) {
	case string:
		return String(val)
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case []any:
		elems := make([]string, 0, len(val))
		for _, e := range val {
			elems = append(elems, Value(e, false))
		}
		return array(elems, pretty)
	case []string:
		elems := make([]string, 0, len(val))
		for _, e := range val {
			elems = append(elems, String(e))
		}
		return array(elems, pretty)
	}
	// The builder never admits a typed value outside the cases above.
	panic(fmt.Sprintf("cannot render value of type %T", v))
}

// FlatStrings renders a string slice as a single-line array.
func FlatStrings(values []string) string {
	elems := make([]string, 0, len(values))
	for _, v := range values {
		elems = append(elems, String(v))
	}
	return array(elems, false)
}

func array(elems []string, pretty bool) string {
	if !pretty || len(elems) <= 1 {
		return "[" + strings.Join(elems, ", ") + "]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for _, e := range elems {
		b.WriteString(arrayIndent)
		b.WriteString(e)
		b.WriteString(",\n")
	}
	b.WriteString("]")
	return b.String()
}
