package tomlscan

import "strings"

type strMode uint8

const (
	modeNone strMode = iota
	modeMultiBasic
	modeMultiLiteral
)

// lineState tracks whether a value is still open at the end of a line.
// Only arrays and multi-line strings may span lines in valid TOML.
type lineState struct {
	mode  strMode
	depth int
}

func (st *lineState) done() bool {
	return st.mode == modeNone && st.depth <= 0
}

// feed consumes one physical line.
func (st *lineState) feed(line string) {
	i := 0
	for i < len(line) {
		switch st.mode {
		case modeMultiBasic:
			i = st.scanMultiBasic(line, i)
		case modeMultiLiteral:
			i = st.scanMultiLiteral(line, i)
		default:
			i = st.scanNormal(line, i)
		}
	}
}

func (st *lineState) scanNormal(line string, i int) int {
	for i < len(line) {
		switch line[i] {
		case '#':
			return len(line)
		case '"':
			if strings.HasPrefix(line[i:], `"""`) {
				st.mode = modeMultiBasic
				return i + 3
			}
			i = skipBasicString(line, i+1)
		case '\'':
			if strings.HasPrefix(line[i:], "'''") {
				st.mode = modeMultiLiteral
				return i + 3
			}
			i = skipLiteralString(line, i+1)
		case '[', '{':
			st.depth++
			i++
		case ']', '}':
			st.depth--
			i++
		default:
			i++
		}
	}
	return i
}

func (st *lineState) scanMultiBasic(line string, i int) int {
	for i < len(line) {
		if line[i] == '\\' {
			i += 2
			continue
		}
		if strings.HasPrefix(line[i:], `"""`) {
			i += 3
			// Up to two extra quotes belong to the string content.
			for n := 0; n < 2 && i < len(line) && line[i] == '"'; n++ {
				i++
			}
			st.mode = modeNone
			return i
		}
		i++
	}
	return i
}

func (st *lineState) scanMultiLiteral(line string, i int) int {
	for i < len(line) {
		if strings.HasPrefix(line[i:], "'''") {
			i += 3
			for n := 0; n < 2 && i < len(line) && line[i] == '\''; n++ {
				i++
			}
			st.mode = modeNone
			return i
		}
		i++
	}
	return i
}

// skipBasicString advances past a single-line basic string body starting
// just after the opening quote, returning the index after the closing quote.
func skipBasicString(line string, i int) int {
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipLiteralString(line string, i int) int {
	for i < len(line) {
		if line[i] == '\'' {
			return i + 1
		}
		i++
	}
	return i
}
