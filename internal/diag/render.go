package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	posColor  = color.New(color.Bold)
)

// Render writes diagnostics in a human-readable form:
//
//	<path>:<line>:<col>: <severity>: <message>
//	    <source line>
//	    ^
//
// The caret is aligned under the failing column, accounting for
// wide runes in the snippet. Expects the bag to be sorted already.
func Render(w io.Writer, bag *Bag, useColor bool) {
	for _, d := range bag.Items() {
		renderOne(w, d, useColor)
	}
}

func renderOne(w io.Writer, d Diagnostic, useColor bool) {
	sev := d.Severity.String()
	if useColor {
		switch d.Severity {
		case SevError:
			sev = errColor.Sprint(sev)
		case SevWarning:
			sev = warnColor.Sprint(sev)
		default:
			sev = infoColor.Sprint(sev)
		}
	}

	pos := d.Path
	if d.Line > 0 {
		pos = fmt.Sprintf("%s:%d", pos, d.Line)
		if d.Col > 0 {
			pos = fmt.Sprintf("%s:%d", pos, d.Col)
		}
	}
	if useColor {
		pos = posColor.Sprint(pos)
	}
	fmt.Fprintf(w, "%s: %s: %s\n", pos, sev, d.Message)

	if d.Snippet != "" && d.Col > 0 {
		line := strings.ReplaceAll(d.Snippet, "\t", " ")
		fmt.Fprintf(w, "    %s\n", line)
		fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", caretPad(line, d.Col)))
	}
}

// caretPad computes the display width of the snippet up to col (1-based),
// so the caret lands under the failing rune even with wide characters.
func caretPad(line string, col int) int {
	runes := []rune(line)
	if col-1 > len(runes) {
		col = len(runes) + 1
	}
	pad := 0
	for _, r := range runes[:col-1] {
		pad += runewidth.RuneWidth(r)
	}
	return pad
}
