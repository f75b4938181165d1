// Package render implements human-facing output (spec SPEC_FULL.md
// Ambient Stack "Output rendering"): wrapping and indenting diagnostic
// messages and tree dumps for a terminal or log, and formatting
// end-of-run summaries. It follows the teacher's pattern of reaching for
// rosed wherever text needs wrapping (tunascript/syntax's node
// String() methods, the slrTable/grammar table dumps) rather than
// hand-rolling line-wrap logic.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dekarrin/rosed"
	humanize "github.com/dustin/go-humanize"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
)

// DefaultWidth is the column width diagnostics and tree dumps wrap to
// when a caller has no better signal (e.g. not a TTY); the teacher uses
// 60 for in-game text and 80-120 for its grammar table dumps, and
// diagnostic messages sit closer to the narrower end.
const DefaultWidth = 100

// Diagnostic renders one diagnostic as a single wrapped, indented
// report line: "file:line:col: SEVERITY CodeName: message".
func Diagnostic(d gddiag.Diagnostic, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	header := fmt.Sprintf("%s:%d:%d: %s %s: ",
		d.File, d.Span.StartLine, d.Span.StartCol, d.Severity, d.Code.Name())
	wrapWidth := width - len(header)
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	body := rosed.Edit(d.Message).Wrap(wrapWidth).String()
	return header + indentContinuation(body, len(header))
}

// indentContinuation left-pads every line after the first of a
// rosed-wrapped block by prefixLen spaces, so a wrapped message's later
// lines line up under the first line's message column rather than the
// left margin.
func indentContinuation(s string, prefixLen int) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = fmt.Sprintf("%*s%s", prefixLen, "", lines[i])
	}
	return strings.Join(lines, "\n")
}

// Diagnostics renders a full diagnostic list, one report line per
// entry, in the order the collector produced them (already sorted by
// file/line/column/code, spec §4.7).
func Diagnostics(diags []gddiag.Diagnostic, width int) string {
	var out string
	for i, d := range diags {
		if i > 0 {
			out += "\n"
		}
		out += Diagnostic(d, width)
	}
	return out
}

// Tree renders n's concrete syntax tree dump wrapped to width, for
// dropping into a log or a `--dump-tree` debug flag.
func Tree(n gdast.Node, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return rosed.Edit(gdast.Dump(n)).Wrap(width).String()
}

// Summary formats an end-of-run report line ("1,204 diagnostics across
// 86 files in 312ms"), matching the teacher's humanize-flavored server
// response counts.
func Summary(fileCount int, diags []gddiag.Diagnostic, elapsed time.Duration) string {
	return fmt.Sprintf("%s across %s in %s",
		gddiag.DiagnosticCountPhrase(len(diags)),
		humanize.Comma(int64(fileCount))+pluralFiles(fileCount),
		elapsed.Round(time.Millisecond))
}

func pluralFiles(n int) string {
	if n == 1 {
		return " file"
	}
	return " files"
}

// Severities tallies diags by severity into a one-line breakdown, e.g.
// "3 errors, 12 warnings, 1 hint".
func Severities(diags []gddiag.Diagnostic) string {
	var errs, warns, hints int
	for _, d := range diags {
		switch d.Severity {
		case gddiag.Error:
			errs++
		case gddiag.Warning:
			warns++
		default:
			hints++
		}
	}
	parts := make([]string, 0, 3)
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%s error%s", humanize.Comma(int64(errs)), plural(errs)))
	}
	if warns > 0 {
		parts = append(parts, fmt.Sprintf("%s warning%s", humanize.Comma(int64(warns)), plural(warns)))
	}
	if hints > 0 {
		parts = append(parts, fmt.Sprintf("%s hint%s", humanize.Comma(int64(hints)), plural(hints)))
	}
	if len(parts) == 0 {
		return "no diagnostics"
	}
	joined := parts[0]
	for _, p := range parts[1:] {
		joined += ", " + p
	}
	return joined
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
