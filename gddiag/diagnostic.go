package gddiag

import (
	"fmt"

	"github.com/dekarrin/gdlint/gdast"
)

// Severity is the closed set of diagnostic severities (spec §3, §6).
type Severity int

const (
	Hint Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	default:
		return "Hint"
	}
}

// Span is the 1-based, end-exclusive source range a Diagnostic points
// at (spec §6): "ranges are inclusive of start and exclusive of end".
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// SpanOf computes n's Span from its first and last token positions. A
// node with no tokens (an empty Invalid subtree) returns the zero Span.
func SpanOf(n gdast.Node) Span {
	first, ok := n.FirstToken()
	if !ok {
		return Span{}
	}
	last, ok := n.LastToken()
	if !ok {
		last = first
	}
	fs, ls := first.Span(), last.Span()
	return Span{
		StartLine: fs.Start.Line, StartCol: fs.Start.Col,
		EndLine: ls.End.Line, EndCol: ls.End.Col,
	}
}

// Diagnostic is one located, typed finding produced by a validator
// (spec §3, §6). Diagnostics are value-typed results, never Go errors
// (spec §7): a validator that cannot compute an answer simply emits
// nothing.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	File     string
	Span     Span
	Node     gdast.Node
}

// New builds a Diagnostic at n's span using sev as its severity (the
// caller supplies sev so config-driven overrides of Code.DefaultSeverity
// can apply before the Diagnostic is constructed).
func New(code Code, sev Severity, file string, n gdast.Node, message string) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: sev,
		Message:  message,
		File:     file,
		Span:     SpanOf(n),
		Node:     n,
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s: %s", d.File, d.Span.StartLine, d.Span.StartCol, d.Code, d.Severity, d.Message)
}

// record is the stable JSON wire shape for a Diagnostic (spec §6). It
// deliberately omits the gdast.Node back-reference, which has no
// meaning outside this process.
type record struct {
	Code      string `json:"code"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

func (d Diagnostic) toRecord() record {
	return record{
		Code:      d.Code.String(),
		Severity:  d.Severity.String(),
		Message:   d.Message,
		File:      d.File,
		StartLine: d.Span.StartLine,
		StartCol:  d.Span.StartCol,
		EndLine:   d.Span.EndLine,
		EndCol:    d.Span.EndCol,
	}
}
