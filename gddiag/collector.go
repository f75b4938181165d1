package gddiag

import (
	"encoding/json"
	"sort"
)

// Collector accumulates Diagnostics from every validator run over a
// file or project and returns them in the stable order spec §7
// requires: ascending by (file, line, column, code).
type Collector struct {
	items []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records d. Validators call this directly; a validator that
// cannot compute a result simply never calls Add for that case (spec §7
// "absence of a diagnostic never implies correctness").
func (c *Collector) Add(d Diagnostic) {
	c.items = append(c.items, d)
}

// Len reports how many diagnostics have been collected so far.
func (c *Collector) Len() int {
	return len(c.items)
}

// Diagnostics returns every collected Diagnostic sorted ascending by
// (file, line, column, code). The suppression filter (Suppress) should
// run before this is handed to a caller.
func (c *Collector) Diagnostics() []Diagnostic {
	out := append([]Diagnostic(nil), c.items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Span.StartLine != b.Span.StartLine {
			return a.Span.StartLine < b.Span.StartLine
		}
		if a.Span.StartCol != b.Span.StartCol {
			return a.Span.StartCol < b.Span.StartCol
		}
		return a.Code < b.Code
	})
	return out
}

// MarshalJSON encodes every collected diagnostic (post-sort) in the
// stable wire record shape from spec §6, for any external consumer
// (editor plugin, CLI) that needs a wire format rather than the Go
// struct (SUPPLEMENTED FEATURES, SPEC_FULL.md).
func (c *Collector) MarshalJSON() ([]byte, error) {
	diags := c.Diagnostics()
	records := make([]record, len(diags))
	for i, d := range diags {
		records[i] = d.toRecord()
	}
	return json.Marshal(records)
}

// EncodeJSON is a package-level convenience for encoding an arbitrary
// diagnostic slice (e.g. already filtered/sorted by a caller) in the
// same wire shape MarshalJSON uses.
func EncodeJSON(diags []Diagnostic) ([]byte, error) {
	records := make([]record, len(diags))
	for i, d := range diags {
		records[i] = d.toRecord()
	}
	return json.Marshal(records)
}
