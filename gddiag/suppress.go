package gddiag

import (
	"strings"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gdtoken"
)

const suppressPrefix = "gd:ignore"

// suppressionSet maps the 1-based source line a `# gd:ignore = ...`
// comment appears on to the list of code-or-prefix patterns it names.
type suppressionSet map[int][]string

// collectSuppressions scans every Comment token in tree for a
// `# gd:ignore = CODE[, CODE...]` directive (spec §4.6, §6). Comments
// are already first-class tokens in the lossless tree, so this needs no
// extra parse pass.
func collectSuppressions(tree *gdast.Tree) suppressionSet {
	set := make(suppressionSet)
	for _, tok := range tree.Root().AllTokens() {
		if tok.Kind() != gdtoken.Comment {
			continue
		}
		codes, ok := parseSuppressComment(tok.Text())
		if !ok {
			continue
		}
		line := tok.Span().Start.Line
		set[line] = append(set[line], codes...)
	}
	return set
}

// parseSuppressComment extracts the comma-separated code list from a
// comment of the form "# gd:ignore = GD7003" or "# gd:ignore = GD3001,
// GD3004", tolerating surrounding whitespace.
func parseSuppressComment(text string) ([]string, bool) {
	body := strings.TrimPrefix(text, "#")
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, suppressPrefix) {
		return nil, false
	}
	rest := strings.TrimSpace(body[len(suppressPrefix):])
	rest = strings.TrimPrefix(rest, "=")
	parts := strings.Split(rest, ",")
	var out []string
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// patternMatches reports whether pattern (an exact code like "GD7003" or a
// bare-digit prefix like "GD7") covers code.
func patternMatches(pattern string, code Code) bool {
	full := code.String()
	if pattern == full {
		return true
	}
	return strings.HasPrefix(full, pattern)
}

// suppressed reports whether d is silenced by set: a directive on d's
// own line (inline, end of the offending line) or on the line
// immediately above it (spec §6 "inline ... or on the line immediately
// above").
func (set suppressionSet) suppressed(d Diagnostic) bool {
	for _, line := range []int{d.Span.StartLine, d.Span.StartLine - 1} {
		for _, pattern := range set[line] {
			if patternMatches(pattern, d.Code) {
				return true
			}
		}
	}
	return false
}

// Suppress filters diags against every `# gd:ignore` comment present in
// tree, returning the diagnostics that survive (spec §4.6's comment
// suppression filter, §8 property 12). The validators that produced
// diags must have run to completion first — suppression only hides
// already-computed findings, it never prevents a validator from running.
func Suppress(tree *gdast.Tree, diags []Diagnostic) []Diagnostic {
	set := collectSuppressions(tree)
	if len(set) == 0 {
		return diags
	}
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if set.suppressed(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}
