package gdtoken

// Token is a leaf of the lossless tree. Its Text is the exact source slice
// it covers; concatenating every token's Text in stream order reproduces
// the input exactly (spec §3 losslessness invariant).
type Token struct {
	Kind Kind
	Text string
	Span Span

	// SubKind disambiguates within a Kind, e.g. which operator or which
	// keyword this token spells. Empty for kinds that don't need it.
	SubKind string
}

// OriginLength is the number of bytes this token contributes to
// render_origin. It is always len(Text).
func (t Token) OriginLength() int {
	return len(t.Text)
}

// CanonicalText is the text this token contributes to render_canonical,
// which elides CarriageReturn tokens entirely.
func (t Token) CanonicalText() string {
	if t.Kind == CarriageReturn {
		return ""
	}
	return t.Text
}

// IsInvalid reports whether the tokenizer could not classify this token
// under any valid GDScript lexical form.
func (t Token) IsInvalid() bool {
	return t.Kind == Invalid
}
