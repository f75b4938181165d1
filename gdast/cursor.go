package gdast

import "github.com/dekarrin/gdlint/gdtoken"

// cursor walks the full raw token stream (trivia included) produced by
// gdtoken.Tokenize, feeding tokens into whatever node the parser is
// currently building. Every token, trivia or not, is consumed exactly
// once, which is what keeps the resulting tree lossless.
type cursor struct {
	toks []gdtoken.Token
	pos  int
}

func newCursor(toks []gdtoken.Token) *cursor {
	return &cursor{toks: toks}
}

func (c *cursor) atEOF() bool {
	return c.toks[c.pos].Kind == gdtoken.EOF
}

// rawAt peeks the token at the given offset from pos without consuming.
func (c *cursor) rawAt(offset int) gdtoken.Token {
	idx := c.pos + offset
	if idx >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[idx]
}

// sigAt peeks the offset-th non-trivia token from pos, without consuming
// anything.
func (c *cursor) sigAt(offset int) gdtoken.Token {
	count := 0
	for i := c.pos; i < len(c.toks); i++ {
		tk := c.toks[i]
		if tk.Kind.IsTrivia() {
			continue
		}
		if count == offset {
			return tk
		}
		count++
	}
	return c.toks[len(c.toks)-1]
}

func (c *cursor) peek() gdtoken.Token  { return c.sigAt(0) }
func (c *cursor) peek2() gdtoken.Token { return c.sigAt(1) }

// peekAfterAttributes returns the first significant token that is not
// part of a leading `@name` or `@name(args)` annotation sequence, without
// consuming anything. Used to decide which declaration kind follows a
// run of attributes.
func (c *cursor) peekAfterAttributes() gdtoken.Token {
	off := 0
	for {
		t := c.sigAt(off)
		if t.Kind != gdtoken.Annotation {
			return t
		}
		off++
		if paren := c.sigAt(off); paren.Kind == gdtoken.Punctuation && paren.SubKind == "(" {
			off++
			depth := 1
			for depth > 0 {
				t2 := c.sigAt(off)
				if t2.Kind == gdtoken.EOF {
					return t2
				}
				if t2.Kind == gdtoken.Punctuation && t2.SubKind == "(" {
					depth++
				}
				if t2.Kind == gdtoken.Punctuation && t2.SubKind == ")" {
					depth--
				}
				off++
			}
		}
	}
}

// consumeRaw appends exactly the token at pos (trivia or significant) as
// a child of parentIdx in b, and advances pos.
func (c *cursor) consumeRaw(b *builder, parentIdx int) gdtoken.Token {
	tok := c.toks[c.pos]
	tIdx := b.newToken(tok)
	b.appendChildToken(parentIdx, tIdx)
	if tok.Kind != gdtoken.EOF {
		c.pos++
	}
	return tok
}

// skipTrivia consumes every leading trivia token at pos, attaching each
// to parentIdx, until a significant token or EOF is reached.
func (c *cursor) skipTrivia(b *builder, parentIdx int) {
	for !c.atEOF() && c.toks[c.pos].Kind.IsTrivia() {
		c.consumeRaw(b, parentIdx)
	}
}

// consumeSignificant skips leading trivia (attached to parentIdx) then
// consumes the next significant token (also attached to parentIdx).
func (c *cursor) consumeSignificant(b *builder, parentIdx int) gdtoken.Token {
	c.skipTrivia(b, parentIdx)
	return c.consumeRaw(b, parentIdx)
}

// lineIndent reports the tab-count indentation of the upcoming logical
// line (the Indentation token immediately preceding the next significant
// token on its own line), without consuming anything. Returns 0 if the
// next significant token is not preceded by an Indentation token on its
// line (i.e. it starts at column 1).
func (c *cursor) lineIndent() int {
	// walk back from the next significant token to the start of its line
	sigOffset := 0
	for i := c.pos; i < len(c.toks); i++ {
		if !c.toks[i].Kind.IsTrivia() {
			sigOffset = i
			break
		}
	}
	for i := sigOffset - 1; i >= 0; i-- {
		switch c.toks[i].Kind {
		case gdtoken.Indentation:
			return len([]rune(c.toks[i].Text))
		case gdtoken.Newline, gdtoken.CarriageReturn:
			return 0
		}
		if !c.toks[i].Kind.IsTrivia() {
			return 0
		}
	}
	return 0
}
