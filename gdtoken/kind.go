// Package gdtoken implements the character-by-character tokenizer for
// GDScript source (component C1). It produces a flat stream of Tokens
// that, concatenated, reproduce the input byte-for-byte.
package gdtoken

// Kind is the closed set of token kinds the tokenizer produces.
type Kind int

const (
	Invalid Kind = iota
	EOF

	Identifier
	Keyword

	NumberInt
	NumberFloat
	NumberBinary
	NumberHex

	StringSingle    // 'text'
	StringDouble    // "text"
	StringName      // &"text"
	StringNodePath  // ^"text"
	StringMultiline // """text""" or '''text'''

	Operator
	Punctuation

	Comment
	Annotation // @export, @onready, ...

	Space
	Indentation // run of tabs (spaces are always lexed as Space)
	Newline
	CarriageReturn
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case NumberInt:
		return "NumberInt"
	case NumberFloat:
		return "NumberFloat"
	case NumberBinary:
		return "NumberBinary"
	case NumberHex:
		return "NumberHex"
	case StringSingle:
		return "StringSingle"
	case StringDouble:
		return "StringDouble"
	case StringName:
		return "StringName"
	case StringNodePath:
		return "StringNodePath"
	case StringMultiline:
		return "StringMultiline"
	case Operator:
		return "Operator"
	case Punctuation:
		return "Punctuation"
	case Comment:
		return "Comment"
	case Annotation:
		return "Annotation"
	case Space:
		return "Space"
	case Indentation:
		return "Indentation"
	case Newline:
		return "Newline"
	case CarriageReturn:
		return "CarriageReturn"
	default:
		return "Unknown"
	}
}

// IsTrivia reports whether the kind carries no grammatical meaning on its
// own (whitespace, comments, line endings). The parser still attaches
// trivia tokens to the tree so rendering stays lossless.
func (k Kind) IsTrivia() bool {
	switch k {
	case Space, Indentation, Newline, CarriageReturn, Comment:
		return true
	default:
		return false
	}
}

// Keywords is the closed set of reserved words recognized by the
// tokenizer. Anything else lexically shaped like an identifier is an
// Identifier token.
var Keywords = map[string]bool{
	"if": true, "elif": true, "else": true,
	"for": true, "while": true, "match": true, "when": true,
	"func": true, "var": true, "const": true,
	"signal": true, "enum": true, "class": true, "class_name": true,
	"extends": true, "return": true, "pass": true,
	"break": true, "continue": true, "static": true,
	"and": true, "or": true, "not": true, "in": true,
	"is": true, "as": true, "await": true,
	"self": true, "super": true,
	"true": true, "false": true, "null": true,
	"void": true, "tool": true, "breakpoint": true,
	"remote": true, "master": true, "puppet": true,
	"preload": true, "yield": true, "setget": true,
	"get": true, "set": true,
}
