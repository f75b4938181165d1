// Package gdsym builds per-file symbol tables by walking a parsed
// gdast.Tree once, and materializes cross-file reference tables over a
// project of such files (component C4).
package gdsym

import "github.com/dekarrin/gdlint/gdast"

// Kind is the closed set of things a Symbol can be (spec §3).
type Kind int

const (
	KindClass Kind = iota
	KindVariable
	KindConstant
	KindMethod
	KindParameter
	KindSignal
	KindEnum
	KindEnumValue
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindVariable:
		return "Variable"
	case KindConstant:
		return "Constant"
	case KindMethod:
		return "Method"
	case KindParameter:
		return "Parameter"
	case KindSignal:
		return "Signal"
	case KindEnum:
		return "Enum"
	case KindEnumValue:
		return "EnumValue"
	default:
		return "Unknown"
	}
}

// Symbol is a named, kinded declaration materialized by the resolver.
type Symbol struct {
	Name         string
	Kind         Kind
	Decl         gdast.Node
	DeclaredType string // "" if untyped/inferred
	Scope        *Scope
}
