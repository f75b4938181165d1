// Package gdast implements the lossless concrete syntax tree for GDScript
// (component C2): an arena-backed tree of Nodes and Tokens whose
// concatenated origin text reproduces the source exactly, plus the
// hand-written parser that builds it.
package gdast

// NodeKind is the closed set of interior-node kinds the parser produces.
type NodeKind int

const (
	InvalidNode NodeKind = iota

	ClassDeclaration
	MethodDeclaration
	VariableDeclaration
	ParameterDeclaration
	SignalDeclaration
	EnumDeclaration
	EnumValueDeclaration
	InnerClassDeclaration

	IfStatement
	IfBranch
	ForStatement
	WhileStatement
	MatchStatement
	MatchBranch
	MatchPattern
	ReturnStatement
	BreakStatement
	ContinueStatement
	PassStatement
	ExpressionStatement
	Block

	CallExpression
	MemberOperatorExpression
	IndexerExpression
	DualOperatorExpression
	SingleOperatorExpression
	TernaryExpression
	IdentifierExpression
	NumberExpression
	StringExpression
	BoolExpression
	NullExpression
	SelfExpression
	ArrayInitializer
	DictionaryInitializer
	DictionaryEntry
	MethodExpression // lambda
	AwaitExpression
	CastExpression
	TypeCheckExpression

	TypeNode
	ArrayTypeNode
	DictionaryTypeNode

	Attribute
	ArgumentList
	ParameterList

	// GetNodeExpression covers both sigil forms of scene-tree lookup:
	// `$Path/To/Node` and `%UniqueName`, plus their quoted-string
	// variants (`$"Path With Spaces"`). Distinguished from a call to
	// get_node() at the source-text level, but semantically equivalent
	// for the scene node validator (spec §4.6).
	GetNodeExpression
)

func (k NodeKind) String() string {
	names := map[NodeKind]string{
		InvalidNode:              "InvalidNode",
		ClassDeclaration:         "ClassDeclaration",
		MethodDeclaration:        "MethodDeclaration",
		VariableDeclaration:      "VariableDeclaration",
		ParameterDeclaration:     "ParameterDeclaration",
		SignalDeclaration:        "SignalDeclaration",
		EnumDeclaration:          "EnumDeclaration",
		EnumValueDeclaration:     "EnumValueDeclaration",
		InnerClassDeclaration:    "InnerClassDeclaration",
		IfStatement:              "IfStatement",
		IfBranch:                 "IfBranch",
		ForStatement:             "ForStatement",
		WhileStatement:           "WhileStatement",
		MatchStatement:           "MatchStatement",
		MatchBranch:              "MatchBranch",
		MatchPattern:             "MatchPattern",
		ReturnStatement:          "ReturnStatement",
		BreakStatement:           "BreakStatement",
		ContinueStatement:        "ContinueStatement",
		PassStatement:            "PassStatement",
		ExpressionStatement:      "ExpressionStatement",
		Block:                    "Block",
		CallExpression:           "CallExpression",
		MemberOperatorExpression: "MemberOperatorExpression",
		IndexerExpression:        "IndexerExpression",
		DualOperatorExpression:   "DualOperatorExpression",
		SingleOperatorExpression: "SingleOperatorExpression",
		TernaryExpression:        "TernaryExpression",
		IdentifierExpression:     "IdentifierExpression",
		NumberExpression:         "NumberExpression",
		StringExpression:         "StringExpression",
		BoolExpression:           "BoolExpression",
		NullExpression:           "NullExpression",
		SelfExpression:           "SelfExpression",
		ArrayInitializer:         "ArrayInitializer",
		DictionaryInitializer:    "DictionaryInitializer",
		DictionaryEntry:          "DictionaryEntry",
		MethodExpression:         "MethodExpression",
		AwaitExpression:          "AwaitExpression",
		CastExpression:           "CastExpression",
		TypeCheckExpression:      "TypeCheckExpression",
		TypeNode:                 "TypeNode",
		ArrayTypeNode:            "ArrayTypeNode",
		DictionaryTypeNode:       "DictionaryTypeNode",
		Attribute:                "Attribute",
		ArgumentList:             "ArgumentList",
		ParameterList:            "ParameterList",
		GetNodeExpression:        "GetNodeExpression",
	}
	if s, ok := names[k]; ok {
		return s
	}
	return "Unknown"
}

// IsExpression reports whether this kind represents an expression node,
// used by validators to decide whether get_expression_type applies.
func (k NodeKind) IsExpression() bool {
	switch k {
	case CallExpression, MemberOperatorExpression, IndexerExpression,
		DualOperatorExpression, SingleOperatorExpression, TernaryExpression,
		IdentifierExpression, NumberExpression, StringExpression,
		BoolExpression, NullExpression, SelfExpression, ArrayInitializer,
		DictionaryInitializer, MethodExpression, AwaitExpression,
		CastExpression, TypeCheckExpression,
		GetNodeExpression:
		return true
	default:
		return false
	}
}
