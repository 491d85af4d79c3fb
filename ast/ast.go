// Package ast defines the generic, language-agnostic syntax representation
// shared by patterns and targets. Language frontends lower their concrete
// parse trees into this one type universe; a pattern is an ordinary tree
// whose identifier and string slots may carry special markers (metavariable
// names, the ellipsis, regex literals) recognized by the pattern package.
package ast

import (
	"fmt"
	"strings"
)

// Kind discriminates the node shapes the generic representation supports.
type Kind int

const (
	KindIdent  Kind = iota // identifier; Token holds the name
	KindString             // string literal; Token holds the value
	KindInt                // integer literal; Token holds the digits
	KindBool               // boolean literal; Token is "true" or "false"
	KindCall               // call; Children[0] callee, rest arguments
	KindBinOp              // binary operation; Token operator, two children
	KindExprStmt           // expression statement; one child
	KindBlock              // statement sequence
	KindFields             // unordered field/attribute collection
	KindOther              // construct without dedicated matching logic; Token is an opaque tag
)

func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "ident"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindCall:
		return "call"
	case KindBinOp:
		return "binop"
	case KindExprStmt:
		return "exprstmt"
	case KindBlock:
		return "block"
	case KindFields:
		return "fields"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// TokenInfo is position metadata attached to a node. It never participates
// in matching or structural equality.
type TokenInfo struct {
	File   string
	Line   int
	Col    int
	Offset int
}

// Node is a single node of the generic representation. The same type serves
// pattern and target trees.
type Node struct {
	Kind     Kind
	Token    string
	Children []*Node
	Info     TokenInfo
}

// Equal reports structural equality of two trees, ignoring TokenInfo.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Token != b.Token {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// EqualSlice reports elementwise structural equality of two node slices.
func EqualSlice(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if len(n.Children) == 0 {
		return fmt.Sprintf("%s(%s)", n.Kind, n.Token)
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	if n.Token != "" {
		return fmt.Sprintf("%s(%s: %s)", n.Kind, n.Token, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s(%s)", n.Kind, strings.Join(parts, ", "))
}

// Constructor helpers. Frontends and tests build trees with these; Info is
// left zero and can be filled in afterwards.

func NewIdent(name string) *Node { return &Node{Kind: KindIdent, Token: name} }
func NewString(v string) *Node   { return &Node{Kind: KindString, Token: v} }
func NewInt(digits string) *Node { return &Node{Kind: KindInt, Token: digits} }
func NewBool(v bool) *Node       { return &Node{Kind: KindBool, Token: fmt.Sprintf("%t", v)} }
func NewOther(tag string) *Node  { return &Node{Kind: KindOther, Token: tag} }

func NewCall(callee *Node, args ...*Node) *Node {
	return &Node{Kind: KindCall, Children: append([]*Node{callee}, args...)}
}

func NewBinOp(op string, lhs, rhs *Node) *Node {
	return &Node{Kind: KindBinOp, Token: op, Children: []*Node{lhs, rhs}}
}

func NewExprStmt(e *Node) *Node {
	return &Node{Kind: KindExprStmt, Children: []*Node{e}}
}

func NewBlock(stmts ...*Node) *Node {
	return &Node{Kind: KindBlock, Children: stmts}
}

func NewFields(fields ...*Node) *Node {
	return &Node{Kind: KindFields, Children: fields}
}
