// Package metavar defines the values a metavariable can capture and the
// structural equality used to keep repeated captures consistent.
package metavar

import (
	"fmt"
	"strings"

	"github.com/treegrep/treegrep/ast"
)

// Category says which syntactic category a capture came from.
type Category int

const (
	Expr  Category = iota // a single expression
	Stmt                  // a single statement
	Stmts                 // a statement sequence (multi-capture)
	Ident                 // an identifier
)

func (c Category) String() string {
	switch c {
	case Expr:
		return "expr"
	case Stmt:
		return "stmt"
	case Stmts:
		return "stmts"
	case Ident:
		return "ident"
	default:
		return "invalid"
	}
}

// Value is a captured fragment of the target. Exactly one of Node/Nodes is
// populated depending on the category: Nodes for Stmts, Node otherwise.
type Value struct {
	Category Category
	Node     *ast.Node
	Nodes    []*ast.Node
}

// InvalidValueError signals a malformed capture reaching a structural
// comparison it cannot perform. This is an internal invariant violation, not
// an ordinary non-match, and is raised as a panic so it cannot be confused
// with an empty result.
type InvalidValueError struct {
	Category Category
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("metavar: cannot compare value of category %d", int(e.Category))
}

// NewExpr, NewStmt, NewStmts, NewIdent build well-formed captures.

func NewExpr(n *ast.Node) Value     { return Value{Category: Expr, Node: n} }
func NewStmt(n *ast.Node) Value     { return Value{Category: Stmt, Node: n} }
func NewStmts(ns []*ast.Node) Value { return Value{Category: Stmts, Nodes: ns} }
func NewIdent(n *ast.Node) Value    { return Value{Category: Ident, Node: n} }

// Equal reports structural equality of two captures, ignoring position
// metadata. Captures of different categories are never equal. It panics with
// *InvalidValueError when a value's category is outside the closed set.
func Equal(a, b Value) bool {
	if a.Category != b.Category {
		return false
	}
	switch a.Category {
	case Expr, Stmt, Ident:
		return ast.Equal(a.Node, b.Node)
	case Stmts:
		return ast.EqualSlice(a.Nodes, b.Nodes)
	default:
		panic(&InvalidValueError{Category: a.Category})
	}
}

func (v Value) String() string {
	if v.Category == Stmts {
		parts := make([]string, len(v.Nodes))
		for i, n := range v.Nodes {
			parts[i] = n.String()
		}
		return fmt.Sprintf("%s[%s]", v.Category, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s[%s]", v.Category, v.Node.String())
}
