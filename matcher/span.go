package matcher

import "github.com/treegrep/treegrep/ast"

// Span records which statements of a sequential target the current match has
// consumed, for ellipsis-over-statements. It is persistent: Extend returns a
// new Span and never aliases the receiver's backing storage, so sibling
// alternatives cannot clobber each other.
type Span struct {
	stmts []*ast.Node
}

// Extend returns a new Span with stmt appended.
func (s Span) Extend(stmt *ast.Node) Span {
	out := make([]*ast.Node, len(s.stmts), len(s.stmts)+1)
	copy(out, s.stmts)
	return Span{stmts: append(out, stmt)}
}

// Stmts returns the consumed statements in consumption order.
func (s Span) Stmts() []*ast.Node { return s.stmts }

// Len returns the number of consumed statements.
func (s Span) Len() int { return len(s.stmts) }
