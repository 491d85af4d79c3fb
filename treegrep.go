// Package treegrep decides whether a pattern matches a target node of the
// generic syntax representation in the ast package, and under what
// metavariable bindings. It is the facade over the
// engine: a Session owns the match options and the per-invocation cache, and
// MatchNode / MatchStmts drive a reference node matcher built from the
// matcher package's combinators and the pattern package's classifier.
// Language frontends with richer node shapes supply their own matchers from
// the same combinators; this one covers the shared representation.
package treegrep

import (
	"github.com/treegrep/treegrep/ast"
	"github.com/treegrep/treegrep/lang"
	"github.com/treegrep/treegrep/matcher"
	"github.com/treegrep/treegrep/metavar"
	"github.com/treegrep/treegrep/pattern"
)

// Result is one alternative way the pattern matched: the complete binding
// set of that alternative, plus the statements consumed when matching a
// statement sequence.
type Result struct {
	Bindings map[string]metavar.Value
	Consumed []*ast.Node
}

// Session configures top-level match attempts: the pattern's language, the
// match options, and whether invocations memoize. Each call to MatchNode or
// MatchStmts is one session in the engine's sense and gets a private cache;
// nothing persists between calls.
type Session struct {
	lang    lang.Lang
	opts    matcher.Options
	caching bool
}

// NewSession creates a session for patterns written in l.
func NewSession(l lang.Lang, opts matcher.Options) *Session {
	return &Session{lang: l, opts: opts}
}

// EnableCache turns on per-invocation memoization. Purely an optimization:
// results are identical with or without it.
func (s *Session) EnableCache() *Session {
	s.caching = true
	return s
}

// CheckPattern validates the special forms of a pattern tree up front: every
// regex string literal is compiled now, so a malformed one fails at
// construction time instead of mid-match.
func CheckPattern(root *ast.Node, l lang.Lang) error {
	if root == nil {
		return nil
	}
	if root.Kind == ast.KindString && pattern.IsRegexpString(root.Token) {
		if _, err := matcher.CompileRegexpString(root.Token); err != nil {
			return err
		}
	}
	if root.Kind == ast.KindIdent && lang.IsJS(l) && pattern.IsRegexpString(root.Token) {
		if _, err := matcher.CompileRegexpString(root.Token); err != nil {
			return err
		}
	}
	for _, c := range root.Children {
		if err := CheckPattern(c, l); err != nil {
			return err
		}
	}
	return nil
}

// MatchNode matches a pattern node against a target node and returns every
// alternative binding environment, in exploration order. An empty slice with
// a nil error means the pattern legitimately does not match; a non-nil error
// means the pattern itself is broken.
func (s *Session) MatchNode(pat, tgt *ast.Node) (results []Result, err error) {
	defer func() { err = recoverMatchErr(recover(), err) }()
	env := s.newEnv()
	return toResults(s.matchNode(pat, tgt, env)), nil
}

// MatchStmts matches a pattern statement list against a target statement
// list, with ellipsis elements free to consume any run of statements. Each
// result records the statements its alternative consumed.
func (s *Session) MatchStmts(pat, tgt []*ast.Node) (results []Result, err error) {
	defer func() { err = recoverMatchErr(recover(), err) }()
	env := s.newEnv()
	return toResults(s.matchStmtList(pat, tgt, env)), nil
}

func (s *Session) newEnv() *matcher.Env {
	var cache *matcher.Cache
	if s.caching {
		cache = matcher.NewCache()
	}
	return matcher.NewEnv(cache, s.opts)
}

func toResults(out matcher.Tout) []Result {
	results := make([]Result, 0, len(out))
	for _, env := range out {
		results = append(results, Result{
			Bindings: env.Bindings(),
			Consumed: env.ConsumedSpan().Stmts(),
		})
	}
	return results
}

// recoverMatchErr converts the engine's fatal-condition panics into returned
// errors; anything else keeps propagating.
func recoverMatchErr(r any, err error) error {
	if r == nil {
		return err
	}
	switch e := r.(type) {
	case *matcher.BadPatternError:
		return e
	case *metavar.InvalidValueError:
		return e
	default:
		panic(r)
	}
}

// matchNode matches one pattern node against one target node, memoized when
// the session cache is on.
func (s *Session) matchNode(pat, tgt *ast.Node, env *matcher.Env) matcher.Tout {
	return matcher.Memo(env, "node", pat, tgt, func(e *matcher.Env) matcher.Tout {
		return s.matchNodeInner(pat, tgt, e)
	})
}

func (s *Session) matchNodeInner(pat, tgt *ast.Node, env *matcher.Env) matcher.Tout {
	// Pattern-side specials take precedence over structural comparison.
	if pat.Kind == ast.KindIdent {
		switch {
		case pattern.IsEllipsis(pat.Token):
			return matcher.Return(env)
		case pattern.IsMetavarName(pat.Token):
			e, ok := env.CheckAndAddBinding(pat.Token, captureValue(tgt))
			if !ok {
				return nil
			}
			return matcher.Return(e)
		case lang.IsJS(s.lang) && pattern.IsRegexpString(pat.Token):
			// JS permits regex literals in identifier position (field
			// names); match the target identifier's text.
			if tgt.Kind != ast.KindIdent {
				return nil
			}
			return matcher.MStringEllipsisOrRegexpOrDefault(pat.Token, tgt.Token, env)
		}
	}
	if pat.Kind != tgt.Kind {
		return nil
	}
	switch pat.Kind {
	case ast.KindIdent:
		return matcher.MString(pat.Token, tgt.Token, env)
	case ast.KindString:
		return matcher.MStringEllipsisOrRegexpOrDefault(pat.Token, tgt.Token, env)
	case ast.KindInt, ast.KindBool:
		return matcher.MString(pat.Token, tgt.Token, env)
	case ast.KindOther:
		return matcher.MOtherKind(pat.Token, tgt.Token, env)
	case ast.KindBinOp, ast.KindCall, ast.KindExprStmt:
		return matcher.MEq(pat.Token, tgt.Token, env).Then(func(e *matcher.Env) matcher.Tout {
			return s.matchElems(pat.Children, tgt.Children, e)
		})
	case ast.KindBlock:
		return s.matchStmtList(pat.Children, tgt.Children, env)
	case ast.KindFields:
		// Field collections are unordered; extra target fields are fine.
		return matcher.MListInAnyOrder(true, s.matchNode)(pat.Children, tgt.Children, env)
	default:
		return nil
	}
}

// matchElems matches ordered child lists (call arguments, operands) with
// ellipsis and multi-capture gaps admitted.
func (s *Session) matchElems(xs, ys []*ast.Node, env *matcher.Env) matcher.Tout {
	return s.matchSeq(xs, ys, env, false)
}

// matchStmtList is matchElems over statements: every consumed target
// statement, gap-consumed ones included, extends the environment's span.
func (s *Session) matchStmtList(xs, ys []*ast.Node, env *matcher.Env) matcher.Tout {
	return s.matchSeq(xs, ys, env, true)
}

// matchSeq walks a pattern list against a target list. A gap element
// enumerates every split of the remaining target via InitsAndRest; when the
// gap is a named multi-capture, the run it consumed is sealed into one
// sequence value and routed through the consistency gate, so a repeated
// $...X must capture structurally equal runs or the branch dies. A gap that
// consumed nothing still binds, to the empty sequence. With asStmts set,
// every consumed target element extends the environment's span.
func (s *Session) matchSeq(xs, ys []*ast.Node, env *matcher.Env, asStmts bool) matcher.Tout {
	switch {
	case len(xs) == 0 && len(ys) == 0:
		return matcher.Return(env)
	case len(xs) > 0 && isDotsNode(xs[0]):
		dots := xs[0]
		var out matcher.Tout
		for _, split := range matcher.InitsAndRest(ys) {
			e := env
			if asStmts {
				for _, stmt := range split.Prefix {
					e = e.ExtendSpan(stmt)
				}
			}
			if pattern.IsMultiCaptureName(dots.Token) {
				consumed := append([]*ast.Node{}, split.Prefix...)
				sealed, ok := e.CheckAndAddBinding(dots.Token, metavar.NewStmts(consumed))
				if !ok {
					continue
				}
				e = sealed
			}
			rest := split.Rest
			out = append(out, s.matchSeq(xs[1:], rest, e, asStmts)...)
		}
		return out
	case len(xs) == 0 || len(ys) == 0:
		return nil
	default:
		head := s.matchNode(xs[0], ys[0], env)
		if asStmts {
			stmt := ys[0]
			head = head.Then(func(e *matcher.Env) matcher.Tout {
				return matcher.Return(e.ExtendSpan(stmt))
			})
		}
		return head.Then(func(e *matcher.Env) matcher.Tout {
			return s.matchSeq(xs[1:], ys[1:], e, asStmts)
		})
	}
}

// isDotsNode recognizes the gap elements of a pattern list: a bare ellipsis
// or a multi-capture metavariable.
func isDotsNode(n *ast.Node) bool {
	return n.Kind == ast.KindIdent &&
		(pattern.IsEllipsis(n.Token) || pattern.IsMultiCaptureName(n.Token))
}

// captureValue classifies what a metavariable grabbed.
func captureValue(tgt *ast.Node) metavar.Value {
	switch tgt.Kind {
	case ast.KindIdent:
		return metavar.NewIdent(tgt)
	case ast.KindExprStmt, ast.KindBlock:
		return metavar.NewStmt(tgt)
	default:
		return metavar.NewExpr(tgt)
	}
}
