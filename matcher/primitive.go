package matcher

import (
	"strings"

	"github.com/treegrep/treegrep/ast"
	"github.com/treegrep/treegrep/pattern"
)

// MEq lifts plain equality of two scalar values into the disjunctive style.
// No binding effect.
func MEq[T comparable](a, b T, env *Env) Tout {
	if a == b {
		return Return(env)
	}
	return nil
}

// MBool matches two booleans.
func MBool(a, b bool, env *Env) Tout { return MEq(a, b, env) }

// MInt matches two integers.
func MInt(a, b int, env *Env) Tout { return MEq(a, b, env) }

// MString matches two already-resolved string literals exactly. Pattern
// specials are handled by MStringEllipsisOrRegexpOrDefault, not here.
func MString(a, b string, env *Env) Tout { return MEq(a, b, env) }

// MStringPrefix succeeds iff s starts with prefix, for constructs with
// partial-match semantics (field and attribute names).
func MStringPrefix(prefix, s string, env *Env) Tout {
	if strings.HasPrefix(s, prefix) {
		return Return(env)
	}
	return nil
}

// MStringEllipsisOrRegexpOrDefault dispatches a pattern-side string literal:
// the ellipsis marker matches anything, a regex literal matches via its
// compiled form, and any other string falls back to exact equality, or to
// prefix matching when the use_m_string_prefix_for_default option is set.
func MStringEllipsisOrRegexpOrDefault(pat, tgt string, env *Env) Tout {
	switch {
	case pattern.IsEllipsis(pat):
		return Return(env)
	case pattern.IsRegexpString(pat):
		if mustCompileRegexpString(pat).MatchString(tgt) {
			return Return(env)
		}
		return nil
	default:
		return IfConfig(
			func(o Options) bool { return o.UseStringPrefixForDefault },
			func(e *Env) Tout { return MStringPrefix(pat, tgt, e) },
			func(e *Env) Tout { return MString(pat, tgt, e) },
		)(env)
	}
}

// MOption lifts a matcher over optional values: two present values match via
// m, two absent values match trivially, mismatched optionality fails.
func MOption[T any](m Matcher[T]) Matcher[*T] {
	return func(a, b *T, env *Env) Tout {
		switch {
		case a != nil && b != nil:
			return m(*a, *b, env)
		case a == nil && b == nil:
			return Return(env)
		default:
			return nil
		}
	}
}

// MOptionNoneCanMatchSome is the laxer variant where an absent pattern-side
// value means "don't care": it matches any target value, present or absent,
// without binding anything.
func MOptionNoneCanMatchSome[T any](m Matcher[T]) Matcher[*T] {
	return func(a, b *T, env *Env) Tout {
		if a == nil {
			return Return(env)
		}
		if b == nil {
			return nil
		}
		return m(*a, *b, env)
	}
}

// MOptionEllipsisOK is like MOption, except a present pattern value that is
// itself the ellipsis marker (per isEllipsis) matches any target value,
// including absence.
func MOptionEllipsisOK[T any](isEllipsis func(T) bool, m Matcher[T]) Matcher[*T] {
	return func(a, b *T, env *Env) Tout {
		if a != nil && isEllipsis(*a) {
			return Return(env)
		}
		return MOption(m)(a, b, env)
	}
}

// Ref is a mutable-cell container some frontends use for nodes rewritten in
// place.
type Ref[T any] struct {
	Val *T
}

// MRef applies m to the contents of two cells.
func MRef[T any](m Matcher[T]) Matcher[Ref[T]] {
	return func(a, b Ref[T], env *Env) Tout {
		return m(*a.Val, *b.Val, env)
	}
}

// Wrapped is a value annotated with one token's position metadata.
type Wrapped[T any] struct {
	Val  T
	Info ast.TokenInfo
}

// MWrap applies m to the payloads; the annotations never participate.
func MWrap[T any](m Matcher[T]) Matcher[Wrapped[T]] {
	return func(a, b Wrapped[T], env *Env) Tout {
		return m(a.Val, b.Val, env)
	}
}

// Bracket is a value between two delimiter tokens.
type Bracket[T any] struct {
	Open  ast.TokenInfo
	Val   T
	Close ast.TokenInfo
}

// MBracket applies m to the payloads, ignoring the delimiters.
func MBracket[T any](m Matcher[T]) Matcher[Bracket[T]] {
	return func(a, b Bracket[T], env *Env) Tout {
		return m(a.Val, b.Val, env)
	}
}

// Tuple3 groups three values matched componentwise.
type Tuple3[A, B, C any] struct {
	A A
	B B
	C C
}

// MTuple3 matches componentwise, left to right, threading the environment so
// each component's bindings are visible to the next.
func MTuple3[A, B, C any](ma Matcher[A], mb Matcher[B], mc Matcher[C]) Matcher[Tuple3[A, B, C]] {
	return func(a, b Tuple3[A, B, C], env *Env) Tout {
		return ma(a.A, b.A, env).
			Then(func(e *Env) Tout { return mb(a.B, b.B, e) }).
			Then(func(e *Env) Tout { return mc(a.C, b.C, e) })
	}
}

// MInfo always succeeds: position metadata never participates in matching.
func MInfo(a, b ast.TokenInfo, env *Env) Tout { return Return(env) }

// MTok always succeeds, like MInfo.
func MTok(a, b ast.TokenInfo, env *Env) Tout { return Return(env) }

// MOtherKind matches the opaque tags of two constructs that have no
// dedicated matching logic.
func MOtherKind(a, b string, env *Env) Tout { return MEq(a, b, env) }
