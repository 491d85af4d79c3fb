package matcher

// Split is one way of cutting a list into a leading prefix and the rest.
type Split[T any] struct {
	Prefix []T
	Rest   []T
}

// InitsAndRest enumerates every (prefix, rest) split of xs, from the empty
// prefix up to the whole list. len(xs)+1 splits in total.
func InitsAndRest[T any](xs []T) []Split[T] {
	out := make([]Split[T], 0, len(xs)+1)
	for i := 0; i <= len(xs); i++ {
		out = append(out, Split[T]{Prefix: xs[:i:i], Rest: xs[i:]})
	}
	return out
}

// ElemRest is one element of a list paired with the list minus that element.
type ElemRest[T any] struct {
	Elem T
	Rest []T
}

// AllElemAndRest enumerates every (element, remaining-list) pair of xs,
// preserving the relative order of the remaining elements.
func AllElemAndRest[T any](xs []T) []ElemRest[T] {
	out := make([]ElemRest[T], 0, len(xs))
	for i := range xs {
		rest := make([]T, 0, len(xs)-1)
		rest = append(rest, xs[:i]...)
		rest = append(rest, xs[i+1:]...)
		out = append(out, ElemRest[T]{Elem: xs[i], Rest: rest})
	}
	return out
}

// MList matches two lists exactly: equal lengths, elementwise left to right,
// threading the environment so each element's bindings are visible to the
// next.
func MList[T any](m Matcher[T]) Matcher[[]T] {
	var rec func(xs, ys []T, env *Env) Tout
	rec = func(xs, ys []T, env *Env) Tout {
		switch {
		case len(xs) == 0 && len(ys) == 0:
			return Return(env)
		case len(xs) == 0 || len(ys) == 0:
			return nil
		default:
			return m(xs[0], ys[0], env).Then(func(e *Env) Tout {
				return rec(xs[1:], ys[1:], e)
			})
		}
	}
	return func(xs, ys []T, env *Env) Tout { return rec(xs, ys, env) }
}

// MListPrefix matches the pattern list against the leading elements of the
// target; trailing target elements are ignored and contribute no bindings.
func MListPrefix[T any](m Matcher[T]) Matcher[[]T] {
	var rec func(xs, ys []T, env *Env) Tout
	rec = func(xs, ys []T, env *Env) Tout {
		switch {
		case len(xs) == 0:
			return Return(env)
		case len(ys) == 0:
			return nil
		default:
			return m(xs[0], ys[0], env).Then(func(e *Env) Tout {
				return rec(xs[1:], ys[1:], e)
			})
		}
	}
	return func(xs, ys []T, env *Env) Tout { return rec(xs, ys, env) }
}

// MListWithDots is the ellipsis algorithm. Pattern elements recognized by
// isDots are gaps that may consume any run of target elements, including
// none; the algorithm enumerates every admissible split of the remaining
// target via InitsAndRest and recursively matches the non-gap elements
// against the chosen rest. Every split that leads to a full match
// contributes one alternative; splits that fail elsewhere contribute
// nothing.
//
// When keepDots is set, the gap element itself is additionally matched (via
// m) against each target element it consumes, in order, so that a named gap
// can accumulate a multi-capture and extend the consumed span; when unset,
// consumed elements are skipped silently.
func MListWithDots[T any](m Matcher[T], isDots func(T) bool, keepDots bool) Matcher[[]T] {
	var rec func(xs, ys []T, env *Env) Tout
	rec = func(xs, ys []T, env *Env) Tout {
		switch {
		case len(xs) == 0 && len(ys) == 0:
			return Return(env)
		case len(xs) > 0 && isDots(xs[0]):
			dots := xs[0]
			var out Tout
			for _, split := range InitsAndRest(ys) {
				alt := Return(env)
				if keepDots {
					for _, consumed := range split.Prefix {
						consumed := consumed
						alt = alt.Then(func(e *Env) Tout {
							return m(dots, consumed, e)
						})
					}
				}
				rest := split.Rest
				out = append(out, alt.Then(func(e *Env) Tout {
					return rec(xs[1:], rest, e)
				})...)
			}
			return out
		case len(xs) == 0 || len(ys) == 0:
			return nil
		default:
			return m(xs[0], ys[0], env).Then(func(e *Env) Tout {
				return rec(xs[1:], ys[1:], e)
			})
		}
	}
	return func(xs, ys []T, env *Env) Tout { return rec(xs, ys, env) }
}

// MListInAnyOrder matches every pattern element against some remaining
// target element, in any order, removing each matched element from the pool.
// With lessIsOk, target elements left over once the pattern is exhausted are
// tolerated (subset semantics); otherwise every target element must be
// consumed.
func MListInAnyOrder[T any](lessIsOk bool, m Matcher[T]) Matcher[[]T] {
	var rec func(xs, pool []T, env *Env) Tout
	rec = func(xs, pool []T, env *Env) Tout {
		if len(xs) == 0 {
			if len(pool) == 0 || lessIsOk {
				return Return(env)
			}
			return nil
		}
		var out Tout
		for _, cand := range AllElemAndRest(pool) {
			rest := cand.Rest
			out = append(out, m(xs[0], cand.Elem, env).Then(func(e *Env) Tout {
				return rec(xs[1:], rest, e)
			})...)
		}
		return out
	}
	return func(xs, ys []T, env *Env) Tout { return rec(xs, ys, env) }
}
