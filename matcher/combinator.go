package matcher

// MatchFn is an environment transformer: the residual computation of a
// matcher once its pattern and target arguments are fixed. Backtracking is
// realized purely through the returned alternatives; there is no deferred
// or resumable execution anywhere in the engine.
type MatchFn func(*Env) Tout

// Matcher matches a pattern fragment against a target fragment of the same
// shape under an input environment.
type Matcher[T any] func(pattern, target T, env *Env) Tout

// Return succeeds with the input environment unchanged. It is the identity
// for sequencing.
func Return(env *Env) Tout { return Tout{env} }

// Fail produces no alternatives.
func Fail(*Env) Tout { return nil }

// Then is monadic bind over the list of alternatives: k runs on each
// environment t produced, and the alternative sets are concatenated in
// order. An empty receiver short-circuits to an empty result.
func (t Tout) Then(k MatchFn) Tout {
	var out Tout
	for _, env := range t {
		out = append(out, k(env)...)
	}
	return out
}

// Or runs both matchers against the same input environment and concatenates
// their alternatives, left branch first. No deduplication: the result is the
// union of possible worlds, not a single best choice. The result is a fresh
// slice: a branch's Tout may be owned elsewhere (the cache, a caller) and
// must never be appended onto in place.
func Or(a, b MatchFn) MatchFn {
	return func(env *Env) Tout {
		left := a(env)
		right := b(env)
		out := make(Tout, 0, len(left)+len(right))
		out = append(out, left...)
		return append(out, right...)
	}
}

// IfFail runs m; when it produces no alternatives, fallback is constructed
// and run instead. Unlike Or, the right side is only built after the left
// side's failure has been observed, so the fallback can depend on that fact.
func IfFail(env *Env, m MatchFn, fallback func() MatchFn) Tout {
	if out := m(env); len(out) > 0 {
		return out
	}
	return fallback()(env)
}

// IfConfig branches on a boolean read from the environment's read-only
// options rather than on the matching state.
func IfConfig(pred func(Options) bool, then_, else_ MatchFn) MatchFn {
	return func(env *Env) Tout {
		if pred(env.opts) {
			return then_(env)
		}
		return else_(env)
	}
}
