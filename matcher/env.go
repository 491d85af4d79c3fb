// Package matcher implements the generic matching engine: the environment
// model, the combinators realizing backtracking search as functions from an
// environment to a sequence of alternative environments, and the primitive,
// composite, and list matchers every per-node-shape matcher is built from.
//
// A matcher takes a pattern fragment, a target fragment and an input
// environment, and returns a disjunctive result: the (possibly empty) list
// of alternative environments under which the two fragments match. The empty
// result means "no match" and is not an error.
package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/treegrep/treegrep/ast"
	"github.com/treegrep/treegrep/metavar"
)

// Env is the state of one in-progress match attempt: metavariable bindings,
// the span of statements consumed so far, an optional session-scoped cache
// handle, and the read-only match options. Envs are immutable from the
// caller's perspective: every update returns a new Env, so backtracking
// branches never observe each other's state. The cache handle is the one
// shared mutable exception and is scoped to a single top-level session.
type Env struct {
	bindings map[string]metavar.Value
	span     Span
	cache    *Cache
	opts     Options
}

// Tout is the disjunctive result of a match attempt: an ordered sequence of
// alternative environments. Empty (or nil) means the match failed. Each
// alternative owns its own state; extending one never mutates another.
type Tout []*Env

// NewEnv constructs a fresh environment with no bindings and an empty span.
// cache may be nil to disable caching for the session.
func NewEnv(cache *Cache, opts Options) *Env {
	return &Env{
		bindings: map[string]metavar.Value{},
		cache:    cache,
		opts:     opts,
	}
}

// Options returns the read-only configuration attached to the environment.
func (e *Env) Options() Options { return e.opts }

// Bindings returns a copy of the current bindings.
func (e *Env) Bindings() map[string]metavar.Value {
	out := make(map[string]metavar.Value, len(e.bindings))
	for k, v := range e.bindings {
		out[k] = v
	}
	return out
}

// clone returns a shallow copy of e sharing the bindings map. Callers must
// replace any field they intend to change.
func (e *Env) clone() *Env {
	dup := *e
	return &dup
}

// withBindings returns a copy of e carrying the given bindings map.
func (e *Env) withBindings(b map[string]metavar.Value) *Env {
	dup := e.clone()
	dup.bindings = b
	return dup
}

// copyBindings duplicates the bindings map for a copy-on-write update.
func (e *Env) copyBindings() map[string]metavar.Value {
	out := make(map[string]metavar.Value, len(e.bindings)+1)
	for k, v := range e.bindings {
		out[k] = v
	}
	return out
}

// ExtendSpan records one more consumed statement. The span only ever grows
// along a successful sequential match.
func (e *Env) ExtendSpan(stmt *ast.Node) *Env {
	dup := e.clone()
	dup.span = e.span.Extend(stmt)
	return dup
}

// ConsumedSpan returns the statements consumed so far.
func (e *Env) ConsumedSpan() Span { return e.span }

// fingerprint renders the binding map and consumed span deterministically,
// for use as the environment fragment of a cache key.
func (e *Env) fingerprint() string {
	names := make([]string, 0, len(e.bindings))
	for name := range e.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%s=%s;", name, e.bindings[name])
	}
	fmt.Fprintf(&sb, "|span:%d", e.span.Len())
	for _, s := range e.span.Stmts() {
		fmt.Fprintf(&sb, ";%s", s)
	}
	return sb.String()
}

func (e *Env) String() string {
	names := make([]string, 0, len(e.bindings))
	for name := range e.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%s", name, e.bindings[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
