package matcher

import "github.com/treegrep/treegrep/metavar"

// GetCapture looks up the value bound to a metavariable name.
func (e *Env) GetCapture(name string) (metavar.Value, bool) {
	v, ok := e.bindings[name]
	return v, ok
}

// AddCapture unconditionally binds name to v, returning the extended
// environment. Use CheckAndAddBinding unless consistency has already been
// verified.
func (e *Env) AddCapture(name string, v metavar.Value) *Env {
	b := e.copyBindings()
	b[name] = v
	return e.withBindings(b)
}

// CheckAndAddBinding is the consistency gate for metavariable bindings. If
// name is unbound it returns the environment extended with the new binding.
// If name is already bound to a structurally equal value it returns the
// environment unchanged. Otherwise ok is false and the caller must fail the
// current branch, and only that branch, never the whole match.
func (e *Env) CheckAndAddBinding(name string, v metavar.Value) (*Env, bool) {
	if prev, bound := e.bindings[name]; bound {
		if metavar.Equal(prev, v) {
			return e, true
		}
		return nil, false
	}
	return e.AddCapture(name, v), true
}
