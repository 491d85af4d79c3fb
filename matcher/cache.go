package matcher

import "github.com/treegrep/treegrep/ast"

// CacheKey identifies one matcher invocation: the operation name, the
// pattern and target node identities, and the relevant fragment of the input
// environment (bindings plus consumed span).
type CacheKey struct {
	Op          string
	Pattern     *ast.Node
	Target      *ast.Node
	Fingerprint string
}

// Cache memoizes match results within a single top-level match session. It
// is purely an optimization: removing it must not change any outcome. It is
// not synchronized: each session must own a private instance, never one
// shared across concurrently running sessions.
type Cache struct {
	entries map[CacheKey]Tout
	hits    int
	misses  int
}

// NewCache returns an empty session cache.
func NewCache() *Cache {
	return &Cache{entries: map[CacheKey]Tout{}}
}

// Get returns the memoized result for key, if any. The returned slice is
// clipped to its length so appending to it cannot reach into the stored
// entry's backing array.
func (c *Cache) Get(key CacheKey) (Tout, bool) {
	out, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return out[:len(out):len(out)], ok
}

// Put memoizes a result. The slice is copied so later caller-side appends
// cannot corrupt the entry.
func (c *Cache) Put(key CacheKey, out Tout) {
	c.entries[key] = append(Tout(nil), out...)
}

// Stats reports hit and miss counts, for diagnostics.
func (c *Cache) Stats() (hits, misses int) { return c.hits, c.misses }

// Memo runs m(env) through the environment's cache, if one is attached.
// A cache miss degrades to full recomputation with no behavior change.
func Memo(env *Env, op string, pat, tgt *ast.Node, m MatchFn) Tout {
	if env.cache == nil {
		return m(env)
	}
	key := CacheKey{Op: op, Pattern: pat, Target: tgt, Fingerprint: env.fingerprint()}
	if out, ok := env.cache.Get(key); ok {
		return out
	}
	out := m(env)
	env.cache.Put(key, out)
	return out
}
