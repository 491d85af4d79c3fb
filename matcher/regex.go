package matcher

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/treegrep/treegrep/pattern"
)

// BadPatternError reports a regex string literal whose embedded regular
// expression does not compile. This is a broken pattern, not a non-match,
// and must reach the caller.
type BadPatternError struct {
	Literal string
	Err     error
}

func (e *BadPatternError) Error() string {
	return fmt.Sprintf("malformed regex literal %q: %v", e.Literal, e.Err)
}

func (e *BadPatternError) Unwrap() error { return e.Err }

// Compiled regexes are cached per literal string: a given literal always
// compiles to the same predicate, so the cache is process-wide and guarded
// for concurrent sessions.
var (
	regexpMu    sync.Mutex
	regexpCache = map[string]*regexp.Regexp{}
)

// CompileRegexpString compiles a regex string literal such as "=~/foo.*/i"
// into a reusable predicate, anchored at the start of the subject. The
// supported flags are i (case-insensitive) and m (multi-line). Compilation
// happens once per distinct literal; later calls reuse the cached form.
// Frontends should call this at pattern construction time so a malformed
// literal fails before any matching starts.
func CompileRegexpString(lit string) (*regexp.Regexp, error) {
	regexpMu.Lock()
	defer regexpMu.Unlock()
	if re, ok := regexpCache[lit]; ok {
		return re, nil
	}
	body, flags, ok := pattern.SplitRegexpString(lit)
	if !ok {
		return nil, &BadPatternError{Literal: lit, Err: fmt.Errorf("not a regex literal")}
	}
	expr := `\A(?:` + body + `)`
	if flags != "" {
		expr = "(?" + flags + ")" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &BadPatternError{Literal: lit, Err: err}
	}
	regexpCache[lit] = re
	return re, nil
}

// mustCompileRegexpString is the match-time entry: the literal's form was
// already recognized by the classifier, so a compile failure here is a
// broken pattern and panics with *BadPatternError for the session boundary
// to recover.
func mustCompileRegexpString(lit string) *regexp.Regexp {
	re, err := CompileRegexpString(lit)
	if err != nil {
		panic(err)
	}
	return re
}
