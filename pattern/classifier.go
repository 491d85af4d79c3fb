// Package pattern classifies raw identifier and string tokens appearing in a
// parsed pattern: a token is either literal code or one of the special forms
// (metavariable, multi-capture metavariable, ellipsis, regex literal, or a
// language-specific reserved marker). Classification happens once, when a
// pattern is constructed, never during matching. All predicates here are
// pure.
package pattern

import (
	"regexp"
	"strings"

	"github.com/treegrep/treegrep/lang"
)

// Reserved pattern markers.
const (
	// Ellipsis means "skip zero or more elements here".
	Ellipsis = "..."

	// MultiCapturePrefix starts a metavariable that binds a sequence
	// rather than a single fragment, e.g. $...BODY.
	MultiCapturePrefix = "$..."

	// RegexpPrefix starts a regex string literal, e.g. =~/foo.*/i.
	RegexpPrefix = "=~/"

	// MultiVarDefMarker is the synthetic identifier some frontends insert
	// for multi-variable declarations collapsed into one statement.
	MultiVarDefMarker = "!multivardef"

	// DefaultExportMarker is the synthetic identifier JS/TS frontends use
	// for an anonymous default export.
	DefaultExportMarker = "!default"

	// BuiltinPrefix is the naming convention PHP frontends use for
	// builtin calls inserted by the parser.
	BuiltinPrefix = "__builtin__"
)

var (
	metavarRegexp      = regexp.MustCompile(`^\$[A-Z_][A-Z_0-9]*$`)
	multiCaptureRegexp = regexp.MustCompile(`^\$\.\.\.[A-Z_][A-Z_0-9]*$`)
	regexpLiteralForm  = regexp.MustCompile(`^=~/(.*)/([im]*)$`)
)

// IsEllipsis reports whether s is exactly the ellipsis marker.
func IsEllipsis(s string) bool { return s == Ellipsis }

// IsMetavarName reports whether s names a single-capture metavariable.
func IsMetavarName(s string) bool { return metavarRegexp.MatchString(s) }

// IsMultiCaptureName reports whether s names a multi-capture metavariable.
func IsMultiCaptureName(s string) bool { return multiCaptureRegexp.MatchString(s) }

// IsRegexpString reports whether s has the delimited regex-literal form.
func IsRegexpString(s string) bool { return regexpLiteralForm.MatchString(s) }

// SplitRegexpString decomposes a regex literal into its embedded pattern and
// flags. ok is false when s is not a regex literal.
func SplitRegexpString(s string) (pat, flags string, ok bool) {
	m := regexpLiteralForm.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsSpecialStringLiteral reports whether a string literal appearing in a
// pattern denotes a special form rather than a literal value.
func IsSpecialStringLiteral(s string) bool {
	return IsEllipsis(s) || IsRegexpString(s)
}

// identPredicate classifies one reserved identifier form.
type identPredicate func(s string) bool

// Predicates shared by every language. The exact-name metavariable check
// runs before the longer multi-capture prefix form; the two forms cannot
// overlap, the order is kept for stability.
var commonIdentPredicates = []identPredicate{
	IsMetavarName,
	IsMultiCaptureName,
	func(s string) bool { return s == MultiVarDefMarker },
}

// Language-specific reserved identifier forms, one entry per supported
// language. Assembled once from the closed lang enumeration; each predicate
// is independently testable.
var langIdentPredicates = map[lang.Lang][]identPredicate{
	lang.JavaScript: jsIdentPredicates,
	lang.TypeScript: jsIdentPredicates,
	lang.Unknown:    jsIdentPredicates,
	lang.Java: {
		// The Java frontend inserts an explicit `this` receiver.
		func(s string) bool { return s == "this" },
	},
	lang.PHP: {
		func(s string) bool { return strings.HasPrefix(s, BuiltinPrefix) },
	},
}

// JS permits regex literals in field-name position, and uses a synthetic
// identifier for anonymous default exports. The unspecified language gets
// the same permissive treatment.
var jsIdentPredicates = []identPredicate{
	IsRegexpString,
	func(s string) bool { return s == DefaultExportMarker },
}

// IsSpecialIdentifier reports whether an identifier appearing in a pattern
// denotes a special form for the given language.
func IsSpecialIdentifier(s string, l lang.Lang) bool {
	for _, p := range commonIdentPredicates {
		if p(s) {
			return true
		}
	}
	for _, p := range langIdentPredicates[l] {
		if p(s) {
			return true
		}
	}
	return false
}
