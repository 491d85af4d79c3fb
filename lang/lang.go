package lang

import "fmt"

// Lang identifies the source language a pattern was written for.
// The zero value Unknown means "no language specified" and is treated
// permissively by language-conditional checks.
type Lang int

const (
	Unknown Lang = iota
	Go
	Python
	JavaScript
	TypeScript
	Java
	PHP
	Ruby
	C
)

var names = map[Lang]string{
	Unknown:    "unknown",
	Go:         "go",
	Python:     "python",
	JavaScript: "javascript",
	TypeScript: "typescript",
	Java:       "java",
	PHP:        "php",
	Ruby:       "ruby",
	C:          "c",
}

func (l Lang) String() string {
	if s, ok := names[l]; ok {
		return s
	}
	return "unknown"
}

// FromString resolves a language name (case-sensitive, lowercase) to a Lang.
func FromString(s string) (Lang, error) {
	switch s {
	case "go", "gno":
		return Go, nil
	case "python", "py":
		return Python, nil
	case "javascript", "js":
		return JavaScript, nil
	case "typescript", "ts":
		return TypeScript, nil
	case "java":
		return Java, nil
	case "php":
		return PHP, nil
	case "ruby", "rb":
		return Ruby, nil
	case "c":
		return C, nil
	case "", "unknown":
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("unsupported language: %q", s)
}

// IsJS reports whether l should get JavaScript-specific pattern treatment.
// An unspecified language defaults permissive so that generic patterns keep
// working without a language tag.
func IsJS(l Lang) bool {
	return l == JavaScript || l == TypeScript || l == Unknown
}
