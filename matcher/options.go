package matcher

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options is the read-only configuration attached to every environment.
// The engine itself only ever reads these through IfConfig predicates or at
// the documented dispatch points; toggles it does not interpret are carried
// opaquely for frontends to query.
type Options struct {
	// UseStringPrefixForDefault makes the string dispatcher fall back to
	// prefix matching instead of exact equality for non-special strings.
	UseStringPrefixForDefault bool `yaml:"use_m_string_prefix_for_default"`

	// Frontend toggles, not interpreted by the engine.
	GoDeeperExpr        bool `yaml:"go_deeper_expr"`
	GoDeeperStmt        bool `yaml:"go_deeper_stmt"`
	ConstantPropagation bool `yaml:"constant_propagation"`
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		GoDeeperExpr:        true,
		GoDeeperStmt:        true,
		ConstantPropagation: true,
	}
}

// ParseOptions decodes options from YAML, starting from the defaults.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	return opts, nil
}

// LoadOptions reads and decodes an options file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	return ParseOptions(data)
}
