package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads flag defaults from the
// optional "flags" map of a revfmt YAML configuration file:
//
//	flags:
//	  log_level: debug
//	  log_format: json
//	  log_pretty: true
//
// Flag names with hyphens (e.g., "log-level") may use underscores in the
// config file (e.g., "log_level"). Command-line flags override config file
// values. The templates, aliases, and colors sections of the same file are
// consumed separately by the config package.
func resolve(r io.Reader) (kong.Resolver, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		// Unreadable config - let Kong use defaults.
		return flagValues{}, nil
	}

	var doc struct {
		Flags map[string]any `yaml:"flags"`
	}

	err = yaml.Unmarshal(buf, &doc)
	if err != nil {
		// Decode error - let Kong use defaults.
		return flagValues{}, nil
	}

	values := make(flagValues, len(doc.Flags))

	for key, val := range doc.Flags {
		// Kong requires numbers as strings for parsing.
		switch num := val.(type) {
		case int64:
			values[key] = strconv.FormatInt(num, 10)
		case uint64:
			values[key] = strconv.FormatUint(num, 10)
		case float64:
			values[key] = strconv.FormatFloat(num, 'f', -1, 64)
		default:
			values[key] = val
		}
	}

	return values, nil
}

// flagValues implements [kong.Resolver] for YAML flag maps.
type flagValues map[string]any

// Validate implements [kong.Resolver].
func (v flagValues) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (v flagValues) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	if value, ok := v[flag.Name]; ok {
		return value, nil
	}

	if value, ok := v[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults.
	return nil, nil
}
