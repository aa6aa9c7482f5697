// Package config loads revfmt configuration files.
//
// A configuration file is a YAML document with up to three top-level maps:
//
//	templates:
//	  log: 'builtin_log_oneline'
//	aliases:
//	  'format_short_id(id)': 'id.shortest(8)'
//	colors:
//	  change_id: magenta
//	  'working_copy change_id': 'magenta bold'
//
// Templates and aliases are merged over the built-in defaults, with the file
// winning on name collisions. The colors map is consumed by the style
// package.
package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/revfmt/template"
)

// File is the on-disk configuration document.
type File struct {
	Templates map[string]string `yaml:"templates"`
	Aliases   map[string]string `yaml:"aliases"`
	Colors    map[string]string `yaml:"colors"`
}

var (
	ErrReadConfig   = template.NewError("read configuration file")
	ErrDecodeConfig = template.NewError("decode configuration file")
)

// Read decodes a configuration document from r.
func Read(r io.Reader) (*File, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadConfig.Wrap(err)
	}

	var f File

	err = yaml.Unmarshal(buf, &f)
	if err != nil {
		return nil, ErrDecodeConfig.Wrap(err)
	}

	return &f, nil
}

// Load reads the configuration file at path. A missing file is not an error:
// it yields an empty document so the built-in defaults apply unchanged.
func Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}

		return nil, ErrReadConfig.Wrap(err).
			With(slog.String("path", path))
	}
	defer file.Close()

	f, err := Read(file)
	if err != nil {
		return nil, template.WrapError(err).
			With(slog.String("path", path))
	}

	return f, nil
}

// Engine builds an engine configuration from the document, merging its
// templates and aliases over the built-in defaults.
func (f *File) Engine() (*template.Config, error) {
	cfg := template.NewConfig()

	for name, source := range f.Templates {
		cfg.Templates[name] = source
	}

	for decl, source := range f.Aliases {
		err := cfg.Aliases.Define(decl, source)
		if err != nil {
			return nil, template.WrapError(err).
				With(slog.String("alias", decl))
		}
	}

	return cfg, nil
}
