package vcs

import (
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/revfmt/template"
)

var (
	ErrReadRecords   = template.NewError("read revision records")
	ErrDecodeRecords = template.NewError("decode revision records")
)

// Records is an on-disk revision set: a YAML document with optional
// commits and operations sequences.
type Records struct {
	Commits    []*Commit    `yaml:"commits"`
	Operations []*Operation `yaml:"operations"`
}

// ReadRecords decodes a revision set from r.
func ReadRecords(r io.Reader) (*Records, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadRecords.Wrap(err)
	}

	var recs Records

	err = yaml.Unmarshal(buf, &recs)
	if err != nil {
		return nil, ErrDecodeRecords.Wrap(err)
	}

	return &recs, nil
}

// LoadRecords reads a revision set from the file at path, or from stdin
// when path is "-".
func LoadRecords(path string) (*Records, error) {
	if path == "-" {
		return ReadRecords(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrReadRecords.Wrap(err).
			With(slog.String("path", path))
	}
	defer file.Close()

	recs, err := ReadRecords(file)
	if err != nil {
		return nil, template.WrapError(err).
			With(slog.String("path", path))
	}

	return recs, nil
}
