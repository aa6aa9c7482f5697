package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/revfmt/template"
)

const configYAML = `
templates:
  log: builtin_log_oneline
  mine: 'label("description", description.first_line())'
aliases:
  'format_short_id(id)': id.shortest(6)
  'greeting': '"hi"'
colors:
  change_id: magenta
  'working_copy change_id': magenta bold
`

func TestRead(t *testing.T) {
	f, err := Read(strings.NewReader(configYAML))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if f.Templates["log"] != "builtin_log_oneline" {
		t.Errorf("unexpected log template %q", f.Templates["log"])
	}

	if f.Colors["working_copy change_id"] != "magenta bold" {
		t.Errorf("unexpected color spec %q", f.Colors["working_copy change_id"])
	}
}

func TestRead_Invalid(t *testing.T) {
	_, err := Read(strings.NewReader("templates: [not, a, map]"))
	if !errors.Is(err, ErrDecodeConfig) {
		t.Errorf("expected ErrDecodeConfig, got %v", err)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	cfg, err := f.Engine()
	if err != nil {
		t.Fatalf("engine error: %v", err)
	}

	if _, ok := cfg.Templates["log"]; !ok {
		t.Error("expected built-in log template")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if len(f.Aliases) != 2 {
		t.Errorf("expected 2 aliases, got %d", len(f.Aliases))
	}
}

func TestEngine_MergesOverDefaults(t *testing.T) {
	f, err := Read(strings.NewReader(configYAML))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	cfg, err := f.Engine()
	if err != nil {
		t.Fatalf("engine error: %v", err)
	}

	// File entries win on collision; untouched defaults survive.
	if cfg.Templates["log"] != "builtin_log_oneline" {
		t.Errorf("expected file template to win, got %q", cfg.Templates["log"])
	}

	if _, ok := cfg.Templates["op_log"]; !ok {
		t.Error("expected default op_log template to survive")
	}

	if _, ok := cfg.Templates["mine"]; !ok {
		t.Error("expected new template to be added")
	}

	alias, ok := cfg.Aliases.Get("format_short_id")
	if !ok {
		t.Fatal("expected format_short_id alias")
	}

	if alias.Source != "id.shortest(6)" {
		t.Errorf("expected file alias to win, got %q", alias.Source)
	}

	if _, ok := cfg.Aliases.Get("greeting"); !ok {
		t.Error("expected new alias to be added")
	}
}

func TestEngine_BadAliasDeclaration(t *testing.T) {
	f := &File{Aliases: map[string]string{"bad decl(": `"x"`}}

	_, err := f.Engine()
	if !errors.Is(err, template.ErrAliasDecl) {
		t.Errorf("expected ErrAliasDecl, got %v", err)
	}
}
