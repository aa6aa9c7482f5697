package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/revfmt/template"
)

func TestLookup_PathBeatsSingleLabel(t *testing.T) {
	r := NewRenderer(Palette{
		"change_id":              lipgloss.NewStyle().Italic(true),
		"working_copy change_id": lipgloss.NewStyle().Bold(true),
	})

	// The engine stacks labels innermost first.
	style, ok := r.lookup([]string{"change_id", "working_copy"})
	if !ok {
		t.Fatal("expected a style match")
	}

	if !style.GetBold() {
		t.Error("expected the path entry to win over the single label")
	}

	style, ok = r.lookup([]string{"change_id"})
	if !ok {
		t.Fatal("expected a style match")
	}

	if !style.GetItalic() || style.GetBold() {
		t.Error("expected the single-label entry without the path context")
	}
}

func TestLookup_FallsBackToOuterLabel(t *testing.T) {
	r := NewRenderer(Palette{
		"working_copy": lipgloss.NewStyle().Bold(true),
	})

	style, ok := r.lookup([]string{"description", "working_copy"})
	if !ok {
		t.Fatal("expected a style match")
	}

	if !style.GetBold() {
		t.Error("expected the outer label's style")
	}
}

func TestLookup_InnermostWinsAmongSingles(t *testing.T) {
	r := NewRenderer(Palette{
		"author":       lipgloss.NewStyle().Italic(true),
		"working_copy": lipgloss.NewStyle().Bold(true),
	})

	style, ok := r.lookup([]string{"author", "working_copy"})
	if !ok {
		t.Fatal("expected a style match")
	}

	if !style.GetItalic() {
		t.Error("expected the innermost label's style")
	}
}

func TestLookup_NoMatch(t *testing.T) {
	r := NewRenderer(Palette{})

	if _, ok := r.lookup([]string{"unknown"}); ok {
		t.Error("expected no match")
	}
}

func TestOverride(t *testing.T) {
	p := DefaultPalette().Override(map[string]string{
		"change_id": "magenta bold",
		"custom":    "bright-blue underline sparkly",
	})

	style := p["change_id"]

	if !style.GetBold() {
		t.Error("expected bold modifier")
	}

	if got := style.GetForeground(); got != lipgloss.Color("5") {
		t.Errorf("expected magenta foreground, got %v", got)
	}

	custom := p["custom"]

	if !custom.GetUnderline() {
		t.Error("expected underline modifier")
	}

	// Unknown words contribute nothing.
	if got := custom.GetForeground(); got != lipgloss.Color("12") {
		t.Errorf("expected bright-blue foreground, got %v", got)
	}
}

func TestRender_NilPaletteIsPlain(t *testing.T) {
	frags := []template.Fragment{
		{Text: "abc", Labels: []string{"change_id"}},
		{Text: " "},
		{Text: "def", Labels: []string{"description"}},
	}

	if got := NewRenderer(nil).Render(frags); got != "abc def" {
		t.Errorf("expected plain concatenation, got %q", got)
	}

	if got := Plain(frags); got != "abc def" {
		t.Errorf("expected plain concatenation, got %q", got)
	}
}
