// Package style renders labeled text fragments to the terminal.
//
// Each fragment produced by the template engine carries the stack of labels
// that was active when it was emitted, outermost first. A [Palette] maps
// label paths to [lipgloss.Style] values, and [Renderer] applies the most
// specific matching style to each fragment's text.
package style

import (
	"strings"

	"github.com/ardnew/mung"
	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/revfmt/template"
)

// Palette maps label paths to terminal styles.
//
// A key is either a single label ("change_id") or a space-separated path
// ("working_copy change_id"). Longer paths are more specific and win over
// single labels when both match a fragment.
type Palette map[string]lipgloss.Style

// DefaultPalette returns the built-in colors for the stock templates.
func DefaultPalette() Palette {
	return Palette{
		"commit_id":    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"change_id":    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		"author":       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"committer":    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"timestamp":    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"time":         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"branches":     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		"tags":         lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		"description":  lipgloss.NewStyle(),
		"conflict":     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"divergent":    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"hidden":       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		"empty":        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"working_copy": lipgloss.NewStyle().Bold(true),
		"operation":    lipgloss.NewStyle(),
		"id":           lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"user":         lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"working_copy change_id": lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")).Bold(true),
		"working_copy commit_id": lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).Bold(true),
	}
}

// Override applies user color specifications on top of the palette.
// Each value is a space-separated list of color names or modifiers,
// e.g. "magenta bold". Unknown words are ignored.
func (p Palette) Override(colors map[string]string) Palette {
	for path, spec := range colors {
		p[path] = parseSpec(spec)
	}

	return p
}

// ansi maps color names to standard terminal palette indices.
var ansi = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright-black":   "8",
	"bright-red":     "9",
	"bright-green":   "10",
	"bright-yellow":  "11",
	"bright-blue":    "12",
	"bright-magenta": "13",
	"bright-cyan":    "14",
	"bright-white":   "15",
}

func parseSpec(spec string) lipgloss.Style {
	style := lipgloss.NewStyle()

	for _, word := range strings.Fields(spec) {
		switch word {
		case "bold":
			style = style.Bold(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		default:
			if code, ok := ansi[word]; ok {
				style = style.Foreground(lipgloss.Color(code))
			}
		}
	}

	return style
}

// Renderer applies a palette to fragments.
type Renderer struct {
	palette Palette
}

// NewRenderer creates a renderer over the given palette.
// A nil palette renders all fragments unstyled.
func NewRenderer(palette Palette) *Renderer {
	return &Renderer{palette: palette}
}

// Render concatenates the fragments, styling each one by its labels.
func (r *Renderer) Render(frags []template.Fragment) string {
	var sb strings.Builder

	for _, f := range frags {
		style, ok := r.lookup(f.Labels)
		if !ok {
			sb.WriteString(f.Text)

			continue
		}

		sb.WriteString(style.Render(f.Text))
	}

	return sb.String()
}

// lookup finds the most specific style for a label stack. It tries every
// suffix of the path from longest to shortest, so "working_copy change_id"
// is preferred over "change_id" when both are present.
func (r *Renderer) lookup(labels []string) (lipgloss.Style, bool) {
	// Fragment labels accumulate innermost first; palette paths read
	// outermost first.
	path := make([]string, len(labels))

	for i, label := range labels {
		path[len(labels)-1-i] = label
	}

	for i := range path {
		if style, ok := r.palette[labelPath(path[i:])]; ok {
			return style, true
		}
	}

	// Fall back to single labels, innermost outward.
	for i := len(path) - 1; i >= 0; i-- {
		if style, ok := r.palette[path[i]]; ok {
			return style, true
		}
	}

	return lipgloss.Style{}, false
}

// labelPath joins a label stack into a palette key.
func labelPath(labels []string) string {
	return mung.Make(
		mung.WithSubjectItems(labels...),
		mung.WithDelim(" "),
	).String()
}

// Plain concatenates fragment text without any styling.
func Plain(frags []template.Fragment) string {
	return template.Text(frags)
}
