package repl

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/revfmt/template"
)

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also dismisses the candidate bar when exactly
// one candidate remains and the typed word already equals that candidate.
// autoConfirm should be false for deletions and cursor navigation so that
// the user can freely edit without unexpected completions.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = computeMatches(m)

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	input := m.input.Value()
	if input[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
		m.suggIdx = -1
	}
}

// computeMatches finds the word surrounding the cursor and ranks completion
// candidates against it.
func computeMatches(m *model) (fuzzy.Matches, []string, int, int) {
	input := m.input.Value()
	cursor := m.input.Position()

	start, end := wordBounds(input, cursor)
	if start == end {
		return nil, nil, start, end
	}

	word := input[start:end]
	candidates := candidateNames(m, input, start)

	return fuzzy.Find(word, candidates), candidates, start, end
}

// wordBounds returns the byte offsets of the identifier containing the
// cursor position.
func wordBounds(input string, cursor int) (start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor
	for start > 0 && isWordByte(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && isWordByte(input[end]) {
		end++
	}

	return start, end
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// candidateNames selects the completion namespace for the word starting at
// offset start. After a '.', only method names are offered; otherwise
// properties, functions, aliases, and template names all apply.
func candidateNames(m *model, input string, start int) []string {
	if start > 0 && input[start-1] == '.' {
		return template.MethodNames()
	}

	names := slices.Concat(
		template.PropertyNames(m.kind),
		template.BuiltinNames(),
		m.session.Config().Aliases.Names(),
	)

	slices.Sort(names)

	return slices.Compact(names)
}

const (
	barSeparator = "  "
	barEllipsis  = "…"
)

// renderCandidateBar renders the horizontal completion candidate bar,
// highlighting the selected candidate while tab-cycling.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	tabActive bool,
	width int,
) string {
	var b strings.Builder

	used := 0

	for i, match := range matches {
		cell := match.Str

		need := len(cell)
		if i > 0 {
			need += len(barSeparator)
		}

		if used+need > width-len(barEllipsis) {
			b.WriteString(hintStyle.Render(barEllipsis))

			break
		}

		if i > 0 {
			b.WriteString(barSeparator)
		}

		if tabActive && i == selected {
			b.WriteString(selectedStyle.Render(cell))
		} else {
			b.WriteString(suggestionStyle.Render(cell))
		}

		used += need
	}

	return b.String()
}
