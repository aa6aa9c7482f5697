package template

import "testing"

// FuzzParse checks that arbitrary input never panics the lexer or parser,
// and that anything accepted formats to source that reparses to the same
// canonical form.
func FuzzParse(f *testing.F) {
	seeds := []string{
		``,
		`"hello"`,
		`42`,
		`a ++ b`,
		`label("id", commit_id.shortest(8))`,
		`if(conflict, "conflict", description.first_line())`,
		`separate(" ", branches, tags) # trailing comment`,
		`("grouped") ++ "\n"`,
		`"unterminated`,
		`x.`,
		`++`,
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, source string) {
		expr, err := Parse(source)
		if err != nil {
			return
		}

		canonical := Format(expr)

		again, err := Parse(canonical)
		if err != nil {
			t.Fatalf("canonical form %q does not reparse: %v", canonical, err)
		}

		if got := Format(again); got != canonical {
			t.Errorf("format not stable: %q then %q", canonical, got)
		}
	})
}
