// Package template implements the revision log template language: a small
// expression language for rendering commit and operation records as labeled
// text fragments.
//
// # Grammar
//
// Informal EBNF:
//
//	Template → Expr EOF
//	Expr     → Term ('++' Term)*
//	Term     → Primary ('.' Identifier Args?)*
//	Primary  → String | Integer | Identifier Args? | '(' Expr ')'
//	Args     → '(' (Expr (',' Expr)*)? ')'
//
// String literals use double quotes with backslash escapes. '#' starts a
// comment running to end of line. '++' concatenates; '.' invokes a method
// on the value to its left.
//
// # Example
//
//	label(if(current_working_copy, "working_copy"),
//	  separate(" ",
//	    format_short_change_id(change_id),
//	    author.email(),
//	    committer.timestamp().ago(),
//	    branches,
//	    coalesce(description.first_line(), description_placeholder)) ++ "\n")
//
// # Pipeline
//
// Rendering is staged: Tokenize and [Parse] build a syntax tree, [Resolve]
// binds every name against a context kind's capability tables (rejecting
// unknown names, arity errors, and type errors before any record is
// touched), and evaluation walks the bound tree against one record at a
// time. A [Session] caches bound trees by source hash, so each distinct
// template binds once no matter how many records render through it.
//
// Name resolution is layered: global functions, then alias parameters, then
// configured aliases, then the context kind's properties. Aliases expand by
// substitution with an explicit expansion stack, so recursive aliases are a
// static error rather than a hang.
//
// # Laziness
//
// Global functions receive their arguments unevaluated. if evaluates only
// the selected branch, and coalesce stops at the first non-empty candidate.
// Methods are strict: receiver and arguments evaluate before the method
// runs.
//
// # Output
//
// Evaluation produces a flat sequence of [Fragment] values, each carrying
// the label stack active when it was emitted. The engine attaches no
// styling; the style package maps labels to colors for terminal output.
package template
