package template

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// testNow is the fixed clock used by every evaluation test.
var testNow = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

// testCommit is an in-memory commit fixture.
type testCommit struct {
	commitId      string
	changeId      string
	author        Signature
	committer     Signature
	description   string
	branches      []string
	tags          []string
	workingCopies []string
	workingCopy   bool
	gitHead       bool
	divergent     bool
	hidden        bool
	conflict      bool
	empty         bool
}

func (c *testCommit) CommitId() string        { return c.commitId }
func (c *testCommit) ChangeId() string        { return c.changeId }
func (c *testCommit) Author() Signature       { return c.author }
func (c *testCommit) Committer() Signature    { return c.committer }
func (c *testCommit) Description() string     { return c.description }
func (c *testCommit) Branches() []string      { return c.branches }
func (c *testCommit) Tags() []string          { return c.tags }
func (c *testCommit) WorkingCopies() []string { return c.workingCopies }
func (c *testCommit) IsWorkingCopy() bool     { return c.workingCopy }
func (c *testCommit) IsGitHead() bool         { return c.gitHead }
func (c *testCommit) IsDivergent() bool       { return c.divergent }
func (c *testCommit) IsHidden() bool          { return c.hidden }
func (c *testCommit) HasConflict() bool       { return c.conflict }
func (c *testCommit) IsEmpty() bool           { return c.empty }

// countingCommit records which lazily-evaluated accessors were forced.
type countingCommit struct {
	testCommit
	descriptionCalls int
	commitIdCalls    int
}

func (c *countingCommit) Description() string {
	c.descriptionCalls++

	return c.testCommit.description
}

func (c *countingCommit) CommitId() string {
	c.commitIdCalls++

	return c.testCommit.commitId
}

// testOperation is an in-memory operation fixture.
type testOperation struct {
	id          string
	user        string
	span        TimeRange
	description string
	tags        []string
	current     bool
}

func (o *testOperation) Id() string          { return o.id }
func (o *testOperation) User() string        { return o.user }
func (o *testOperation) Time() TimeRange     { return o.span }
func (o *testOperation) Description() string { return o.description }
func (o *testOperation) Tags() []string      { return o.tags }
func (o *testOperation) IsCurrent() bool     { return o.current }

// prefixLenResolver reports the same unique-prefix length for every id.
type prefixLenResolver int

func (r prefixLenResolver) ShortestPrefixLen(string) int { return int(r) }

func newTestCommit() *testCommit {
	sig := func(name, email string, age time.Duration) Signature {
		return Signature{Name: name, Email: email, Timestamp: testNow.Add(-age)}
	}

	return &testCommit{
		commitId:    "f0c8a1b2d3e4f5a6",
		changeId:    "kxyzlmnoqprstuvw",
		author:      sig("Alice", "alice@example.com", 3*time.Hour),
		committer:   sig("Alice", "alice@example.com", 2*time.Hour),
		description: "Add template parser\n\nRecursive descent, one token lookahead.\n",
		branches:    []string{"main"},
		workingCopy: true,
	}
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()

	opts = append(
		[]Option{WithClock(func() time.Time { return testNow })},
		opts...,
	)

	return NewSession(NewConfig(), opts...)
}

func renderCommitText(
	t *testing.T, s *Session, source string, c Commit,
) string {
	t.Helper()

	frags, err := s.RenderCommitSource(source, c)
	if err != nil {
		t.Fatalf("render %q: %v", source, err)
	}

	return Text(frags)
}

func TestRender_Literals(t *testing.T) {
	s := newTestSession(t)
	c := newTestCommit()

	tests := []struct {
		source string
		want   string
	}{
		{source: `"a" ++ "b"`, want: "ab"},
		{source: `"n=" ++ 42`, want: "n=42"},
		{source: `"tab\there"`, want: "tab\there"},
		{source: `("a" ++ "b") ++ "c"`, want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := renderCommitText(t, s, tt.source, c); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRender_Properties(t *testing.T) {
	s := newTestSession(t)
	c := newTestCommit()
	c.tags = []string{"v0.1.0", "stable"}

	tests := []struct {
		source string
		want   string
	}{
		{source: "commit_id", want: "f0c8a1b2d3e4f5a6"},
		{source: "author", want: "Alice <alice@example.com>"},
		{source: "current_working_copy", want: "true"},
		{source: "git_head", want: "false"},
		{source: "branches", want: "main"},
		{source: "tags", want: "v0.1.0 stable"},
		{source: "working_copies", want: ""},
		{source: "author.timestamp()", want: "2026-08-30T09:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := renderCommitText(t, s, tt.source, c); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRender_Methods(t *testing.T) {
	s := newTestSession(t)
	c := newTestCommit()

	tests := []struct {
		source string
		want   string
	}{
		{source: "description.first_line()", want: "Add template parser"},
		{source: "author.name()", want: "Alice"},
		{source: "author.email()", want: "alice@example.com"},
		{source: "author.username()", want: "alice"},
		{source: "author.timestamp().ago()", want: "3 hours ago"},
		{source: "commit_id.short()", want: "f0c8a1b2d3e4"},
		{source: "commit_id.shortest(4)", want: "f0c8"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := renderCommitText(t, s, tt.source, c); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRender_ShortestUsesResolver(t *testing.T) {
	c := newTestCommit()

	tests := []struct {
		name     string
		resolver IdResolver
		source   string
		want     string
	}{
		{
			name:     "unique at three",
			resolver: prefixLenResolver(3),
			source:   "commit_id.shortest(12)",
			want:     "f0c",
		},
		{
			name:     "cap below unique length",
			resolver: prefixLenResolver(8),
			source:   "commit_id.shortest(2)",
			want:     "f0",
		},
		{
			name:     "floor of one character",
			resolver: prefixLenResolver(0),
			source:   "commit_id.shortest(12)",
			want:     "f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, WithIdResolver(tt.resolver))

			if got := renderCommitText(t, s, tt.source, c); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRender_IfSkipsUnselectedBranch(t *testing.T) {
	s := newTestSession(t)

	c := &countingCommit{testCommit: *newTestCommit()}
	c.empty = true

	got := renderCommitText(t, s, `if(empty, "(empty)", description)`, c)
	if got != "(empty)" {
		t.Errorf("expected %q, got %q", "(empty)", got)
	}

	if c.descriptionCalls != 0 {
		t.Errorf("unselected branch was evaluated %d times", c.descriptionCalls)
	}
}

func TestRender_IfWithoutElse(t *testing.T) {
	s := newTestSession(t)
	c := newTestCommit()

	if got := renderCommitText(t, s, `if(git_head, "HEAD")`, c); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRender_CoalesceStopsAtFirstNonEmpty(t *testing.T) {
	s := newTestSession(t)

	c := &countingCommit{testCommit: *newTestCommit()}

	got := renderCommitText(
		t, s, `coalesce(description.first_line(), commit_id)`, c,
	)
	if got != "Add template parser" {
		t.Errorf("expected first line, got %q", got)
	}

	if c.commitIdCalls != 0 {
		t.Errorf("later argument was evaluated %d times", c.commitIdCalls)
	}
}

func TestRender_CoalesceFallsThroughEmpty(t *testing.T) {
	s := newTestSession(t)

	c := newTestCommit()
	c.description = ""

	got := renderCommitText(
		t, s, `coalesce(description, description_placeholder)`, c,
	)
	if got != "(no description set)" {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestRender_Separate(t *testing.T) {
	s := newTestSession(t)
	c := newTestCommit()

	tests := []struct {
		source string
		want   string
	}{
		{source: `separate(", ", "a", "b", "c")`, want: "a, b, c"},
		{source: `separate(", ", "a", "", "b")`, want: "a, b"},
		{source: `separate(" ", "", "")`, want: ""},
		{source: `separate("-", if(git_head, "HEAD"), "x")`, want: "x"},
		{source: `separate("-", working_copies, branches)`, want: "main"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := renderCommitText(t, s, tt.source, c); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRender_LabelFragments(t *testing.T) {
	s := newTestSession(t)
	c := newTestCommit()

	tests := []struct {
		name   string
		source string
		want   []Fragment
	}{
		{
			name:   "single label",
			source: `label("id", "x")`,
			want:   []Fragment{{Text: "x", Labels: []string{"id"}}},
		},
		{
			name:   "space separated names",
			source: `label("a b", "x")`,
			want:   []Fragment{{Text: "x", Labels: []string{"a", "b"}}},
		},
		{
			name:   "nested labels accumulate",
			source: `label("outer", label("inner", "x"))`,
			want: []Fragment{
				{Text: "x", Labels: []string{"inner", "outer"}},
			},
		},
		{
			name:   "duplicate label collapses",
			source: `label("id", label("id", "x"))`,
			want:   []Fragment{{Text: "x", Labels: []string{"id"}}},
		},
		{
			name:   "conditional label absent",
			source: `label(if(git_head, "git_head"), "x")`,
			want:   []Fragment{{Text: "x"}},
		},
		{
			name:   "label spans concatenation",
			source: `label("id", "x" ++ "y")`,
			want: []Fragment{
				{Text: "x", Labels: []string{"id"}},
				{Text: "y", Labels: []string{"id"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frags, err := s.RenderCommitSource(tt.source, c)
			if err != nil {
				t.Fatalf("render error: %v", err)
			}

			if diff := cmp.Diff(tt.want, frags); diff != "" {
				t.Errorf("fragment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_Indent(t *testing.T) {
	s := newTestSession(t)
	c := newTestCommit()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "every line prefixed",
			source: `indent("> ", "one\ntwo\n")`,
			want:   "> one\n> two\n",
		},
		{
			name:   "unterminated final line",
			source: `indent("  ", "one\ntwo")`,
			want:   "  one\n  two",
		},
		{
			name:   "empty prefix passes through",
			source: `indent("", "one\ntwo")`,
			want:   "one\ntwo",
		},
		{
			name:   "empty content",
			source: `indent("  ", "")`,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderCommitText(t, s, tt.source, c); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRender_IndentPrefixInheritsLineLabels(t *testing.T) {
	s := newTestSession(t)
	c := newTestCommit()

	frags, err := s.RenderCommitSource(
		`indent("  ", label("description", "a\nb"))`, c,
	)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	want := []Fragment{
		{Text: "  ", Labels: []string{"description"}},
		{Text: "a\n", Labels: []string{"description"}},
		{Text: "  ", Labels: []string{"description"}},
		{Text: "b", Labels: []string{"description"}},
	}

	if diff := cmp.Diff(want, frags); diff != "" {
		t.Errorf("fragment mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_TimeAgo(t *testing.T) {
	s := newTestSession(t)

	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{name: "hours", age: 2 * time.Hour, want: "2 hours ago"},
		{name: "singular", age: 24 * time.Hour, want: "1 day ago"},
		{name: "weeks", age: 20 * 24 * time.Hour, want: "2 weeks ago"},
		{name: "years", age: 800 * 24 * time.Hour, want: "2 years ago"},
		{name: "seconds", age: 12 * time.Second, want: "12 seconds ago"},
		{name: "future", age: -2 * time.Hour, want: "in 2 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCommit()
			c.author.Timestamp = testNow.Add(-tt.age)

			got := renderCommitText(t, s, "author.timestamp().ago()", c)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRender_DefaultLogTemplate(t *testing.T) {
	s := newTestSession(t)
	c := newTestCommit()

	frags, err := s.RenderCommit("log", c)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	want := "kxyzlmnoqprs alice@example.com 2 hours ago main f0c8a1b2d3e4\n" +
		"  Add template parser\n"

	if got := Text(frags); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// The whole entry carries the working-copy label on top of each
	// fragment's own labels.
	if len(frags) == 0 {
		t.Fatal("no fragments rendered")
	}

	first := frags[0]
	if !first.hasLabel("change_id") || !first.hasLabel("working_copy") {
		t.Errorf("expected change_id and working_copy labels, got %v",
			first.Labels)
	}
}

func TestRender_DefaultLogPlaceholder(t *testing.T) {
	s := newTestSession(t)

	c := newTestCommit()
	c.description = ""
	c.workingCopy = false

	frags, err := s.RenderCommit("log", c)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	want := "kxyzlmnoqprs alice@example.com 2 hours ago main f0c8a1b2d3e4\n" +
		"  (no description set)\n"

	if got := Text(frags); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_DefaultOpLogTemplate(t *testing.T) {
	s := newTestSession(t)

	op := &testOperation{
		id:   "abcdef1234567890",
		user: "alice",
		span: TimeRange{
			Start: testNow.Add(-3 * time.Hour),
			End:   testNow.Add(-2 * time.Hour),
		},
		description: "snapshot working copy",
		current:     true,
	}

	frags, err := s.RenderOperation("op_log", op)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	want := "abcdef123456 alice 3 hours ago - 2 hours ago\n" +
		"  snapshot working copy\n"

	if got := Text(frags); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if !frags[0].hasLabel("current_operation") {
		t.Errorf("expected current_operation label, got %v", frags[0].Labels)
	}
}

func TestRender_TimeRangeDuration(t *testing.T) {
	s := newTestSession(t)

	op := &testOperation{
		id:   "abcdef1234567890",
		user: "alice",
		span: TimeRange{
			Start: testNow.Add(-time.Hour),
			End:   testNow,
		},
	}

	frags, err := s.RenderOperationSource("time.duration()", op)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if got := Text(frags); got != "1 hour" {
		t.Errorf("expected %q, got %q", "1 hour", got)
	}
}

func TestSession_TemplateNotFound(t *testing.T) {
	s := newTestSession(t)

	_, err := s.RenderCommit("no_such_template", newTestCommit())
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestSession_Check(t *testing.T) {
	s := newTestSession(t)

	if err := s.Check("log", ContextCommit); err != nil {
		t.Errorf("log: %v", err)
	}

	if err := s.Check("op_log", ContextOperation); err != nil {
		t.Errorf("op_log: %v", err)
	}

	// A commit template cannot bind against the operation capability set.
	if err := s.Check("log", ContextOperation); err == nil {
		t.Error("expected binding error for log against operations")
	}
}
