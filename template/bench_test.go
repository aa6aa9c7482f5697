package template

import (
	"testing"
	"time"
)

const benchSource = `label(if(current_working_copy, "working_copy"),
  separate(" ",
    format_short_change_id(change_id),
    author.email(),
    committer.timestamp().ago(),
    branches,
    format_short_commit_id(commit_id)) ++ "\n"
  ++ indent("  ", coalesce(description.first_line(), description_placeholder))
  ++ "\n")`

func BenchmarkParse(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(benchSource); err != nil {
			b.Fatalf("parse error: %v", err)
		}
	}
}

func BenchmarkResolve(b *testing.B) {
	cfg := NewConfig()

	expr, err := Parse(benchSource)
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Resolve(expr, cfg, ContextCommit); err != nil {
			b.Fatalf("resolve error: %v", err)
		}
	}
}

// BenchmarkRender_Cached measures steady-state rendering, where every
// iteration hits the session's bound-tree cache.
func BenchmarkRender_Cached(b *testing.B) {
	session := NewSession(NewConfig(), WithClock(func() time.Time { return testNow }))
	commit := newTestCommit()

	if _, err := session.RenderCommit("log", commit); err != nil {
		b.Fatalf("render error: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := session.RenderCommit("log", commit); err != nil {
			b.Fatalf("render error: %v", err)
		}
	}
}

// BenchmarkRender_Uncached measures the full pipeline with a fresh session
// each iteration, so every render pays for parse and resolve.
func BenchmarkRender_Uncached(b *testing.B) {
	commit := newTestCommit()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		session := NewSession(NewConfig())
		if _, err := session.RenderCommit("log", commit); err != nil {
			b.Fatalf("render error: %v", err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	expr, err := Parse(benchSource)
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Format(expr)
	}
}
