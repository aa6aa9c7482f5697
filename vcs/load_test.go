package vcs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ardnew/revfmt/template"
)

const recordsYAML = `
commits:
  - commit_id: f0c8a1b2d3e4f5a6
    change_id: kxyzlmnoqprstuvw
    author:
      name: Alice Author
      email: alice@example.com
      time: 2026-08-30T14:05:00Z
    committer:
      name: Alice Author
      email: alice@example.com
      time: 2026-08-30T14:05:00Z
    description: |
      Add template parser

      Longer body text.
    branches: [main]
    current_working_copy: true
  - commit_id: a1b2c3d4e5f60718
    change_id: mwqnoprstuvwxyzl
    description: Fix prefix resolution
    tags: [v0.1.0]
    git_head: true
operations:
  - id: b7e2c9d4a1f8e6b3
    user: alice@example.com
    start: 2026-08-30T14:04:58Z
    end: 2026-08-30T14:05:00Z
    description: commit working copy
    current_operation: true
`

func TestReadRecords(t *testing.T) {
	recs, err := ReadRecords(strings.NewReader(recordsYAML))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if len(recs.Commits) != 2 || len(recs.Operations) != 1 {
		t.Fatalf("expected 2 commits and 1 operation, got %d and %d",
			len(recs.Commits), len(recs.Operations))
	}

	c := recs.Commits[0]

	if c.ChangeId() != "kxyzlmnoqprstuvw" {
		t.Errorf("unexpected change id %q", c.ChangeId())
	}

	if !c.IsWorkingCopy() {
		t.Error("expected working copy flag")
	}

	wantTime := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	if !c.Author().Timestamp.Equal(wantTime) {
		t.Errorf("unexpected author time %v", c.Author().Timestamp)
	}

	if got := c.Description(); !strings.HasPrefix(got, "Add template parser\n") {
		t.Errorf("unexpected description %q", got)
	}

	op := recs.Operations[0]

	if op.Id() != "b7e2c9d4a1f8e6b3" || !op.IsCurrent() {
		t.Errorf("unexpected operation %+v", op)
	}

	span := op.Time()
	if span.End.Sub(span.Start) != 2*time.Second {
		t.Errorf("unexpected operation span %v", span)
	}
}

func TestReadRecords_Invalid(t *testing.T) {
	_, err := ReadRecords(strings.NewReader("commits: {not: a sequence}"))
	if !errors.Is(err, ErrDecodeRecords) {
		t.Errorf("expected ErrDecodeRecords, got %v", err)
	}
}

func TestLoadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")

	if err := os.WriteFile(path, []byte(recordsYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	recs, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if len(recs.Commits) != 2 {
		t.Errorf("expected 2 commits, got %d", len(recs.Commits))
	}
}

func TestLoadRecords_Missing(t *testing.T) {
	_, err := LoadRecords(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrReadRecords) {
		t.Errorf("expected ErrReadRecords, got %v", err)
	}
}

func TestSampleRecordsRenderCleanly(t *testing.T) {
	commits := SampleCommits()
	ops := SampleOperations()

	session := template.NewSession(
		template.NewConfig(),
		template.WithIdResolver(CommitResolver(commits)),
	)

	for _, c := range commits {
		frags, err := session.RenderCommit("log", c)
		if err != nil {
			t.Fatalf("commit %s: %v", c.Hash, err)
		}

		if template.Text(frags) == "" {
			t.Errorf("commit %s rendered empty", c.Hash)
		}
	}

	opSession := template.NewSession(
		template.NewConfig(),
		template.WithIdResolver(OperationResolver(ops)),
	)

	for _, op := range ops {
		frags, err := opSession.RenderOperation("op_log", op)
		if err != nil {
			t.Fatalf("operation %s: %v", op.Hash, err)
		}

		if template.Text(frags) == "" {
			t.Errorf("operation %s rendered empty", op.Hash)
		}
	}
}
