package vcs

import "time"

// SampleCommits returns a small fixed history used by the render command's
// demo mode, the REPL, and tests.
func SampleCommits() []*Commit {
	alice := Signature{
		Name:  "Alice Author",
		Email: "alice@example.com",
		Time:  time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC),
	}
	bob := Signature{
		Name:  "Bob Builder",
		Email: "bob@example.com",
		Time:  time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC),
	}

	return []*Commit{
		{
			Hash:        "f0c8a1b2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8",
			Change:      "kxyzlmnoqprstuvw",
			AuthorSig:   alice,
			CommitSig:   alice,
			Message:     "Add template-driven log formatting\n\nLonger body text.",
			BranchNames: []string{"main"},
			WorkingCopy: true,
		},
		{
			Hash:      "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678",
			Change:    "mwqnoprstuvwxyzl",
			AuthorSig: bob,
			CommitSig: bob,
			Message:   "Fix prefix resolution for short ids",
			TagNames:  []string{"v0.1.0"},
			GitHead:   true,
		},
		{
			Hash:      "a1f9e8d7c6b5a4938271605f4e3d2c1b0a998877",
			Change:    "qsuvwxyzlmnoprst",
			AuthorSig: bob,
			CommitSig: alice,
			Message:   "",
			Empty:     true,
		},
	}
}

// SampleOperations returns a fixed operation log matching SampleCommits.
func SampleOperations() []*Operation {
	return []*Operation{
		{
			Hash:     "b7e2c9d4a1f8e6b3c0d5a2f9e4b1c8d7a6f3e0b9",
			UserName: "alice@example.com",
			Start:    time.Date(2026, 8, 30, 14, 4, 58, 0, time.UTC),
			End:      time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC),
			Message:  "commit working copy",
			Current:  true,
		},
		{
			Hash:     "c3a7f1e9b4d8c2a6f0e5b9d3c7a1f4e8b2d6c0a5",
			UserName: "bob@example.com",
			Start:    time.Date(2026, 8, 29, 9, 29, 55, 0, time.UTC),
			End:      time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC),
			Message:  "undo operation 9f2b",
			TagNames: []string{"undo"},
		},
	}
}
