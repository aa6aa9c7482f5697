package template

// This file declares the read-only interfaces the engine requires from the
// version-control data layer. The engine never touches storage itself: all
// context data is pre-fetched by the caller before rendering begins, and
// evaluation performs no I/O.

// ContextKind identifies which capability set top-level names resolve
// against.
type ContextKind int

const (
	// ContextCommit renders commit-log entries.
	ContextCommit ContextKind = iota

	// ContextOperation renders operation-log entries.
	ContextOperation
)

// String returns a string representation of the context kind.
func (k ContextKind) String() string {
	switch k {
	case ContextCommit:
		return "commit"
	case ContextOperation:
		return "operation"
	default:
		return "unknown"
	}
}

// Commit is the read-only view of one commit-log entry.
type Commit interface {
	CommitId() string
	ChangeId() string
	Author() Signature
	Committer() Signature

	// Description returns the full commit description, or "" when the
	// commit has no description set.
	Description() string

	Branches() []string
	Tags() []string

	// WorkingCopies lists the names of workspaces whose working copy
	// points at this commit.
	WorkingCopies() []string

	// IsWorkingCopy reports whether this commit is the current working
	// copy of the rendering workspace.
	IsWorkingCopy() bool

	IsGitHead() bool
	IsDivergent() bool
	IsHidden() bool
	HasConflict() bool
	IsEmpty() bool
}

// Operation is the read-only view of one operation-log entry.
type Operation interface {
	Id() string
	User() string
	Time() TimeRange
	Description() string
	Tags() []string

	// IsCurrent reports whether this is the operation the repository is
	// currently at.
	IsCurrent() bool
}

// IdResolver reports how many leading characters of an id are required to
// identify it uniquely among a candidate set. It backs the .shortest(n)
// method on id values.
type IdResolver interface {
	ShortestPrefixLen(id string) int
}

// fullLengthResolver is used when no IdResolver is configured: every id
// requires its full length, so .shortest(n) degrades to an n-character
// prefix.
type fullLengthResolver struct{}

func (fullLengthResolver) ShortestPrefixLen(id string) int { return len(id) }
