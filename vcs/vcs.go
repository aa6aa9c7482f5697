// Package vcs provides revision records for the template engine.
//
// The package defines concrete commit and operation types satisfying the
// engine's context interfaces, a prefix resolver that computes unique
// shortest id prefixes over a known set of ids, and built-in sample records
// used by the render command's demo mode and the REPL.
package vcs

import (
	"time"

	"github.com/ardnew/revfmt/template"
)

// Commit is a revision record satisfying [template.Commit].
type Commit struct {
	Hash        string    `yaml:"commit_id"`
	Change      string    `yaml:"change_id"`
	AuthorSig   Signature `yaml:"author"`
	CommitSig   Signature `yaml:"committer"`
	Message     string    `yaml:"description"`
	BranchNames []string  `yaml:"branches"`
	TagNames    []string  `yaml:"tags"`
	Workspaces  []string  `yaml:"working_copies"`
	WorkingCopy bool      `yaml:"current_working_copy"`
	GitHead     bool      `yaml:"git_head"`
	Divergent   bool      `yaml:"divergent"`
	Hidden      bool      `yaml:"hidden"`
	Conflict    bool      `yaml:"conflict"`
	Empty       bool      `yaml:"empty"`
}

// Signature is an author or committer identity with its timestamp.
type Signature struct {
	Name  string    `yaml:"name"`
	Email string    `yaml:"email"`
	Time  time.Time `yaml:"time"`
}

func (s Signature) signature() template.Signature {
	return template.Signature{
		Name:      s.Name,
		Email:     s.Email,
		Timestamp: s.Time,
	}
}

func (c *Commit) CommitId() string              { return c.Hash }
func (c *Commit) ChangeId() string              { return c.Change }
func (c *Commit) Author() template.Signature    { return c.AuthorSig.signature() }
func (c *Commit) Committer() template.Signature { return c.CommitSig.signature() }
func (c *Commit) Description() string           { return c.Message }
func (c *Commit) Branches() []string            { return c.BranchNames }
func (c *Commit) Tags() []string                { return c.TagNames }
func (c *Commit) WorkingCopies() []string       { return c.Workspaces }
func (c *Commit) IsWorkingCopy() bool           { return c.WorkingCopy }
func (c *Commit) IsGitHead() bool               { return c.GitHead }
func (c *Commit) IsDivergent() bool             { return c.Divergent }
func (c *Commit) IsHidden() bool                { return c.Hidden }
func (c *Commit) HasConflict() bool             { return c.Conflict }
func (c *Commit) IsEmpty() bool                 { return c.Empty }

// Operation is an operation-log record satisfying [template.Operation].
type Operation struct {
	Hash     string    `yaml:"id"`
	UserName string    `yaml:"user"`
	Start    time.Time `yaml:"start"`
	End      time.Time `yaml:"end"`
	Message  string    `yaml:"description"`
	TagNames []string  `yaml:"tags"`
	Current  bool      `yaml:"current_operation"`
}

func (o *Operation) Id() string          { return o.Hash }
func (o *Operation) User() string        { return o.UserName }
func (o *Operation) Description() string { return o.Message }
func (o *Operation) Tags() []string      { return o.TagNames }
func (o *Operation) IsCurrent() bool     { return o.Current }

func (o *Operation) Time() template.TimeRange {
	return template.TimeRange{Start: o.Start, End: o.End}
}
