package ports

import "context"

// Provider is the interface for commit-message text generation backends.
type Provider interface {
	// Generate issues one synchronous request and returns plain text.
	// An empty string with a nil error means the backend produced no
	// usable output; the caller decides whether to fall through.
	Generate(ctx context.Context, input GenerateInput) (string, error)
}

// GenerateInput is the input to Provider.Generate.
type GenerateInput struct {
	System string // system instructions
	User   string // assembled change context
	Model  string // override; empty means the client's configured model
}

// DiffScope selects what the context queries diff against.
type DiffScope int

const (
	// ScopeStaged diffs the index only (git diff --cached).
	ScopeStaged DiffScope = iota
	// ScopeWorktree diffs tracked changes against HEAD.
	ScopeWorktree
)

// Git is the interface for version-control queries and dispatch.
type Git interface {
	IsInRepository(ctx context.Context) (bool, error)
	// HasCommits reports whether HEAD resolves to a commit. A fresh
	// repository before its first commit has no diff baseline.
	HasCommits(ctx context.Context) (bool, error)
	NameStatus(ctx context.Context, scope DiffScope, pathspec []string) (string, error)
	Diff(ctx context.Context, scope DiffScope, pathspec []string) (string, error)
	Status(ctx context.Context) (string, error)
	StageAll(ctx context.Context) error
	// Commit runs git commit with the given argument list verbatim and
	// returns git's exit code.
	Commit(ctx context.Context, args []string) (int, error)
	Push(ctx context.Context) (int, error)
}

// Redactor redacts credential-shaped substrings from text.
type Redactor interface {
	Redact(text string) string
	RedactLog(text string) string // for logging (more aggressive)
}
