package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chuckie/llmcommit/internal/domain"
	"github.com/chuckie/llmcommit/internal/ports"
)

// ErrNoChanges means there is nothing to describe: nothing staged and no
// working-tree scope requested. This is the single most common user error,
// so the message names both remediations.
var ErrNoChanges = errors.New("no changes detected for commit message generation.\n" +
	"If you meant to commit all tracked changes, use -a. Otherwise stage changes first (git add -A)")

// BuildOptions controls what the context queries cover.
type BuildOptions struct {
	// IncludeWorktree diffs tracked changes against HEAD instead of the
	// staged index. Ignored before the initial commit, which has no
	// baseline to diff against.
	IncludeWorktree bool
	// Pathspec restricts summary and diff queries to explicit paths.
	Pathspec []string
}

// ContextBuilder assembles the bounded, redacted change description sent to
// providers.
type ContextBuilder struct {
	git      ports.Git
	redactor ports.Redactor
	maxChars int
}

// NewContextBuilder creates a builder with the given diff cap.
func NewContextBuilder(git ports.Git, redactor ports.Redactor, maxChars int) *ContextBuilder {
	if maxChars <= 0 {
		maxChars = domain.DefaultDiffCap
	}
	return &ContextBuilder{git: git, redactor: redactor, maxChars: maxChars}
}

// Build queries repository state and assembles a ChangeContext.
func (b *ContextBuilder) Build(ctx context.Context, opts BuildOptions) (domain.ChangeContext, error) {
	scope := ports.ScopeStaged
	if opts.IncludeWorktree {
		hasCommits, err := b.git.HasCommits(ctx)
		if err != nil {
			return domain.ChangeContext{}, fmt.Errorf("failed to check for prior commits: %w", err)
		}
		if hasCommits {
			scope = ports.ScopeWorktree
		}
	}

	summary, err := b.git.NameStatus(ctx, scope, opts.Pathspec)
	if err != nil {
		return domain.ChangeContext{}, fmt.Errorf("failed to read change summary: %w", err)
	}

	diff, err := b.git.Diff(ctx, scope, opts.Pathspec)
	if err != nil {
		return domain.ChangeContext{}, fmt.Errorf("failed to read diff: %w", err)
	}
	diff = b.redactor.Redact(diff)

	// Informational; included even when empty.
	status, err := b.git.Status(ctx)
	if err != nil {
		return domain.ChangeContext{}, fmt.Errorf("failed to read repository status: %w", err)
	}

	if strings.TrimSpace(diff) == "" {
		return domain.ChangeContext{}, ErrNoChanges
	}

	capped, truncated := domain.CapDiff(diff, b.maxChars)
	return domain.ChangeContext{
		FileSummary: summary,
		Status:      status,
		Diff:        capped,
		Truncated:   truncated,
	}, nil
}
