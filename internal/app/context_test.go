package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chuckie/llmcommit/internal/domain"
	"github.com/chuckie/llmcommit/internal/ports"
	"github.com/chuckie/llmcommit/internal/security"
	"github.com/chuckie/llmcommit/internal/testutil"
)

func TestBuildStagedScope(t *testing.T) {
	git := &testutil.FakeGit{
		InRepo:        true,
		Commits:       true,
		NameStatusOut: "M\tmain.go",
		DiffOut:       testutil.SampleDiffSmall,
		StatusOut:     " M main.go",
	}
	b := NewContextBuilder(git, &testutil.FakeRedactor{}, 0)

	change, err := b.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if git.LastScope != ports.ScopeStaged {
		t.Errorf("scope = %v, want staged", git.LastScope)
	}
	if change.Diff != testutil.SampleDiffSmall {
		t.Errorf("diff should pass through verbatim under the cap")
	}
	if change.Truncated {
		t.Error("small diff must not be truncated")
	}
}

func TestBuildWorktreeScope(t *testing.T) {
	git := &testutil.FakeGit{InRepo: true, Commits: true, DiffOut: testutil.SampleDiffSmall}
	b := NewContextBuilder(git, &testutil.FakeRedactor{}, 0)

	if _, err := b.Build(context.Background(), BuildOptions{IncludeWorktree: true}); err != nil {
		t.Fatal(err)
	}
	if git.LastScope != ports.ScopeWorktree {
		t.Errorf("scope = %v, want worktree", git.LastScope)
	}
}

func TestBuildInitialCommitFallsBackToStaged(t *testing.T) {
	// No HEAD yet: a working-tree request has no baseline and must degrade
	// to the staged scope.
	git := &testutil.FakeGit{InRepo: true, Commits: false, DiffOut: testutil.SampleDiffSmall}
	b := NewContextBuilder(git, &testutil.FakeRedactor{}, 0)

	if _, err := b.Build(context.Background(), BuildOptions{IncludeWorktree: true}); err != nil {
		t.Fatal(err)
	}
	if git.LastScope != ports.ScopeStaged {
		t.Errorf("scope = %v, want staged fallback before the initial commit", git.LastScope)
	}
}

func TestBuildPathspecPassedThrough(t *testing.T) {
	git := &testutil.FakeGit{InRepo: true, Commits: true, DiffOut: testutil.SampleDiffSmall}
	b := NewContextBuilder(git, &testutil.FakeRedactor{}, 0)

	paths := []string{"cmd/", "internal/app"}
	if _, err := b.Build(context.Background(), BuildOptions{Pathspec: paths}); err != nil {
		t.Fatal(err)
	}
	if len(git.LastPathspec) != 2 || git.LastPathspec[0] != "cmd/" {
		t.Errorf("pathspec = %v", git.LastPathspec)
	}
}

func TestBuildEmptyDiff(t *testing.T) {
	git := &testutil.FakeGit{InRepo: true, Commits: true, DiffOut: "  \n"}
	b := NewContextBuilder(git, &testutil.FakeRedactor{}, 0)

	_, err := b.Build(context.Background(), BuildOptions{})
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("error = %v, want ErrNoChanges", err)
	}
	// The message must name both remediations.
	if !strings.Contains(err.Error(), "-a") || !strings.Contains(err.Error(), "git add") {
		t.Errorf("ErrNoChanges should be actionable: %v", err)
	}
}

func TestBuildQueryFailure(t *testing.T) {
	git := &testutil.FakeGit{InRepo: true, Commits: true, QueryErr: errors.New("boom")}
	b := NewContextBuilder(git, &testutil.FakeRedactor{}, 0)

	_, err := b.Build(context.Background(), BuildOptions{})
	if err == nil || errors.Is(err, ErrNoChanges) {
		t.Fatalf("repository failure must propagate as a distinct error, got %v", err)
	}
}

func TestBuildTruncation(t *testing.T) {
	git := &testutil.FakeGit{InRepo: true, Commits: true, DiffOut: testutil.SampleDiffLarge}
	maxChars := 500
	b := NewContextBuilder(git, &testutil.FakeRedactor{}, maxChars)

	change, err := b.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !change.Truncated {
		t.Fatal("expected truncation")
	}
	if !strings.HasSuffix(change.Diff, domain.TruncationMarker) {
		t.Error("truncated diff must carry the visible marker")
	}
	content := strings.TrimSuffix(change.Diff, domain.TruncationMarker)
	if len(content) != maxChars {
		t.Errorf("content length = %d, want %d", len(content), maxChars)
	}
}

func TestBuildRedactsBeforeAssembly(t *testing.T) {
	git := &testutil.FakeGit{InRepo: true, Commits: true, DiffOut: testutil.SampleDiffWithKey}
	b := NewContextBuilder(git, security.NewRedactor(), 0)

	change, err := b.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	rendered := change.Render()
	if strings.Contains(rendered, "-----BEGIN") {
		t.Errorf("private key marker survived into the context:\n%s", rendered)
	}
	if !strings.Contains(rendered, security.Placeholder) {
		t.Error("expected redaction placeholder in the context")
	}
}
