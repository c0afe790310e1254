package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/chuckie/llmcommit/internal/ports"
)

// Executor implements ports.Git using os/exec.
type Executor struct{}

// NewExecutor creates a new git executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// run executes a git query and returns its stdout. A non-zero exit surfaces
// git's stderr as the error message.
func (e *Executor) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "git command failed"
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return string(output), nil
}

// IsInRepository checks if we are inside a git working tree.
func (e *Executor) IsInRepository(ctx context.Context) (bool, error) {
	out, err := e.run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false, nil // not a repository
	}
	return strings.TrimSpace(out) == "true", nil
}

// HasCommits reports whether HEAD resolves to a commit. Before the initial
// commit there is nothing to diff the working tree against.
func (e *Executor) HasCommits(ctx context.Context) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--verify", "--quiet", "HEAD")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("git rev-parse: %w", err)
	}
	return true, nil
}

// NameStatus returns the name+status summary of affected files for the scope.
func (e *Executor) NameStatus(ctx context.Context, scope ports.DiffScope, pathspec []string) (string, error) {
	args := []string{"diff", "--cached", "--name-status"}
	if scope == ports.ScopeWorktree {
		args = []string{"diff", "--name-status", "HEAD"}
	}
	args = appendPathspec(args, pathspec)
	out, err := e.run(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Diff returns the full diff text for the scope.
func (e *Executor) Diff(ctx context.Context, scope ports.DiffScope, pathspec []string) (string, error) {
	args := []string{"diff", "--cached", "--no-color"}
	if scope == ports.ScopeWorktree {
		args = []string{"diff", "--no-color", "HEAD"}
	}
	args = appendPathspec(args, pathspec)
	return e.run(ctx, args...)
}

// Status returns the porcelain status snapshot.
func (e *Executor) Status(ctx context.Context) (string, error) {
	out, err := e.run(ctx, "status", "--porcelain=v1")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StageAll stages every change, tracked and untracked.
func (e *Executor) StageAll(ctx context.Context) error {
	_, err := e.run(ctx, "add", "-A")
	return err
}

// Commit runs git commit with args verbatim, inheriting the terminal so
// editor and hook interaction behave exactly as a direct invocation.
func (e *Executor) Commit(ctx context.Context, args []string) (int, error) {
	return e.dispatch(ctx, append([]string{"commit"}, args...))
}

// Push runs git push, inheriting the terminal.
func (e *Executor) Push(ctx context.Context) (int, error) {
	return e.dispatch(ctx, []string{"push"})
}

func (e *Executor) dispatch(ctx context.Context, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("git %s: %w", args[0], err)
	}
	return 0, nil
}

func appendPathspec(args, pathspec []string) []string {
	if len(pathspec) == 0 {
		return args
	}
	args = append(args, "--")
	return append(args, pathspec...)
}
