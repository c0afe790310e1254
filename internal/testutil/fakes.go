package testutil

import (
	"context"

	"github.com/chuckie/llmcommit/internal/ports"
)

// FakeProvider is a deterministic fake backend for testing.
type FakeProvider struct {
	Text      string
	Err       error
	CallCount int
	LastInput ports.GenerateInput
	// Results, when non-nil, is consumed one entry per call and overrides
	// Text/Err. Useful for retry tests.
	Results []FakeResult
}

// FakeResult is one scripted Generate outcome.
type FakeResult struct {
	Text string
	Err  error
}

func (f *FakeProvider) Generate(ctx context.Context, input ports.GenerateInput) (string, error) {
	f.CallCount++
	f.LastInput = input
	if len(f.Results) > 0 {
		r := f.Results[0]
		f.Results = f.Results[1:]
		return r.Text, r.Err
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

// FakeGit is a fake git adapter for testing.
type FakeGit struct {
	InRepo        bool
	Commits       bool
	NameStatusOut string
	DiffOut       string
	StatusOut     string
	QueryErr      error

	StagedEverything bool
	CommitArgs       [][]string
	CommitCode       int
	PushCalls        int
	PushCode         int

	// Scope and pathspec of the last diff query, for assertions.
	LastScope    ports.DiffScope
	LastPathspec []string
}

func (f *FakeGit) IsInRepository(ctx context.Context) (bool, error) {
	return f.InRepo, nil
}

func (f *FakeGit) HasCommits(ctx context.Context) (bool, error) {
	return f.Commits, nil
}

func (f *FakeGit) NameStatus(ctx context.Context, scope ports.DiffScope, pathspec []string) (string, error) {
	if f.QueryErr != nil {
		return "", f.QueryErr
	}
	return f.NameStatusOut, nil
}

func (f *FakeGit) Diff(ctx context.Context, scope ports.DiffScope, pathspec []string) (string, error) {
	f.LastScope = scope
	f.LastPathspec = pathspec
	if f.QueryErr != nil {
		return "", f.QueryErr
	}
	return f.DiffOut, nil
}

func (f *FakeGit) Status(ctx context.Context) (string, error) {
	if f.QueryErr != nil {
		return "", f.QueryErr
	}
	return f.StatusOut, nil
}

func (f *FakeGit) StageAll(ctx context.Context) error {
	f.StagedEverything = true
	return nil
}

func (f *FakeGit) Commit(ctx context.Context, args []string) (int, error) {
	copied := append([]string(nil), args...)
	f.CommitArgs = append(f.CommitArgs, copied)
	return f.CommitCode, nil
}

func (f *FakeGit) Push(ctx context.Context) (int, error) {
	f.PushCalls++
	return f.PushCode, nil
}

// FakeRedactor is a redactor that does nothing.
type FakeRedactor struct{}

func (f *FakeRedactor) Redact(text string) string    { return text }
func (f *FakeRedactor) RedactLog(text string) string { return text }
