package ui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/chuckie/llmcommit/internal/adapters/llm"
	"github.com/chuckie/llmcommit/internal/domain"
)

// RunFunc produces one commit message. It is invoked once up front and again
// on each regenerate request.
type RunFunc func(ctx context.Context) (domain.Message, []llm.Attempt, error)

// Result is the outcome of the interactive (or fallback) flow.
type Result struct {
	Message  domain.Message
	Attempts []llm.Attempt
	Accepted bool
}

// Interactive reports whether both ends of the terminal are real TTYs.
// Pipes, redirects and CI all take the plain path.
func Interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stderr.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Run executes generation with a spinner and, when review is set, holds the
// result for approval. Outside a terminal it degrades to a direct call with
// the result auto-accepted, so scripted use never blocks on a keypress.
func Run(ctx context.Context, generate RunFunc, review bool) (Result, error) {
	if !Interactive() {
		msg, attempts, err := generate(ctx)
		if err != nil {
			return Result{Attempts: attempts}, err
		}
		return Result{Message: msg, Attempts: attempts, Accepted: true}, nil
	}

	model := NewModel(func(context.Context) (domain.Message, []llm.Attempt, error) {
		return generate(ctx)
	}, review)

	// The program draws on stderr so stdout stays clean for the message
	// itself (dry-run output is parsed by scripts).
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("terminal UI failed: %w", err)
	}

	m, ok := final.(*Model)
	if !ok {
		return Result{}, fmt.Errorf("terminal UI returned unexpected model")
	}
	if m.err != nil {
		return Result{Attempts: m.attempts}, m.err
	}
	return Result{Message: m.message, Attempts: m.attempts, Accepted: m.accepted}, nil
}
