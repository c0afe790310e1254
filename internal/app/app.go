package app

import (
	"context"
	"fmt"

	"github.com/chuckie/llmcommit/internal/adapters/llm"
	"github.com/chuckie/llmcommit/internal/domain"
	"github.com/chuckie/llmcommit/internal/ports"
	"github.com/chuckie/llmcommit/internal/security"
)

// Generator runs the ordered provider fallback for one prompt.
type Generator interface {
	Run(ctx context.Context, system, user, modelOverride string) (string, []llm.Attempt, error)
}

// GenerateService turns repository state into a normalized commit message.
type GenerateService struct {
	builder  *ContextBuilder
	pipeline Generator
	language string
	model    string // override for every provider; empty means configured
}

// NewGenerateService creates a new generation service.
func NewGenerateService(builder *ContextBuilder, pipeline Generator, language, modelOverride string) *GenerateService {
	return &GenerateService{
		builder:  builder,
		pipeline: pipeline,
		language: language,
		model:    modelOverride,
	}
}

// Generate builds the change context, runs the provider pipeline and
// normalizes the first successful result.
func (s *GenerateService) Generate(ctx context.Context, opts BuildOptions) (domain.Message, []llm.Attempt, error) {
	change, err := s.builder.Build(ctx, opts)
	if err != nil {
		return domain.Message{}, nil, err
	}

	system := domain.SystemInstructions(s.language)
	user := domain.UserPrompt(change)

	raw, attempts, err := s.pipeline.Run(ctx, system, user, s.model)
	if err != nil {
		return domain.Message{}, attempts, err
	}

	msg, err := domain.NormalizeMessage(raw)
	if err != nil {
		return domain.Message{}, attempts, fmt.Errorf("failed to normalize model output: %w", err)
	}
	return msg, attempts, nil
}

// CommitService dispatches the final commit and optional push to git.
type CommitService struct {
	git ports.Git
}

// NewCommitService creates a new commit service.
func NewCommitService(git ports.Git) *CommitService {
	return &CommitService{git: git}
}

// Commit appends the message-carrying tokens to the user's original argument
// list and runs git commit. The original tokens are never reordered.
func (c *CommitService) Commit(ctx context.Context, passThrough []string, msg domain.Message) (int, error) {
	args := make([]string, 0, len(passThrough)+4)
	args = append(args, passThrough...)
	args = append(args, msg.CommitArgs()...)
	return c.git.Commit(ctx, args)
}

// Push runs git push.
func (c *CommitService) Push(ctx context.Context) (int, error) {
	return c.git.Push(ctx)
}

// App is the application container with all services.
type App struct {
	Generate *GenerateService
	Commit   *CommitService
	Redactor ports.Redactor
}

// NewApp creates a new application with all dependencies wired.
func NewApp(git ports.Git, pipeline Generator, diffCap int, language, modelOverride string) *App {
	redactor := security.NewRedactor()
	builder := NewContextBuilder(git, redactor, diffCap)
	return &App{
		Generate: NewGenerateService(builder, pipeline, language, modelOverride),
		Commit:   NewCommitService(git),
		Redactor: redactor,
	}
}
