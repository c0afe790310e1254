package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chuckie/llmcommit/internal/adapters/git"
	"github.com/chuckie/llmcommit/internal/adapters/llm"
	"github.com/chuckie/llmcommit/internal/app"
	"github.com/chuckie/llmcommit/internal/config"
	"github.com/chuckie/llmcommit/internal/domain"
	"github.com/chuckie/llmcommit/internal/observability"
	"github.com/chuckie/llmcommit/internal/ui"
)

const (
	exitOK           = 0
	exitPrecondition = 2 // not a repo, no changes, bad arguments
	exitGeneration   = 3 // every provider failed or output was unusable
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	// Best-effort error logging to a local file.
	if _, cleanup, err := observability.Init(); err == nil {
		defer cleanup()
	}

	opts, err := parseArgs(args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "llmcommit: %v\n\n", err)
		printHelp(os.Stdout)
		return exitPrecondition
	}
	if opts.help {
		printHelp(os.Stdout)
		return exitOK
	}

	ctx := context.Background()
	gitAdapter := git.NewExecutor()

	inRepo, err := gitAdapter.IsInRepository(ctx)
	if err != nil || !inRepo {
		fmt.Fprintln(os.Stderr, "llmcommit: not inside a git repository.")
		return exitPrecondition
	}

	// Explicit message or interactive staging: hand everything to git.
	if bypassGeneration(opts.gitArgs) {
		code, err := gitAdapter.Commit(ctx, opts.gitArgs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "llmcommit: %v\n", err)
			return exitPrecondition
		}
		return code
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "llmcommit: configuration error: %v\n", err)
		return exitPrecondition
	}
	if opts.lang != "" {
		cfg.Language = opts.lang
	}
	cfg.ApplyOverrides(opts.provider, opts.model)

	if opts.addAll {
		if err := gitAdapter.StageAll(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "llmcommit: %v\n", err)
			return exitPrecondition
		}
	}

	pipeline := llm.NewPipeline(llm.SpecsFromConfig(cfg))
	application := app.NewApp(gitAdapter, pipeline, cfg.DiffCap, cfg.Language, "")

	buildOpts := app.BuildOptions{
		IncludeWorktree: includesWorktree(opts.gitArgs),
		Pathspec:        detectPathspec(opts.gitArgs),
	}

	result, err := ui.Run(ctx, func(ctx context.Context) (domain.Message, []llm.Attempt, error) {
		msg, attempts, genErr := application.Generate.Generate(ctx, buildOpts)
		return msg, attempts, genErr
	}, opts.review)

	if opts.verbose {
		printAttempts(result.Attempts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "llmcommit: %v\n", err)
		if errors.Is(err, app.ErrNoChanges) {
			return exitPrecondition
		}
		var exhausted *llm.ExhaustedError
		if errors.As(err, &exhausted) || errors.Is(err, domain.ErrEmptyMessage) {
			return exitGeneration
		}
		return exitPrecondition
	}
	if !result.Accepted {
		fmt.Fprintln(os.Stderr, "llmcommit: commit cancelled.")
		return exitOK
	}

	if opts.dryRun {
		fmt.Fprintln(os.Stdout, result.Message.String())
		return exitOK
	}

	code, err := application.Commit.Commit(ctx, opts.gitArgs, result.Message)
	if err != nil {
		fmt.Fprintf(os.Stderr, "llmcommit: %v\n", err)
		return exitPrecondition
	}
	if code != 0 {
		return code
	}

	if opts.push {
		pushCode, err := application.Commit.Push(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "llmcommit: %v\n", err)
			return exitPrecondition
		}
		return pushCode
	}

	return exitOK
}

// printAttempts reports per-provider outcomes on stderr for --verbose.
func printAttempts(attempts []llm.Attempt) {
	for _, a := range attempts {
		fmt.Fprintf(os.Stderr, "llmcommit: provider %s\n", a.String())
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "llmcommit — generate a commit message with an LLM and hand it to git")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  llmcommit [flags] [git commit args] [-- pathspec...]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --lang CODE        Message language (en, fi, sv, et, de, fr, es)")
	fmt.Fprintf(w, "  --provider NAME    Use only this provider (%s)\n", strings.Join(config.KnownProviders, ", "))
	fmt.Fprintln(w, "  --model NAME       Override the model for every provider")
	fmt.Fprintln(w, "  -A, --add-all      Run git add -A first")
	fmt.Fprintln(w, "  --push             Push after a successful commit")
	fmt.Fprintln(w, "  --review           Confirm the message before committing")
	fmt.Fprintln(w, "  --dry-run          Print the message, do not commit")
	fmt.Fprintln(w, "  --verbose          Per-provider diagnostics on stderr")
	fmt.Fprintln(w, "  -h, --help         Show help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Providers and models:")
	for _, name := range config.KnownProviders {
		fmt.Fprintf(w, "  %-10s default %s\n", name, config.DefaultModels[name])
		fmt.Fprintf(w, "             also: %s\n", strings.Join(config.ProviderModels[name], ", "))
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Everything else is forwarded to git commit unchanged. Flags that pick")
	fmt.Fprintln(w, "the message (-m, -F, -t, --amend reuse forms) or stage interactively")
	fmt.Fprintln(w, "(-p, -i) skip generation entirely.")
}
