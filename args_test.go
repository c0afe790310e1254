package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/chuckie/llmcommit/internal/config"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"--lang", "fi", "--provider", "ollama", "--model", "llama3.2", "-A", "--push", "--review", "--dry-run", "--verbose", "--signoff"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.lang != "fi" || opts.provider != "ollama" || opts.model != "llama3.2" {
		t.Errorf("opts = %+v", opts)
	}
	if !opts.addAll || !opts.push || !opts.review || !opts.dryRun || !opts.verbose {
		t.Errorf("boolean flags = %+v", opts)
	}
	if !reflect.DeepEqual(opts.gitArgs, []string{"--signoff"}) {
		t.Errorf("gitArgs = %v", opts.gitArgs)
	}
}

func TestParseArgsEqualsForm(t *testing.T) {
	opts, err := parseArgs([]string{"--lang=sv", "--model=qwen3:8b"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.lang != "sv" || opts.model != "qwen3:8b" {
		t.Errorf("opts = %+v", opts)
	}
}

func TestParseArgsMissingValue(t *testing.T) {
	if _, err := parseArgs([]string{"--lang"}); err == nil {
		t.Fatal("expected error for dangling --lang")
	}
}

func TestParseArgsDoubleDashStopsParsing(t *testing.T) {
	// Our flag names after "--" are pathspec, not flags.
	opts, err := parseArgs([]string{"-a", "--", "--push", "docs/"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.push {
		t.Error("--push after -- must not be consumed")
	}
	want := []string{"-a", "--", "--push", "docs/"}
	if !reflect.DeepEqual(opts.gitArgs, want) {
		t.Errorf("gitArgs = %v, want %v", opts.gitArgs, want)
	}
}

func TestBypassGeneration(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"plain", []string{"--signoff"}, false},
		{"empty", nil, false},
		{"message flag", []string{"-m", "done"}, true},
		{"message long", []string{"--message", "done"}, true},
		{"combined short m", []string{`-mdone`}, true},
		{"file flag", []string{"-F", "msg.txt"}, true},
		{"combined short F", []string{"-Fmsg.txt"}, true},
		{"template", []string{"-t", "tpl"}, true},
		{"combined short t", []string{"-ttpl"}, true},
		{"patch", []string{"-p"}, true},
		{"interactive", []string{"--interactive"}, true},
		{"no-edit", []string{"--amend", "--no-edit"}, true},
		{"reuse", []string{"-C", "HEAD~1"}, true},
		{"fixup", []string{"--fixup", "abc123"}, true},
		{"squash", []string{"--squash", "abc123"}, true},
		{"amend alone", []string{"--amend"}, false},
		{"flag after pathspec separator", []string{"--", "-m"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bypassGeneration(tt.args); got != tt.want {
				t.Errorf("bypassGeneration(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestDetectPathspec(t *testing.T) {
	if got := detectPathspec([]string{"-a", "--", "src/", "docs/"}); !reflect.DeepEqual(got, []string{"src/", "docs/"}) {
		t.Errorf("pathspec = %v", got)
	}
	if got := detectPathspec([]string{"-a", "src/"}); got != nil {
		t.Errorf("without -- there is no pathspec, got %v", got)
	}
}

func TestPrintHelpListsEveryProvider(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf)
	out := buf.String()

	for _, name := range config.KnownProviders {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing provider %q", name)
		}
		if !strings.Contains(out, config.DefaultModels[name]) {
			t.Errorf("help output missing default model for %q", name)
		}
		for _, model := range config.ProviderModels[name] {
			if !strings.Contains(out, model) {
				t.Errorf("help output missing model %q for %q", model, name)
			}
		}
	}
}

func TestIncludesWorktree(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-a"}, true},
		{[]string{"--all"}, true},
		{[]string{"--include"}, true},
		{[]string{"--signoff"}, false},
		{[]string{"--", "-a"}, false},
	}
	for _, tt := range tests {
		if got := includesWorktree(tt.args); got != tt.want {
			t.Errorf("includesWorktree(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
