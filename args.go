package main

import (
	"fmt"
	"strings"
)

// interactiveFlags request staged-hunk selection; the final diff is not known
// up front, so generation is skipped.
var interactiveFlags = map[string]bool{
	"-p": true, "--patch": true,
	"-i": true, "--interactive": true,
}

// messageControlFlags tell git where the message comes from; overriding them
// would be surprising.
var messageControlFlags = map[string]bool{
	"--no-edit":        true,
	"--reuse-message":  true,
	"-C":               true,
	"--reedit-message": true,
	"-c":               true,
	"--fixup":          true,
	"--squash":         true,
}

// options is the parsed command line: our flags separated from whatever goes
// to git commit verbatim.
type options struct {
	lang     string
	provider string
	model    string
	addAll   bool
	push     bool
	review   bool
	dryRun   bool
	verbose  bool
	help     bool

	// gitArgs is forwarded to git commit in original order.
	gitArgs []string
}

// parseArgs splits our flags from git's. Everything after "--" belongs to
// git unconditionally.
func parseArgs(argv []string) (options, error) {
	var opts options

	consumeValue := func(i *int, flag string) (string, error) {
		if eq := strings.IndexByte(argv[*i], '='); eq >= 0 {
			return argv[*i][eq+1:], nil
		}
		*i++
		if *i >= len(argv) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		return argv[*i], nil
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		if arg == "--" {
			opts.gitArgs = append(opts.gitArgs, argv[i:]...)
			break
		}

		name := arg
		if eq := strings.IndexByte(arg, '='); eq >= 0 {
			name = arg[:eq]
		}

		switch name {
		case "-h", "--help":
			opts.help = true
		case "--lang":
			v, err := consumeValue(&i, "--lang")
			if err != nil {
				return opts, err
			}
			opts.lang = v
		case "--provider":
			v, err := consumeValue(&i, "--provider")
			if err != nil {
				return opts, err
			}
			opts.provider = v
		case "--model":
			v, err := consumeValue(&i, "--model")
			if err != nil {
				return opts, err
			}
			opts.model = v
		case "-A", "--add-all":
			opts.addAll = true
		case "--push":
			opts.push = true
		case "--review":
			opts.review = true
		case "--dry-run":
			opts.dryRun = true
		case "--verbose":
			opts.verbose = true
		default:
			opts.gitArgs = append(opts.gitArgs, arg)
		}
	}

	return opts, nil
}

// bypassGeneration reports whether the git arguments already determine the
// commit message or stage interactively, in which case the invocation is
// handed to git unchanged.
func bypassGeneration(args []string) bool {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if interactiveFlags[a] || messageControlFlags[a] {
			return true
		}
		switch a {
		case "-m", "--message", "-F", "--file", "-t", "--template":
			return true
		}
		// Combined short forms: -m"msg", -Ffile, -ttemplate.
		if len(a) > 2 && (strings.HasPrefix(a, "-m") || strings.HasPrefix(a, "-F") || strings.HasPrefix(a, "-t")) {
			return true
		}
	}
	return false
}

// detectPathspec conservatively recognizes only the explicit "--" form.
func detectPathspec(args []string) []string {
	for i, a := range args {
		if a == "--" {
			return args[i+1:]
		}
	}
	return nil
}

// includesWorktree reports whether the diff scope is the working tree rather
// than the staged index.
func includesWorktree(args []string) bool {
	for _, a := range args {
		if a == "--" {
			break
		}
		switch a {
		case "-a", "--all", "--include":
			return true
		}
	}
	return false
}
