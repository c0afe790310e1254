package domain

import "unicode/utf8"

// DefaultDiffCap bounds how much diff text is sent to a provider.
const DefaultDiffCap = 14000

// TruncationMarker is appended whenever the diff is cut at the cap. The cut
// must stay visible to anything consuming the context.
const TruncationMarker = "\n\n[DIFF TRUNCATED]\n"

// ChangeContext is the assembled, redacted, size-bounded description of the
// pending change set. It is built once per invocation and consumed once by
// the prompt builder.
type ChangeContext struct {
	FileSummary string // name+status summary of affected files
	Status      string // porcelain status snapshot, informational
	Diff        string // redacted diff, possibly truncated
	Truncated   bool
}

// CapDiff truncates diff to at most maxChars bytes and appends the
// truncation marker. Diffs at or under the cap pass through verbatim. The
// cut backs off to a rune boundary so the truncated text stays valid UTF-8.
func CapDiff(diff string, maxChars int) (string, bool) {
	if maxChars <= 0 {
		maxChars = DefaultDiffCap
	}
	if len(diff) <= maxChars {
		return diff, false
	}

	cut := maxChars
	for cut > 0 && !utf8.RuneStart(diff[cut]) {
		cut--
	}
	return diff[:cut] + TruncationMarker, true
}

// Render assembles the context into one labeled text block, in fixed order:
// file summary, status snapshot, diff.
func (c ChangeContext) Render() string {
	summary := c.FileSummary
	if summary == "" {
		summary = "(none)"
	}
	status := c.Status
	if status == "" {
		status = "(clean or not available)"
	}

	return "Staged/selected file summary (name-status):\n" +
		summary + "\n\n" +
		"Repo status (porcelain):\n" +
		status + "\n\n" +
		"Diff of what will be committed:\n" +
		c.Diff + "\n"
}
