package domain

import (
	"errors"
	"regexp"
	"strings"
)

// SubjectLimit is the maximum subject line length in characters.
const SubjectLimit = 72

// ErrEmptyMessage indicates the model output contained no usable text after
// normalization.
var ErrEmptyMessage = errors.New("model returned no usable message text")

// Message is a normalized two-part commit message: exactly one subject line
// and an optional multi-line body.
type Message struct {
	Subject string
	Body    string
}

var (
	leadingFence  = regexp.MustCompile("^\\s*```[^\n]*\n")
	trailingFence = regexp.MustCompile("\n\\s*```\\s*$")
)

// NormalizeMessage converts raw model output into a well-formed Message.
//
// Models sometimes wrap output in a fenced code block or quotes despite
// instructions, so one wrapper layer of each is stripped. The subject is
// clipped to SubjectLimit characters at the last word boundary within the
// limit, then trailing punctuation left by the cut is trimmed.
func NormalizeMessage(raw string) (Message, error) {
	s := strings.TrimSpace(raw)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, `'`)
	s = strings.TrimSpace(s)

	if s == "" {
		return Message{}, ErrEmptyMessage
	}

	lines := strings.Split(s, "\n")
	subject := clipSubject(strings.TrimSpace(lines[0]))
	if subject == "" {
		return Message{}, ErrEmptyMessage
	}

	body := ""
	if len(lines) > 1 {
		body = strings.Join(lines[1:], "\n")
		body = strings.TrimLeft(body, "\n")
		body = strings.TrimRight(body, " \t\n")
	}

	return Message{Subject: subject, Body: body}, nil
}

// clipSubject enforces SubjectLimit, preferring a word-boundary cut.
func clipSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) <= SubjectLimit {
		return subject
	}

	cut := string(runes[:SubjectLimit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:-")
}

// String renders the message as it will appear in the commit: the subject
// alone, or subject, blank line, body.
func (m Message) String() string {
	if m.Body == "" {
		return m.Subject
	}
	return m.Subject + "\n\n" + m.Body
}

// CommitArgs returns the message-carrying tokens appended to the git commit
// invocation.
func (m Message) CommitArgs() []string {
	args := []string{"-m", m.Subject}
	if m.Body != "" {
		args = append(args, "-m", m.Body)
	}
	return args
}
