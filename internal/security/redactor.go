package security

import "regexp"

// Placeholder replaces every matched secret.
const Placeholder = "[REDACTED]"

// Redactor implements ports.Redactor with built-in patterns.
//
// Redaction is best-effort: it keeps obvious credentials out of outbound
// prompts but is not a security boundary. Rules run in a fixed order and a
// later rule never un-redacts what an earlier one replaced, so applying the
// redactor twice is a no-op.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor creates a new redactor with default patterns.
func NewRedactor() *Redactor {
	patterns := []*regexp.Regexp{
		// PEM private key blocks, header through footer
		regexp.MustCompile(`(?s)-----BEGIN (?:RSA |EC |OPENSSH |DSA )?PRIVATE KEY-----.*?-----END .*?PRIVATE KEY-----`),
		// AWS access key IDs (long-term and temporary)
		regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
		regexp.MustCompile(`\bASIA[0-9A-Z]{16}\b`),
		// OpenAI-style keys
		regexp.MustCompile(`\bsk-[A-Za-z0-9]{20,}\b`),
		// GitHub tokens
		regexp.MustCompile(`\bghp_[A-Za-z0-9]{20,}\b`),
		regexp.MustCompile(`\bgithub_pat_[A-Za-z0-9_]{20,}\b`),
		// Google API keys
		regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{30,}\b`),
		// Bearer tokens in headers
		regexp.MustCompile(`(?i)(?:authorization|auth|token):\s*Bearer\s+[a-zA-Z0-9._\-]+`),
		// key: "value" / key = "value" assignments with a denylisted key name
		regexp.MustCompile(`(?i)\b(?:api[_-]?key|secret|token|password)\b\s*[:=]\s*['"][^'"\n]{6,}['"]`),
	}
	return &Redactor{patterns: patterns}
}

// Redact replaces every match of every rule with the placeholder. It is
// total over any input and has no side effects.
func (r *Redactor) Redact(text string) string {
	result := text
	for _, pattern := range r.patterns {
		result = pattern.ReplaceAllString(result, Placeholder)
	}
	return result
}

// RedactLog is more aggressive, also removing IP addresses and emails.
func (r *Redactor) RedactLog(text string) string {
	result := r.Redact(text)
	result = ipPattern.ReplaceAllString(result, "[IP]")
	result = emailPattern.ReplaceAllString(result, "[EMAIL]")
	return result
}

// Contains checks if text matches any sensitive pattern (for warnings).
func (r *Redactor) Contains(text string) bool {
	for _, pattern := range r.patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

var (
	ipPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
)
