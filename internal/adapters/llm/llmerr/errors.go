// Package llmerr holds the error taxonomy shared by all provider clients
// and the retry/pipeline machinery. Clients translate their own wire-level
// failures into this package's types so that classification lives in one
// place while envelope parsing stays per provider.
package llmerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

var (
	// ErrRateLimited marks HTTP 429 class failures. Retryable.
	ErrRateLimited = errors.New("rate limited")
	// ErrAuth marks authentication failures. Never retried.
	ErrAuth = errors.New("authentication failed")
	// ErrUnknownModel marks HTTP 404 for a model identifier. Never retried.
	ErrUnknownModel = errors.New("unknown model")
	// ErrMaxRetries is returned after the retry budget is exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// StatusError is a non-2xx HTTP response from a provider, mapped to a
// human-readable cause where the status code is well known.
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

// FromStatus builds a StatusError for a provider response.
func FromStatus(provider string, code int, message string) *StatusError {
	return &StatusError{Provider: provider, Code: code, Message: message}
}

func (e *StatusError) Error() string {
	switch e.Code {
	case 429:
		return fmt.Sprintf("%s: rate limited (HTTP 429): %s", e.Provider, e.Message)
	case 401:
		return fmt.Sprintf("%s: authentication failed (HTTP 401): %s", e.Provider, e.Message)
	case 404:
		return fmt.Sprintf("%s: unknown model (HTTP 404): %s", e.Provider, e.Message)
	default:
		return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.Code, e.Message)
	}
}

// Unwrap exposes the sentinel for well-known status codes so callers can use
// errors.Is against the taxonomy instead of matching codes themselves.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case 429:
		return ErrRateLimited
	case 401:
		return ErrAuth
	case 404:
		return ErrUnknownModel
	}
	return nil
}

// Retryable classifies an error as transient (connectivity, timeout, rate
// limit, server-side 5xx) or fatal (auth, unknown model, malformed response,
// any other 4xx). Fatal errors propagate immediately so the pipeline can move
// to the next provider without burning the retry budget.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAuth) || errors.Is(err, ErrUnknownModel) {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}

	return false
}
