package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// AuthError is a clone rejected for missing or wrong credentials
type AuthError struct {
	URL string
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("authentication failed for %s: %v", e.URL, e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// NotFoundError is a clone of a repository the remote does not have
type NotFoundError struct {
	URL string
	Err error
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("repository %s not found: %v", e.URL, e.Err) }
func (e *NotFoundError) Unwrap() error { return e.Err }

// UnsupportedProtocolError is a source whose scheme go-git cannot speak
type UnsupportedProtocolError struct {
	URL string
	Err error
}

func (e *UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("unsupported protocol for %s: %v", e.URL, e.Err)
}
func (e *UnsupportedProtocolError) Unwrap() error { return e.Err }

// classifyCloneError wraps go-git clone failures into typed errors when the cause is recognisable.
func classifyCloneError(url string, err error) error {
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return &AuthError{URL: url, Err: err}
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return &NotFoundError{URL: url, Err: err}
	}

	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "auth fail") || strings.Contains(l, "invalid username or password"):
		return &AuthError{URL: url, Err: err}
	case strings.Contains(l, "not found") || strings.Contains(l, "repository does not exist"):
		return &NotFoundError{URL: url, Err: err}
	case strings.Contains(l, "unsupported protocol") || strings.Contains(l, "protocol not supported"):
		return &UnsupportedProtocolError{URL: url, Err: err}
	}
	return fmt.Errorf("failed to clone repository %s: %w", url, err)
}
