package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "with underlying error",
			err:      &OperationError{Op: "clone", Err: errors.New("repository not found")},
			expected: "clone: repository not found",
		},
		{
			name:     "without underlying error",
			err:      &OperationError{Op: "checkout"},
			expected: "checkout",
		},
		{
			name:     "with path",
			err:      &OperationError{Op: "mkdir", Path: "/tmp/work", Err: errors.New("permission denied")},
			expected: "mkdir /tmp/work: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("OperationError.Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	opErr := ForPath("clone", "/tmp/work/foo", underlying)

	if got := opErr.Unwrap(); got != underlying {
		t.Errorf("OperationError.Unwrap() = %v, want %v", got, underlying)
	}
	if !errors.Is(opErr, underlying) {
		t.Error("errors.Is should reach the underlying error")
	}
}

func TestNew(t *testing.T) {
	err := errors.New("network error")

	opErr := New("clone", err)

	if opErr.Op != "clone" {
		t.Errorf("New() Op = %v, want clone", opErr.Op)
	}
	if opErr.Err != err {
		t.Errorf("New() Err = %v, want %v", opErr.Err, err)
	}
}

func TestConfiguration(t *testing.T) {
	err := Configuration("entry %d: missing %q", 2, "src")

	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration kind, got %v", err)
	}
	if got := err.Error(); got != `configuration: entry 2: missing "src"` {
		t.Errorf("unexpected message %q", got)
	}
}

func TestOperationError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{
			name:     "matching kind",
			err:      ForPath("clone", "/a", errors.New("error1")),
			target:   ErrClone,
			expected: true,
		},
		{
			name:     "different kind",
			err:      ForPath("clone", "/a", errors.New("error")),
			target:   ErrCheckout,
			expected: false,
		},
		{
			name:     "wrapped",
			err:      fmt.Errorf("outer: %w", ForPath("declined", "/a", nil)),
			target:   ErrUserDeclined,
			expected: true,
		},
		{
			name:     "plain error target",
			err:      ForPath("clone", "/a", nil),
			target:   errors.New("not an operation error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.expected {
				t.Errorf("errors.Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}
