package errors

import "fmt"

// OperationError represents a failure of one step while reconciling a repository
type OperationError struct {
	Op   string // The operation being performed
	Path string // Resolved repository path, empty for run-level failures
	Err  error  // The underlying error
}

// Sentinel kinds. Match with errors.Is; only Op is compared.
var (
	ErrConfiguration     = &OperationError{Op: "configuration"}
	ErrDirectoryCreation = &OperationError{Op: "mkdir"}
	ErrRemove            = &OperationError{Op: "remove"}
	ErrClone             = &OperationError{Op: "clone"}
	ErrCheckout          = &OperationError{Op: "checkout"}
	ErrUserDeclined      = &OperationError{Op: "declined"}
	ErrManifest          = &OperationError{Op: "manifest"}
)

// Error implements the error interface
func (e *OperationError) Error() string {
	prefix := e.Op
	if e.Path != "" {
		prefix = fmt.Sprintf("%s %s", e.Op, e.Path)
	}
	if e.Err == nil {
		return prefix
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Err
}

// New creates a new OperationError
func New(op string, err error) *OperationError {
	return &OperationError{
		Op:  op,
		Err: err,
	}
}

// ForPath creates an OperationError bound to a repository path
func ForPath(op, path string, err error) *OperationError {
	return &OperationError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// Configuration wraps a fatal pre-run configuration problem
func Configuration(format string, args ...any) *OperationError {
	return New(ErrConfiguration.Op, fmt.Errorf(format, args...))
}

// Is implements error matching for OperationError
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return e.Op == t.Op
}
