package reconcile

import (
	"github.com/NicabarNimble/go-gitmulti/internal/manifest"
)

// Status is the final state of one repository after a run
type Status string

const (
	StatusUntouched       Status = "untouched"        // existing repository left as is
	StatusCheckedOut      Status = "checked_out"      // existing repository switched to version
	StatusCloned          Status = "cloned"           // cloned and checked out
	StatusSkipped         Status = "skipped"          // user declined deleting a non-repository directory
	StatusCloneFailed     Status = "clone_failed"     // every clone attempt failed
	StatusCheckoutFailed  Status = "checkout_failed"  // version missing; the clone is kept
	StatusDirectoryFailed Status = "directory_failed" // parent directory could not be created
	StatusRemoveFailed    Status = "remove_failed"    // existing path could not be deleted
)

// IsFailure reports whether the status counts as a failed repository
func (s Status) IsFailure() bool {
	switch s {
	case StatusCloneFailed, StatusCheckoutFailed, StatusDirectoryFailed, StatusRemoveFailed:
		return true
	}
	return false
}

// Outcome records what happened to one descriptor
type Outcome struct {
	Path     string
	Source   string
	Version  string
	Status   Status
	Err      error
	Attempts int // clone attempts made, 0 when no clone was needed

	Stripped []string // paths removed in strip mode
	StripErr error
}

// Failed reports whether the repository ended in a failure state
func (o Outcome) Failed() bool {
	return o.Status.IsFailure() || o.StripErr != nil
}

// Result is the aggregate of a run
type Result struct {
	Outcomes []Outcome

	// Manifest is nil unless manifest mode was on
	Manifest *manifest.Manifest
}

// Failed returns the outcomes that ended in failure, in declaration order
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Summary counts outcomes per status
func (r *Result) Summary() map[Status]int {
	counts := make(map[Status]int)
	for _, o := range r.Outcomes {
		counts[o.Status]++
	}
	return counts
}
