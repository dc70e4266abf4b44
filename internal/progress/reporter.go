package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/NicabarNimble/go-gitmulti/internal/urlutils"
)

// Kind identifies a reconciliation event
type Kind string

const (
	KindRemoving        Kind = "removing"
	KindExistsRepo      Kind = "exists_repo"
	KindExistsNotRepo   Kind = "exists_not_repo"
	KindDeleting        Kind = "deleting"
	KindSkipped         Kind = "skipped"
	KindCloned          Kind = "cloned"
	KindCloneRetry      Kind = "clone_retry"
	KindCloneFailed     Kind = "clone_failed"
	KindCheckedOut      Kind = "checked_out"
	KindCheckoutFailed  Kind = "checkout_failed"
	KindStripped        Kind = "stripped"
	KindStripFailed     Kind = "strip_failed"
	KindDirFailed       Kind = "dir_failed"
	KindRemoveFailed    Kind = "remove_failed"
	KindManifestWritten Kind = "manifest_written"
)

// Event is one status line about a repository
type Event struct {
	Kind    Kind
	Path    string // resolved repository path, or the removed/written file
	Source  string
	Version string
	Attempt int
	Err     error
}

// Reporter receives reconciliation events
type Reporter interface {
	Report(ev Event)
}

// ConsoleReporter writes one styled line per event
type ConsoleReporter struct {
	w io.Writer

	plain   lipgloss.Style
	bold    lipgloss.Style
	ok      lipgloss.Style
	version lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	odd     lipgloss.Style
}

// NewConsoleReporter creates a reporter writing to w. Colours are chosen
// from w's terminal capabilities.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	r := lipgloss.NewRenderer(w)
	return &ConsoleReporter{
		w:       w,
		plain:   r.NewStyle(),
		bold:    r.NewStyle().Bold(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		version: r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		odd:     r.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	}
}

// Report implements Reporter
func (c *ConsoleReporter) Report(ev Event) {
	fmt.Fprintln(c.w, c.Format(ev))
}

// Banner prints a mode announcement
func (c *ConsoleReporter) Banner(text string) {
	fmt.Fprintln(c.w, c.bold.Render(text))
}

// Format renders an event as a single line
func (c *ConsoleReporter) Format(ev Event) string {
	src := urlutils.Redact(ev.Source)
	switch ev.Kind {
	case KindRemoving:
		return c.warn.Render("Removing: " + ev.Path)
	case KindExistsRepo:
		return c.ok.Render(ev.Path) + c.plain.Render(" already exists and is a Git repository")
	case KindExistsNotRepo:
		return c.odd.Render(ev.Path + " already exists and is NOT a Git repository")
	case KindDeleting:
		return c.bold.Render("Deleting " + ev.Path)
	case KindSkipped:
		if ev.Err != nil {
			return c.warn.Render(fmt.Sprintf("OK, skipping %s (%v)", ev.Path, ev.Err))
		}
		return c.ok.Render("OK, skipping " + ev.Path)
	case KindCloned:
		return c.bold.Render("cloned ") + c.ok.Render(src) + c.plain.Render(" into "+ev.Path)
	case KindCloneRetry:
		return c.warn.Render(fmt.Sprintf("error cloning %s (attempt %d), trying again: %v", src, ev.Attempt, ev.Err))
	case KindCloneFailed:
		return c.fail.Render(fmt.Sprintf("error cloning %s into %s, moving on: %v", src, ev.Path, ev.Err))
	case KindCheckedOut:
		return c.bold.Render("checked out ") + c.version.Render(ev.Version) + c.plain.Render(" in "+ev.Path)
	case KindCheckoutFailed:
		return c.fail.Render(fmt.Sprintf("there is no branch/tag named %s in %s", ev.Version, ev.Path))
	case KindStripped:
		return c.plain.Render("removing " + ev.Path)
	case KindStripFailed:
		return c.fail.Render(fmt.Sprintf("error stripping %s: %v", ev.Path, ev.Err))
	case KindDirFailed:
		return c.fail.Render(fmt.Sprintf("could not create parent directory for %s: %v", ev.Path, ev.Err))
	case KindRemoveFailed:
		return c.fail.Render(fmt.Sprintf("could not remove %s: %v", ev.Path, ev.Err))
	case KindManifestWritten:
		return c.bold.Render("wrote git-run manifest " + ev.Path)
	default:
		return c.plain.Render(fmt.Sprintf("%s %s", ev.Kind, ev.Path))
	}
}

// Recorder keeps events in memory
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

// Report implements Reporter
func (r *Recorder) Report(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, ev)
}

// Kinds returns the recorded event kinds in order
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]Kind, len(r.Events))
	for i, ev := range r.Events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// Multi fans events out to several reporters
type Multi []Reporter

// Report implements Reporter
func (m Multi) Report(ev Event) {
	for _, r := range m {
		r.Report(ev)
	}
}
