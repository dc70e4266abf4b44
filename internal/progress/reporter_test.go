package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleReporterFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleReporter(&buf)

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "exists repo",
			ev:   Event{Kind: KindExistsRepo, Path: "/tmp/work/foo"},
			want: "/tmp/work/foo already exists and is a Git repository",
		},
		{
			name: "exists not repo",
			ev:   Event{Kind: KindExistsNotRepo, Path: "/tmp/work/foo"},
			want: "/tmp/work/foo already exists and is NOT a Git repository",
		},
		{
			name: "cloned hides credentials",
			ev:   Event{Kind: KindCloned, Path: "/tmp/work/foo", Source: "https://tok@example.com/org/foo.git"},
			want: "cloned https://example.com/org/foo.git into /tmp/work/foo",
		},
		{
			name: "checked out",
			ev:   Event{Kind: KindCheckedOut, Path: "/tmp/work/foo", Version: "main"},
			want: "checked out main in /tmp/work/foo",
		},
		{
			name: "checkout failed",
			ev:   Event{Kind: KindCheckoutFailed, Path: "/tmp/work/foo", Version: "v9"},
			want: "there is no branch/tag named v9 in /tmp/work/foo",
		},
		{
			name: "clone retry",
			ev:   Event{Kind: KindCloneRetry, Source: "https://example.com/org/foo.git", Attempt: 1, Err: errors.New("boom")},
			want: "error cloning https://example.com/org/foo.git (attempt 1), trying again: boom",
		},
		{
			name: "skipped",
			ev:   Event{Kind: KindSkipped, Path: "/tmp/work/foo"},
			want: "OK, skipping /tmp/work/foo",
		},
		{
			name: "skipped without answer",
			ev:   Event{Kind: KindSkipped, Path: "/tmp/work/foo", Err: errors.New("no answer given")},
			want: "OK, skipping /tmp/work/foo (no answer given)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Format(tt.ev))
		})
	}
}

func TestConsoleReporterReport(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleReporter(&buf)

	c.Banner("Strip Mode Enabled")
	c.Report(Event{Kind: KindStripped, Path: "/tmp/work/foo/.git"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"Strip Mode Enabled", "removing /tmp/work/foo/.git"}, lines)
}

func TestRecorderAndMulti(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, b}

	m.Report(Event{Kind: KindCloned})
	m.Report(Event{Kind: KindCheckedOut})

	assert.Equal(t, []Kind{KindCloned, KindCheckedOut}, a.Kinds())
	assert.Equal(t, a.Kinds(), b.Kinds())
}
