package urlutils

import (
	"errors"
	"testing"
)

func TestRepoName(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantErr error
	}{
		{name: "https with .git", source: "https://example.com/org/foo.git", want: "foo"},
		{name: "https without suffix", source: "https://github.com/owner/repo", want: "repo"},
		{name: "trailing slash", source: "https://github.com/owner/repo/", want: "repo"},
		{name: "scp-like", source: "git@host:org/proj", want: "proj"},
		{name: "scp-like without directory", source: "git@host:proj.git", want: "proj"},
		{name: "ssh url", source: "ssh://git@host:2222/org/role.git", want: "role"},
		{name: "local path", source: "/srv/git/tools.git", want: "tools"},
		{name: "cut at first dot", source: "https://host/org/ansible.role.git", want: "ansible"},
		{name: "leading dot", source: "https://example.com/user/.dotfiles.git", want: ".dotfiles"},
		{name: "leading dot without suffix", source: "git@host:user/.vim", want: ".vim"},
		{name: "leading dot then cut", source: "/srv/git/.config.d.git", want: ".config"},
		{name: "empty", source: "", wantErr: ErrInvalidSource},
		{name: "dot segment", source: "https://host/org/..", wantErr: ErrInvalidSource},
		{name: "hidden segment", source: "https://host/org/.git", wantErr: ErrInvalidSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepoName(tt.source)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RepoName(%q) error = %v, want %v", tt.source, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RepoName(%q) unexpected error: %v", tt.source, err)
			}
			if got != tt.want {
				t.Errorf("RepoName(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestIsSCPLike(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"git@github.com:org/repo.git", true},
		{"github.com:org/repo.git", true},
		{"https://github.com/org/repo.git", false},
		{"ssh://git@github.com/org/repo.git", false},
		{"/srv/git/repo", false},
		{"C:/git/repo", false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := IsSCPLike(tt.source); got != tt.want {
				t.Errorf("IsSCPLike(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestHost(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"https://github.com/org/repo.git", "github.com"},
		{"https://user:pw@gitlab.example.com:8443/org/repo", "gitlab.example.com"},
		{"git@github.com:org/repo.git", "github.com"},
		{"/srv/git/repo", ""},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := Host(tt.source); got != tt.want {
				t.Errorf("Host(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if got := Redact("https://token@github.com/org/repo.git"); got != "https://github.com/org/repo.git" {
		t.Errorf("Redact() = %q", got)
	}
	if got := Redact("git@github.com:org/repo.git"); got != "git@github.com:org/repo.git" {
		t.Errorf("Redact() changed scp source: %q", got)
	}
}
