// Package urlutils provides helpers for the repository sources listed in a
// requirements file. Sources may be HTTPS or SSH URLs, scp-style
// "user@host:path" addresses or plain filesystem paths.
package urlutils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// ErrInvalidSource indicates that no repository name can be derived from a source
	ErrInvalidSource = errors.New("invalid repository source")

	// scp-like addresses: [user@]host:path, without a scheme
	scpRegex = regexp.MustCompile(`^(?:[A-Za-z0-9._~-]+@)?([A-Za-z0-9.-]+):(.*)$`)
)

// RepoName derives the checkout directory name from a repository source.
// The final path segment is used and cut at its first dot, a leading dot
// excepted, so
//   - https://host/org/repo.git       -> repo
//   - git@host:org/proj               -> proj
//   - /srv/git/tools.git/             -> tools
//   - https://host/user/.dotfiles.git -> .dotfiles
func RepoName(source string) (string, error) {
	s := strings.TrimRight(strings.TrimSpace(source), "/")
	if s == "" {
		return "", fmt.Errorf("%w: empty source", ErrInvalidSource)
	}

	segment := s
	if i := strings.LastIndex(s, "/"); i >= 0 {
		segment = s[i+1:]
	} else if IsSCPLike(s) {
		segment = s[strings.Index(s, ":")+1:]
	}

	if i := strings.Index(segment[min(1, len(segment)):], "."); i >= 0 {
		segment = segment[:i+1]
	}
	if segment == "" || segment == "." || segment == ".git" {
		return "", fmt.Errorf("%w: %s", ErrInvalidSource, Redact(source))
	}
	return segment, nil
}

// IsSCPLike reports whether source uses the scp-style "user@host:path" form.
func IsSCPLike(source string) bool {
	if strings.Contains(source, "://") {
		return false
	}
	m := scpRegex.FindStringSubmatch(source)
	if m == nil {
		return false
	}
	// "C:\repo" and "C:/repo" are Windows paths, not hosts
	return len(m[1]) > 1
}

// IsHTTPS reports whether source is an http(s) URL.
func IsHTTPS(source string) bool {
	return strings.HasPrefix(source, "https://") || strings.HasPrefix(source, "http://")
}

// Host returns the host component of a URL or scp-like source, or "" for local paths.
func Host(source string) string {
	if IsSCPLike(source) {
		return scpRegex.FindStringSubmatch(source)[1]
	}
	if !strings.Contains(source, "://") {
		return ""
	}
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Redact removes any embedded credentials from a URL source so it can be
// printed or logged.
func Redact(source string) string {
	if !strings.Contains(source, "://") {
		return source
	}
	u, err := url.Parse(source)
	if err != nil || u.User == nil {
		return source
	}
	u.User = nil
	return u.String()
}
