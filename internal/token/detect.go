package token

import "strings"

// Provider represents a Git provider type
type Provider string

const (
	ProviderGitHub Provider = "GITHUB"
	ProviderGitLab Provider = "GITLAB"
)

// ProviderForHost maps a source host to its token key. Unknown hosts use the
// host name itself.
func ProviderForHost(host string) Provider {
	host = strings.ToLower(host)
	switch {
	case host == "github.com", strings.HasSuffix(host, ".github.com"):
		return ProviderGitHub
	case host == "gitlab.com", strings.HasPrefix(host, "gitlab."):
		return ProviderGitLab
	default:
		return Provider(strings.ToUpper(host))
	}
}
