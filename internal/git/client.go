package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// ErrVersionNotFound indicates that a branch/tag does not exist in a repository
var ErrVersionNotFound = errors.New("no branch or tag with that name")

// ErrInvalidOptions indicates that the clone arguments are invalid
var ErrInvalidOptions = errors.New("invalid clone options")

// TokenSource provides the HTTPS token for a source, "" for none
type TokenSource interface {
	ForSource(source string) (string, error)
}

// Client handles Git operations
type Client struct {
	// Progress receives the remote's clone progress; nil keeps clones quiet
	Progress io.Writer

	// Tokens authenticates HTTPS sources; nil means anonymous
	Tokens TokenSource
}

// NewClient creates a quiet, anonymous client
func NewClient() *Client {
	return &Client{}
}

// plainClone is a variable so it can be replaced in tests
var plainClone = git.PlainCloneContext

// Clone clones source into path. path must not hold a repository.
func (c *Client) Clone(ctx context.Context, source, path string) error {
	if source == "" || path == "" {
		return fmt.Errorf("%w: source and path must be specified", ErrInvalidOptions)
	}

	opts := &git.CloneOptions{URL: source}
	if c.Progress != nil {
		opts.Progress = c.Progress
	}
	auth, err := c.authFor(source)
	if err != nil {
		return fmt.Errorf("failed to setup authentication: %w", err)
	}
	opts.Auth = auth

	if _, err := plainClone(ctx, path, false, opts); err != nil {
		_ = os.RemoveAll(path)
		return classifyCloneError(source, err)
	}
	return nil
}

func (c *Client) authFor(source string) (transport.AuthMethod, error) {
	if c.Tokens == nil {
		return nil, nil
	}
	tok, err := c.Tokens.ForSource(source)
	if err != nil || tok == "" {
		return nil, err
	}
	return &http.BasicAuth{
		Username: "token",
		Password: tok,
	}, nil
}

// IsRepository reports whether path itself holds a valid repository
func (c *Client) IsRepository(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// Checkout switches the working tree at path to version
func (c *Client) Checkout(path, version string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("open repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}

	opts, err := resolveVersion(repo, version)
	if err != nil {
		return err
	}
	if err := wt.Checkout(opts); err != nil {
		return fmt.Errorf("checkout %s: %w", version, err)
	}
	return nil
}

// resolveVersion maps a branch/tag/revision name to checkout options
func resolveVersion(repo *git.Repository, version string) (*git.CheckoutOptions, error) {
	local := plumbing.NewBranchReferenceName(version)
	if _, err := repo.Reference(local, true); err == nil {
		return &git.CheckoutOptions{Branch: local}, nil
	}

	if ref, err := repo.Reference(plumbing.NewRemoteReferenceName(git.DefaultRemoteName, version), true); err == nil {
		return &git.CheckoutOptions{Branch: local, Hash: ref.Hash(), Create: true}, nil
	}

	if ref, err := repo.Tag(version); err == nil {
		hash := ref.Hash()
		if tag, terr := repo.TagObject(hash); terr == nil {
			commit, cerr := tag.Commit()
			if cerr != nil {
				return nil, fmt.Errorf("tag %s: %w", version, cerr)
			}
			hash = commit.Hash
		}
		return &git.CheckoutOptions{Hash: hash}, nil
	}

	if hash, err := repo.ResolveRevision(plumbing.Revision(version)); err == nil {
		return &git.CheckoutOptions{Hash: *hash}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, version)
}
