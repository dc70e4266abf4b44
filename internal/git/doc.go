// Package git provides the repository operations gitmulti needs: cloning,
// checking out a branch or tag, and recognising an existing repository.
//
// Operations are implemented with go-git, so no git binary is required.
//
// Key Components:
//
// Client: performs clone, checkout and repository detection. HTTPS sources
// are authenticated with a token when a TokenSource yields one; SSH sources
// use the running ssh-agent.
//
// Checkout resolution: a version is looked up, in order, as a local branch,
// a remote-tracking branch on origin (a local branch is created for it), a
// tag (annotated tags are peeled to their commit and checked out detached),
// and finally as any revision go-git can resolve such as a commit hash.
//
// Example Usage:
//
//	client := git.NewClient()
//	if err := client.Clone(ctx, "https://github.com/org/repo.git", "/work/repo"); err != nil {
//	    return err
//	}
//	if err := client.Checkout("/work/repo", "v1.2.0"); err != nil {
//	    // errors.Is(err, git.ErrVersionNotFound) when no such branch/tag
//	}
//
// Error Handling:
//
// Clone failures are classified into AuthError, NotFoundError and
// UnsupportedProtocolError where the cause can be recognised. A failed
// clone never leaves a partial working tree behind.
//
// Thread Safety:
//
// A Client holds no mutable state, but operating on the same path from
// several goroutines is not safe.
package git
