// Package reconcile brings the working directory of every declared
// repository into the state its descriptor asks for.
//
// Descriptors are processed one at a time in declaration order. Failures are
// recorded per repository and never stop the run; only an invalid
// configuration, detected before anything is touched, or a failure to write
// the manifest at the end is returned as an error.
package reconcile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/NicabarNimble/go-gitmulti/internal/config"
	"github.com/NicabarNimble/go-gitmulti/internal/errors"
	"github.com/NicabarNimble/go-gitmulti/internal/manifest"
	"github.com/NicabarNimble/go-gitmulti/internal/progress"
	"github.com/NicabarNimble/go-gitmulti/internal/prompt"
	"github.com/NicabarNimble/go-gitmulti/internal/requirements"
	"github.com/NicabarNimble/go-gitmulti/internal/retry"
	"github.com/NicabarNimble/go-gitmulti/internal/strip"
	"github.com/NicabarNimble/go-gitmulti/internal/urlutils"
)

// DeleteQuestion is asked before replacing a directory that is not a repository
const DeleteQuestion = "Shall I delete this directory and clone to it?"

// GitClient is the repository capability the reconciler needs
type GitClient interface {
	Clone(ctx context.Context, source, path string) error
	Checkout(path, version string) error
	IsRepository(path string) bool
}

// Reconciler runs the per-repository decision procedure
type Reconciler struct {
	Options  *config.Options
	Git      GitClient
	Confirm  prompt.Confirmer
	Reporter progress.Reporter
	Logger   zerolog.Logger
	Retry    retry.Policy

	mkdirAll  func(path string, perm os.FileMode) error
	removeAll func(path string) error
}

// New creates a Reconciler. A nil confirmer asks on the terminal and a nil
// reporter discards events.
func New(opts *config.Options, git GitClient, confirm prompt.Confirmer, reporter progress.Reporter, logger zerolog.Logger) *Reconciler {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	opts.MergeDefaults()
	if confirm == nil {
		if opts.AssumeYes {
			confirm = prompt.AssumeYes{}
		} else {
			confirm = prompt.NewTerminal(os.Stdin, os.Stdout)
		}
	}
	if reporter == nil {
		reporter = progress.Multi{}
	}
	return &Reconciler{
		Options:   opts,
		Git:       git,
		Confirm:   confirm,
		Reporter:  reporter,
		Logger:    logger,
		Retry:     retry.NewPolicy(opts.MaxCloneAttempts, 0),
		mkdirAll:  os.MkdirAll,
		removeAll: os.RemoveAll,
	}
}

// Run reconciles every descriptor in order and writes the manifest in
// manifest mode. Per-repository failures are reported in the Result.
func (r *Reconciler) Run(ctx context.Context, descs []requirements.Descriptor) (*Result, error) {
	if err := r.Options.Validate(); err != nil {
		return nil, err
	}
	if err := requirements.ValidateAll(descs); err != nil {
		return nil, err
	}
	if err := r.Retry.Validate(); err != nil {
		return nil, errors.Configuration("retry policy: %v", err)
	}

	res := &Result{}
	if r.Options.ManifestMode {
		res.Manifest = manifest.New()
	}

	for i, d := range descs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		r.Logger.Debug().
			Int("entry", i+1).
			Str("src", urlutils.Redact(d.Source)).
			Str("dest", d.Dest).
			Str("version", d.Version).
			Str("name", d.Name).
			Strs("tags", d.Tags).
			Msg("descriptor")
		res.Outcomes = append(res.Outcomes, r.reconcile(ctx, d, res.Manifest))
	}

	if res.Manifest != nil {
		path := r.Options.ManifestPath()
		if err := res.Manifest.Write(path); err != nil {
			return res, errors.ForPath(errors.ErrManifest.Op, path, err)
		}
		r.Reporter.Report(progress.Event{Kind: progress.KindManifestWritten, Path: path})
	}
	return res, nil
}

func (r *Reconciler) reconcile(ctx context.Context, d requirements.Descriptor, m *manifest.Manifest) Outcome {
	path, _ := d.ResolvedPath()
	out := Outcome{Path: path, Source: d.Source, Version: d.Version}
	log := r.Logger.With().Str("repository", path).Logger()

	// recorded before any step that can fail
	if m != nil {
		m.Record(d.Tags, path)
	}

	parent := filepath.Dir(path)
	if _, err := os.Stat(parent); os.IsNotExist(err) {
		log.Debug().Str("dir", parent).Msg("parent does not exist, creating")
	}
	if err := r.mkdirAll(parent, 0o755); err != nil {
		out.Status = StatusDirectoryFailed
		out.Err = errors.ForPath(errors.ErrDirectoryCreation.Op, parent, err)
		r.report(progress.KindDirFailed, out, 0)
		return out
	}

	switch {
	case r.Options.ForceOverwrite:
		r.report(progress.KindRemoving, out, 0)
		if err := r.removeAll(path); err != nil && !os.IsNotExist(err) {
			out.Status = StatusRemoveFailed
			out.Err = errors.ForPath(errors.ErrRemove.Op, path, err)
			r.report(progress.KindRemoveFailed, out, 0)
			return out
		}
		r.cloneAndCheckout(ctx, &out)

	case exists(path):
		if r.Git.IsRepository(path) {
			out.Status = StatusUntouched
			r.report(progress.KindExistsRepo, out, 0)
			if r.Options.ForceCheckout {
				r.checkout(&out, StatusCheckedOut)
			}
			break
		}

		r.report(progress.KindExistsNotRepo, out, 0)
		ok, err := r.Confirm.Confirm(DeleteQuestion)
		if err != nil {
			log.Error().Err(err).Msg("no confirmation, keeping directory")
		}
		if !ok {
			out.Status = StatusSkipped
			out.Err = errors.ForPath(errors.ErrUserDeclined.Op, path, err)
			r.report(progress.KindSkipped, out, 0)
			return out
		}
		r.report(progress.KindDeleting, out, 0)
		if err := r.removeAll(path); err != nil {
			out.Status = StatusRemoveFailed
			out.Err = errors.ForPath(errors.ErrRemove.Op, path, err)
			r.report(progress.KindRemoveFailed, out, 0)
			return out
		}
		r.cloneAndCheckout(ctx, &out)

	default:
		r.cloneAndCheckout(ctx, &out)
	}

	if out.Status == StatusCloneFailed {
		return out
	}
	if r.Options.Strip {
		r.strip(&out)
	}
	return out
}

func (r *Reconciler) cloneAndCheckout(ctx context.Context, out *Outcome) {
	err := r.Retry.Do(ctx, func(attempt int) error {
		out.Attempts = attempt
		err := r.Git.Clone(ctx, out.Source, out.Path)
		if err != nil && attempt < r.Retry.MaxAttempts {
			ev := r.event(progress.KindCloneRetry, *out, attempt)
			ev.Err = err
			r.Reporter.Report(ev)
		}
		return err
	})
	if err != nil {
		out.Status = StatusCloneFailed
		out.Err = errors.ForPath(errors.ErrClone.Op, out.Path, err)
		r.report(progress.KindCloneFailed, *out, out.Attempts)
		return
	}

	out.Status = StatusCloned
	r.report(progress.KindCloned, *out, out.Attempts)
	r.checkout(out, StatusCloned)
}

// checkout switches out.Path to out.Version, setting success on completion.
// A missing version leaves the tree where it is.
func (r *Reconciler) checkout(out *Outcome, success Status) {
	if err := r.Git.Checkout(out.Path, out.Version); err != nil {
		out.Status = StatusCheckoutFailed
		out.Err = errors.ForPath(errors.ErrCheckout.Op, out.Path, err)
		r.report(progress.KindCheckoutFailed, *out, 0)
		return
	}
	out.Status = success
	r.report(progress.KindCheckedOut, *out, 0)
}

func (r *Reconciler) strip(out *Outcome) {
	removed, err := strip.Strip(out.Path, strip.Options{
		Patterns:       r.Options.StripPatterns,
		PreserveReadme: r.Options.PreserveReadme,
		OnRemove: func(p string) {
			r.Reporter.Report(progress.Event{Kind: progress.KindStripped, Path: p, Source: out.Source})
		},
	})
	out.Stripped = removed
	if err != nil {
		out.StripErr = err
		ev := r.event(progress.KindStripFailed, *out, 0)
		ev.Err = err
		r.Reporter.Report(ev)
	}
}

func (r *Reconciler) event(kind progress.Kind, out Outcome, attempt int) progress.Event {
	return progress.Event{
		Kind:    kind,
		Path:    out.Path,
		Source:  out.Source,
		Version: out.Version,
		Attempt: attempt,
		Err:     unwrapOp(out.Err),
	}
}

func (r *Reconciler) report(kind progress.Kind, out Outcome, attempt int) {
	r.Reporter.Report(r.event(kind, out, attempt))
}

// unwrapOp drops the OperationError prefix; console lines already say what failed.
func unwrapOp(err error) error {
	if op, ok := err.(*errors.OperationError); ok {
		return op.Err
	}
	return err
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
