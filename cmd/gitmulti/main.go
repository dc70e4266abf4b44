// Package gitmulti provides a CLI tool for cloning and updating the Git
// repositories listed in a requirements file
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NicabarNimble/go-gitmulti/internal/config"
	gmerrors "github.com/NicabarNimble/go-gitmulti/internal/errors"
	"github.com/NicabarNimble/go-gitmulti/internal/git"
	"github.com/NicabarNimble/go-gitmulti/internal/logging"
	"github.com/NicabarNimble/go-gitmulti/internal/progress"
	"github.com/NicabarNimble/go-gitmulti/internal/prompt"
	"github.com/NicabarNimble/go-gitmulti/internal/reconcile"
	"github.com/NicabarNimble/go-gitmulti/internal/requirements"
	"github.com/NicabarNimble/go-gitmulti/internal/token"
)

// Exit codes
const (
	exitOK          = 0
	exitConfig      = 1
	exitRepoFailure = 2
)

// version is set at build time
var version = "dev"

var (
	// newGitClient allows for mocking in tests
	newGitClient = func(opts *config.Options, progressOut io.Writer) reconcile.GitClient {
		client := git.NewClient()
		client.Tokens = token.NewResolver(opts.Token)
		if opts.Debug {
			client.Progress = progressOut
		}
		return client
	}
	// loadRequirements allows for mocking in tests
	loadRequirements = requirements.Load
)

// exitError carries the process exit status out of RunE
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func newRootCmd(s streams) *cobra.Command {
	cfg := newCLIConfig()

	cmd := &cobra.Command{
		Use:   "gitmulti -r requirements.yml",
		Short: "Clone and update many Git repositories from a requirements file",
		Long: `A tool for cloning a list of Git repositories into place and checking out
the requested branch or tag in each of them.

Each requirements entry names a source, a destination directory, a version
and optionally a directory name and tags:

  - src: https://github.com/org/role.git
    dest: ~/roles
    version: v1.2.0
    tags: [web]

Example usage:
  gitmulti -r requirements.yml
  gitmulti -r requirements.yml --checkout
  gitmulti -r requirements.yml --gitrun -p ~/.config`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := cfg.load(cmd)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			return run(cmd.Context(), opts, cfg, s)
		},
	}
	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)
	cfg.bindFlags(cmd)
	cmd.AddCommand(newTokenCmd(s))
	return cmd
}

// run loads the requirements and reconciles every repository
func run(ctx context.Context, opts *config.Options, cfg *cliConfig, s streams) error {
	logCfg := logging.ForDebug(opts.Debug, opts.LogFormat)
	logCfg.Output = s.err
	logger := logging.New(logCfg)

	if err := opts.Validate(); err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	path := cfg.requirementsPath()
	logger.Debug().Str("file", path).Msg("loading requirements")
	descs, err := loadRequirements(path)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	reporter := progress.NewConsoleReporter(s.out)
	for _, banner := range opts.Banners() {
		reporter.Banner(banner)
	}

	var confirm prompt.Confirmer = prompt.NewTerminal(s.in, s.out)
	if opts.AssumeYes {
		confirm = prompt.AssumeYes{}
	}

	r := reconcile.New(opts, newGitClient(opts, s.err), confirm, reporter, logger)
	res, err := r.Run(ctx, descs)
	if res != nil {
		fmt.Fprintln(s.out, summarize(res))
		reportFailures(s.err, res)
	}
	if err != nil {
		if errors.Is(err, gmerrors.ErrConfiguration) || errors.Is(err, gmerrors.ErrManifest) {
			return &exitError{code: exitConfig, err: err}
		}
		return &exitError{code: exitRepoFailure, err: err}
	}

	if n := len(res.Failed()); n > 0 && !cfg.allowFailures() {
		return &exitError{code: exitRepoFailure, err: fmt.Errorf("%d of %d repositories failed", n, len(res.Outcomes))}
	}
	return nil
}

// summarize renders the final one-line tally
func summarize(res *reconcile.Result) string {
	counts := res.Summary()
	statuses := make([]string, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)

	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, fmt.Sprintf("%d %s", counts[reconcile.Status(status)], strings.ReplaceAll(status, "_", " ")))
	}
	line := fmt.Sprintf("%d repositories", len(res.Outcomes))
	if len(parts) > 0 {
		line += ": " + strings.Join(parts, ", ")
	}
	return line
}

func reportFailures(w io.Writer, res *reconcile.Result) {
	for _, o := range res.Failed() {
		err := o.Err
		if err == nil {
			err = o.StripErr
		}
		fmt.Fprintf(w, "failed: %s: %v\n", o.Path, err)
	}
}

// execute runs the root command and maps the result to an exit code
func execute(ctx context.Context, args []string, s streams) int {
	cmd := newRootCmd(s)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(s.err, "Error: %v\n", err)
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	os.Exit(code)
}
