package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NicabarNimble/go-gitmulti/internal/requirements"
	"github.com/NicabarNimble/go-gitmulti/internal/token"
	"github.com/NicabarNimble/go-gitmulti/internal/urlutils"
)

var errTokenProblems = errors.New("some sources have unusable tokens")

// newTokenCmd reports which credentials a run would use, without printing them
func newTokenCmd(s streams) *cobra.Command {
	cfg := newCLIConfig()

	cmd := &cobra.Command{
		Use:   "token [source...]",
		Short: "Show which token each HTTPS source authenticates with",
		Long: `Checks the token that would be used to authenticate each source: --token
(or GITMULTI_TOKEN) when given, else the GIT_TOKEN_<PROVIDER> environment
variable, .env files included. Sources come from the arguments or from a
requirements file. Token values are never printed.

Example usage:
  gitmulti token https://github.com/org/repo.git
  gitmulti token -r requirements.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.prepare(cmd); err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			sources := args
			if reqFile := cfg.requirementsPath(); len(args) == 0 && reqFile != "" {
				descs, err := loadRequirements(reqFile)
				if err != nil {
					return &exitError{code: exitConfig, err: err}
				}
				sources = append(sources, sourcesOf(descs)...)
			}
			if len(sources) == 0 {
				return &exitError{code: exitConfig, err: errors.New("no sources given")}
			}
			if err := checkTokens(s, token.NewResolver(cfg.token()), sources); err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringP(flagRequirements, "r", "", "requirements file to read sources from when no sources are given")
	f.String(flagToken, "", "token for HTTPS sources")
	f.String(flagConfig, "", "config file (default: .gitmulti.yaml in the current or home directory)")
	return cmd
}

func checkTokens(s streams, resolver *token.Resolver, sources []string) error {
	failed := false
	seen := make(map[string]bool)
	for _, src := range sources {
		if seen[src] {
			continue
		}
		seen[src] = true

		shown := urlutils.Redact(src)
		if !urlutils.IsHTTPS(src) {
			fmt.Fprintf(s.out, "%s: no token used\n", shown)
			continue
		}
		key := resolver.Env.FormatEnvKey(string(token.ProviderForHost(urlutils.Host(src))))
		if resolver.Explicit != "" {
			key = "--token"
		}
		tok, err := resolver.ForSource(src)
		switch {
		case err != nil:
			failed = true
			fmt.Fprintf(s.out, "%s: %v\n", shown, err)
		case tok == "":
			fmt.Fprintf(s.out, "%s: %s not set, cloning anonymously\n", shown, key)
		default:
			fmt.Fprintf(s.out, "%s: using %s\n", shown, key)
		}
	}
	if failed {
		return errTokenProblems
	}
	return nil
}

// sourcesOf lists descriptor sources in order
func sourcesOf(descs []requirements.Descriptor) []string {
	out := make([]string, 0, len(descs))
	for _, d := range descs {
		out = append(out, d.Source)
	}
	return out
}
