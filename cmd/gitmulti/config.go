package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NicabarNimble/go-gitmulti/internal/config"
	gmerrors "github.com/NicabarNimble/go-gitmulti/internal/errors"
)

// Flag names; also the keys in .gitmulti.yaml and, upper-cased with a
// GITMULTI_ prefix, the environment variables.
const (
	flagRequirements  = "requirements"
	flagCheckout      = "checkout"
	flagDebug         = "debug"
	flagGitRun        = "gitrun"
	flagGitRunDir     = "gitrunconfigdir"
	flagStrip         = "strip"
	flagForce         = "force"
	flagKeepReadme    = "donotstripreadme"
	flagYes           = "yes"
	flagMaxAttempts   = "max-attempts"
	flagToken         = "token"
	flagLogFormat     = "log-format"
	flagAllowFailures = "allow-failures"
	flagConfig        = "config"
)

const envPrefix = "GITMULTI"

// envFiles are loaded before flags are bound; earlier files win
var envFiles = []string{".env", ".env.local"}

// cliConfig layers flags over environment over config file over defaults
type cliConfig struct {
	v *viper.Viper
}

func newCLIConfig() *cliConfig {
	return &cliConfig{v: viper.New()}
}

func (c *cliConfig) bindFlags(cmd *cobra.Command) {
	defaults := config.DefaultOptions()
	f := cmd.Flags()
	f.StringP(flagRequirements, "r", "", "requirements file listing the repositories (required)")
	f.BoolP(flagCheckout, "c", false, "check out the requested version in repositories that already exist")
	f.BoolP(flagDebug, "d", false, "print debug output")
	f.BoolP(flagGitRun, "g", false, "write a git-run manifest grouping repositories by tag")
	f.StringP(flagGitRunDir, "p", defaults.ManifestDir, "directory the git-run manifest is written to")
	f.BoolP(flagStrip, "s", false, "strip .git and other non-essential files after cloning")
	f.BoolP(flagForce, "f", false, "delete and re-clone every repository")
	f.BoolP(flagKeepReadme, "S", false, "keep README.md when stripping")
	f.BoolP(flagYes, "y", false, "answer yes to every confirmation")
	f.Int(flagMaxAttempts, defaults.MaxCloneAttempts, "clone attempts per repository")
	f.String(flagToken, "", "token for HTTPS sources (default: GIT_TOKEN_<PROVIDER> from the environment)")
	f.String(flagLogFormat, defaults.LogFormat, "log format: console or json")
	f.Bool(flagAllowFailures, false, "exit 0 even when some repositories failed")
	f.String(flagConfig, "", "config file (default: .gitmulti.yaml in the current or home directory)")
}

// prepare layers .env files, GITMULTI_* variables and the config file under
// the flags of cmd. Flags take precedence over the environment, which takes
// precedence over the config file.
func (c *cliConfig) prepare(cmd *cobra.Command) error {
	loadEnvFiles()

	v := c.v
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return c.readConfigFile()
}

// load resolves the run options
func (c *cliConfig) load(cmd *cobra.Command) (*config.Options, error) {
	if err := c.prepare(cmd); err != nil {
		return nil, err
	}
	v := c.v

	if c.requirementsPath() == "" {
		return nil, gmerrors.Configuration("required flag %q not set", flagRequirements)
	}

	opts := &config.Options{
		ForceCheckout:    v.GetBool(flagCheckout),
		ForceOverwrite:   v.GetBool(flagForce),
		Strip:            v.GetBool(flagStrip),
		PreserveReadme:   v.GetBool(flagKeepReadme),
		ManifestMode:     v.GetBool(flagGitRun),
		ManifestDir:      v.GetString(flagGitRunDir),
		AssumeYes:        v.GetBool(flagYes),
		MaxCloneAttempts: v.GetInt(flagMaxAttempts),
		Token:            v.GetString(flagToken),
		Debug:            v.GetBool(flagDebug),
		LogFormat:        v.GetString(flagLogFormat),
	}
	opts.MergeDefaults()
	return opts, nil
}

// loadEnvFiles loads .env files into the process environment. Variables
// already set are not overridden.
func loadEnvFiles() {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
}

func (c *cliConfig) readConfigFile() error {
	v := c.v
	if file := v.GetString(flagConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return gmerrors.Configuration("failed to read config file %s: %v", file, err)
		}
		return nil
	}

	v.SetConfigName(".gitmulti")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return gmerrors.Configuration("failed to read config file: %v", err)
		}
	}
	return nil
}

func (c *cliConfig) requirementsPath() string {
	return c.v.GetString(flagRequirements)
}

func (c *cliConfig) token() string {
	return c.v.GetString(flagToken)
}

func (c *cliConfig) allowFailures() bool {
	return c.v.GetBool(flagAllowFailures)
}
