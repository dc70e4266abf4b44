package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NicabarNimble/go-gitmulti/internal/errors"
)

const (
	// ManifestFileName is the git-run tag file written in manifest mode
	ManifestFileName = ".grconfig.json"

	// PreservedReadme is the only *.md file kept when README preservation is on
	PreservedReadme = "README.md"

	defaultMaxCloneAttempts = 3
	defaultLogFormat        = "console"
)

// DefaultStripPatterns are removed from working trees in strip mode.
// Patterns match file and directory base names.
var DefaultStripPatterns = []string{
	".git*",
	"*.md",
	".yamllint",
	".ansible-lint",
}

// Options holds the run mode for a single invocation. It is built once from
// parsed flags and passed to the reconciler.
type Options struct {
	ForceCheckout    bool
	ForceOverwrite   bool
	Strip            bool
	PreserveReadme   bool
	ManifestMode     bool
	ManifestDir      string
	AssumeYes        bool
	MaxCloneAttempts int
	Token            string
	Debug            bool
	LogFormat        string

	StripPatterns []string
}

// DefaultOptions provides default option values
func DefaultOptions() *Options {
	return &Options{
		ManifestDir:      homeDir(),
		MaxCloneAttempts: defaultMaxCloneAttempts,
		LogFormat:        defaultLogFormat,
		StripPatterns:    append([]string(nil), DefaultStripPatterns...),
	}
}

// MergeDefaults fills unset fields with default values
func (o *Options) MergeDefaults() {
	defaults := DefaultOptions()
	if o.ManifestDir == "" {
		o.ManifestDir = defaults.ManifestDir
	}
	if o.MaxCloneAttempts == 0 {
		o.MaxCloneAttempts = defaults.MaxCloneAttempts
	}
	if o.LogFormat == "" {
		o.LogFormat = defaults.LogFormat
	}
	if o.StripPatterns == nil {
		o.StripPatterns = defaults.StripPatterns
	}
}

// Validate rejects self-contradictory option sets before any repository is touched
func (o *Options) Validate() error {
	if o.ManifestMode && o.Strip {
		return errors.Configuration("it doesn't make sense to produce a git-run manifest and strip .git files from your repos")
	}
	if o.MaxCloneAttempts < 0 {
		return errors.Configuration("max clone attempts cannot be negative")
	}
	if o.ManifestMode && o.ManifestDir == "" {
		return errors.Configuration("manifest output directory is required in manifest mode")
	}
	switch o.LogFormat {
	case "", "console", "json":
	default:
		return errors.Configuration("unknown log format %q", o.LogFormat)
	}
	return nil
}

// ManifestPath returns the file the manifest is written to
func (o *Options) ManifestPath() string {
	return filepath.Join(o.ManifestDir, ManifestFileName)
}

// Banners returns the mode announcements printed before a run
func (o *Options) Banners() []string {
	var out []string
	if o.ForceOverwrite {
		out = append(out, "Force Mode Enabled")
	}
	if o.Strip {
		out = append(out, "Strip Mode Enabled")
	}
	if o.ManifestMode {
		out = append(out, fmt.Sprintf("Manifest Mode Enabled (%s)", o.ManifestPath()))
	}
	return out
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
