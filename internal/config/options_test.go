package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	gmerrors "github.com/NicabarNimble/go-gitmulti/internal/errors"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, 3, opts.MaxCloneAttempts)
	assert.Equal(t, "console", opts.LogFormat)
	assert.NotEmpty(t, opts.ManifestDir)
	assert.Equal(t, DefaultStripPatterns, opts.StripPatterns)
	assert.False(t, opts.ForceCheckout)
	assert.False(t, opts.ForceOverwrite)
	assert.False(t, opts.Strip)
	assert.False(t, opts.ManifestMode)
}

func TestMergeDefaults(t *testing.T) {
	opts := &Options{ManifestDir: "/custom", MaxCloneAttempts: 5}
	opts.MergeDefaults()

	assert.Equal(t, "/custom", opts.ManifestDir)
	assert.Equal(t, 5, opts.MaxCloneAttempts)
	assert.Equal(t, "console", opts.LogFormat)
	assert.Equal(t, DefaultStripPatterns, opts.StripPatterns)

	empty := &Options{}
	empty.MergeDefaults()
	assert.Equal(t, 3, empty.MaxCloneAttempts)
	assert.NotEmpty(t, empty.ManifestDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		opts        *Options
		expectError bool
	}{
		{
			name:        "defaults",
			opts:        DefaultOptions(),
			expectError: false,
		},
		{
			name:        "manifest mode",
			opts:        &Options{ManifestMode: true, ManifestDir: "/tmp"},
			expectError: false,
		},
		{
			name:        "strip with readme preserved",
			opts:        &Options{Strip: true, PreserveReadme: true},
			expectError: false,
		},
		{
			name:        "manifest and strip together",
			opts:        &Options{ManifestMode: true, ManifestDir: "/tmp", Strip: true},
			expectError: true,
		},
		{
			name:        "negative attempts",
			opts:        &Options{MaxCloneAttempts: -1},
			expectError: true,
		},
		{
			name:        "manifest without directory",
			opts:        &Options{ManifestMode: true},
			expectError: true,
		},
		{
			name:        "unknown log format",
			opts:        &Options{LogFormat: "xml"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, gmerrors.ErrConfiguration))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestManifestPath(t *testing.T) {
	opts := &Options{ManifestDir: filepath.Join("home", "me")}
	assert.Equal(t, filepath.Join("home", "me", ".grconfig.json"), opts.ManifestPath())
}

func TestBanners(t *testing.T) {
	assert.Empty(t, (&Options{}).Banners())

	banners := (&Options{ForceOverwrite: true, Strip: true}).Banners()
	assert.Equal(t, []string{"Force Mode Enabled", "Strip Mode Enabled"}, banners)
}
