// Package requirements loads the list of repositories to manage from a YAML
// requirements file.
//
// A requirements file is a sequence of entries:
//
//	- src: https://github.com/org/role.git
//	  dest: ~/work/roles
//	  version: v1.2.0
//	  name: custom-dir   # optional
//	  tags: [ansible]    # optional, used in manifest mode
package requirements

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NicabarNimble/go-gitmulti/internal/errors"
	"github.com/NicabarNimble/go-gitmulti/internal/urlutils"
)

// Descriptor is one declared repository
type Descriptor struct {
	Source  string   `yaml:"src"`
	Dest    string   `yaml:"dest"`
	Version string   `yaml:"version"`
	Name    string   `yaml:"name,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
}

// Load reads and parses a requirements file
func Load(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read requirements file: %w", err)
	}

	descs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse requirements file %s: %w", path, err)
	}
	return descs, nil
}

// Parse decodes a YAML list of descriptors
func Parse(data []byte) ([]Descriptor, error) {
	var descs []Descriptor
	if err := yaml.Unmarshal(data, &descs); err != nil {
		return nil, err
	}
	for i := range descs {
		if descs[i].Tags == nil {
			descs[i].Tags = []string{}
		}
	}
	return descs, nil
}

// Validate checks that the required fields are present
func (d Descriptor) Validate() error {
	missing := d.missingFields()
	if len(missing) > 0 {
		return fmt.Errorf("missing required field(s) %s", strings.Join(missing, ", "))
	}
	if d.Name == "" {
		if _, err := urlutils.RepoName(d.Source); err != nil {
			return err
		}
	}
	return nil
}

func (d Descriptor) missingFields() []string {
	var missing []string
	if strings.TrimSpace(d.Source) == "" {
		missing = append(missing, "src")
	}
	if strings.TrimSpace(d.Dest) == "" {
		missing = append(missing, "dest")
	}
	if strings.TrimSpace(d.Version) == "" {
		missing = append(missing, "version")
	}
	return missing
}

// ValidateAll validates every descriptor and reports the first invalid entry
// as a configuration error. Entries are numbered from 1.
func ValidateAll(descs []Descriptor) error {
	for i, d := range descs {
		if err := d.Validate(); err != nil {
			return errors.Configuration("requirements entry %d (%s): %v", i+1, urlutils.Redact(d.Source), err)
		}
	}
	return nil
}

// DirName returns the explicit name or the one derived from the source
func (d Descriptor) DirName() (string, error) {
	if d.Name != "" {
		return d.Name, nil
	}
	return urlutils.RepoName(d.Source)
}

// ResolvedPath returns dest/(name or derived name), with a leading ~ expanded
func (d Descriptor) ResolvedPath() (string, error) {
	name, err := d.DirName()
	if err != nil {
		return "", err
	}
	return filepath.Join(expandHome(d.Dest), name), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
