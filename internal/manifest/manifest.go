// Package manifest accumulates the git-run tag file: a map from tag to the
// repository paths declaring it. Tags are written in the order they were
// first seen.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Manifest is the document written to .grconfig.json
type Manifest struct {
	Tags map[string][]string

	order []string // tags in first-seen order
}

// New returns an empty manifest
func New() *Manifest {
	return &Manifest{Tags: make(map[string][]string)}
}

// Add appends path to the list for tag. Duplicates are kept.
func (m *Manifest) Add(tag, path string) {
	if m.Tags == nil {
		m.Tags = make(map[string][]string)
	}
	if _, seen := m.Tags[tag]; !seen {
		m.order = append(m.order, tag)
	}
	m.Tags[tag] = append(m.Tags[tag], path)
}

// Record adds path under every tag
func (m *Manifest) Record(tags []string, path string) {
	for _, tag := range tags {
		m.Add(tag, path)
	}
}

// Len returns the number of (tag, path) entries
func (m *Manifest) Len() int {
	n := 0
	for _, paths := range m.Tags {
		n += len(paths)
	}
	return n
}

// Order returns the tags in first-seen order. Tags set directly on the map
// follow in sorted order.
func (m *Manifest) Order() []string {
	out := make([]string, 0, len(m.Tags))
	listed := make(map[string]bool, len(m.order))
	for _, tag := range m.order {
		if _, ok := m.Tags[tag]; ok && !listed[tag] {
			out = append(out, tag)
			listed[tag] = true
		}
	}
	var rest []string
	for tag := range m.Tags {
		if !listed[tag] {
			rest = append(rest, tag)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// MarshalJSON writes {"tags": {...}} with tags in Order
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"tags":{`)
	for i, tag := range m.Order() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tag)
		if err != nil {
			return nil, err
		}
		paths := m.Tags[tag]
		if paths == nil {
			paths = []string{}
		}
		value, err := json.Marshal(paths)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

// UnmarshalJSON reads {"tags": {...}} keeping the file's tag order
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var doc struct {
		Tags json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	m.Tags = make(map[string][]string)
	m.order = nil
	if len(doc.Tags) == 0 || string(doc.Tags) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(doc.Tags))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tags: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		tag, ok := tok.(string)
		if !ok {
			return fmt.Errorf("tags: unexpected key %v", tok)
		}
		var paths []string
		if err := dec.Decode(&paths); err != nil {
			return fmt.Errorf("tags %q: %w", tag, err)
		}
		if _, seen := m.Tags[tag]; !seen {
			m.order = append(m.order, tag)
		}
		m.Tags[tag] = append(m.Tags[tag], paths...)
	}
	return nil
}

// Write serialises the manifest to path, replacing any existing file
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}

// Load reads a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	m := New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest file: %w", err)
	}
	return m, nil
}
