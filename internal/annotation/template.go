package annotation

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template drives sequential keypoint placement: an ordered list of named
// points plus a fixed skeletal connection graph between point indices.
type Template struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Points      []string `yaml:"points"`
	Connections [][]int  `yaml:"connections"`
}

// Validate checks that the template is usable for placement.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template has no id")
	}
	if len(t.Points) == 0 {
		return fmt.Errorf("template %s has no points", t.ID)
	}
	for _, c := range t.Connections {
		if len(c) != 2 {
			return fmt.Errorf("template %s: connection %v is not a pair", t.ID, c)
		}
		if c[0] < 0 || c[0] >= len(t.Points) || c[1] < 0 || c[1] >= len(t.Points) {
			return fmt.Errorf("template %s: connection %v out of range", t.ID, c)
		}
	}
	return nil
}

// ConnectionList converts the raw index pairs into Connections.
func (t *Template) ConnectionList() []Connection {
	out := make([]Connection, 0, len(t.Connections))
	for _, c := range t.Connections {
		if len(c) == 2 {
			out = append(out, Connection{A: c[0], B: c[1]})
		}
	}
	return out
}

// ParseTemplate decodes one YAML template definition.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTemplatesFS parses every .yaml file under dir in fsys.
func LoadTemplatesFS(fsys fs.FS, dir string) ([]*Template, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var out []*Template
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isYAML(name) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		t, err := ParseTemplate(data)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadTemplateDir parses template files from a directory on disk. A missing
// directory is not an error; users are not required to define templates.
func LoadTemplateDir(path string) ([]*Template, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return LoadTemplatesFS(os.DirFS(path), ".")
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
