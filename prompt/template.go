// Package prompt provides loading and rendering of markdown prompt templates.
// Templates carry optional YAML frontmatter for metadata and use {name}
// placeholders in the body.
package prompt

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Template is a named prompt template.
type Template struct {
	Name        string
	Description string
	Content     string
	FilePath    string
}

// templateFrontmatter is the YAML metadata at the top of a template file.
type templateFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Render substitutes {placeholder} occurrences in the template body.
// Placeholders without a matching variable are left as-is.
func (t *Template) Render(vars map[string]string) string {
	out := t.Content
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

// Load parses a single template file.
// The template name defaults to the file name without extension and can be
// overridden by frontmatter.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	fm, content, err := parseFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}

	tmpl := &Template{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Content:  content,
		FilePath: path,
	}

	if len(fm) > 0 {
		var meta templateFrontmatter
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("parsing template frontmatter: %w", err)
		}
		if meta.Name != "" {
			tmpl.Name = meta.Name
		}
		tmpl.Description = meta.Description
	}

	return tmpl, nil
}

// LoadDir loads all markdown templates under dir, recursively.
// Files that fail to parse are skipped.
func LoadDir(dir string) ([]*Template, error) {
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("globbing templates: %w", err)
	}

	templates := make([]*Template, 0, len(matches))
	for _, m := range matches {
		tmpl, err := Load(filepath.Join(dir, m))
		if err != nil {
			continue
		}
		templates = append(templates, tmpl)
	}

	return templates, nil
}

// Library indexes templates by name.
type Library struct {
	templates map[string]*Template
}

// LoadLibrary loads all templates under dir into a Library.
func LoadLibrary(dir string) (*Library, error) {
	templates, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}

	lib := &Library{templates: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		lib.templates[t.Name] = t
	}
	return lib, nil
}

// Get returns a template by name.
func (l *Library) Get(name string) (*Template, bool) {
	t, ok := l.templates[name]
	return t, ok
}

// Names returns the names of all loaded templates.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	return names
}

// parseFrontmatter extracts YAML frontmatter from markdown content.
// Frontmatter is delimited by "---" at the start and end.
func parseFrontmatter(data []byte) (frontmatter []byte, content string, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	if !scanner.Scan() {
		return nil, string(data), nil
	}
	firstLine := strings.TrimSpace(scanner.Text())
	if firstLine != "---" {
		// No frontmatter, return entire content
		return nil, string(data), nil
	}

	var fmLines []string
	foundClosing := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			foundClosing = true
			break
		}
		fmLines = append(fmLines, line)
	}

	if !foundClosing {
		// No closing delimiter, treat as no frontmatter
		return nil, string(data), nil
	}

	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("scanning template: %w", err)
	}

	frontmatter = []byte(strings.Join(fmLines, "\n"))
	content = strings.TrimSpace(strings.Join(contentLines, "\n"))

	return frontmatter, content, nil
}
