// Package prompt renders the prompts sent to the model. The defaults are
// embedded in the binary; a prompts directory can shadow them so prompt
// wording can be tuned without a rebuild.
package prompt

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var embedded embed.FS

const (
	designTemplate   = "design.tmpl"
	validateTemplate = "validate.tmpl"
)

// DesignData feeds the schema-design prompt.
type DesignData struct {
	Description  string
	DatabaseType string
}

// ValidateData feeds the design-review prompt.
type ValidateData struct {
	Design       string
	Requirements string
}

// Renderer renders prompt templates. Safe for concurrent use; Reload
// swaps the template set atomically.
type Renderer struct {
	mu        sync.RWMutex
	templates *template.Template
	dir       string
}

// NewRenderer parses the embedded templates and, when dir is non-empty,
// overlays any *.tmpl files found there.
func NewRenderer(dir string) (*Renderer, error) {
	r := &Renderer{dir: dir}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Dir returns the override directory, empty when only embedded templates
// are in use.
func (r *Renderer) Dir() string {
	return r.dir
}

// Reload re-parses the embedded templates and the override directory.
func (r *Renderer) Reload() error {
	tmpl, err := template.ParseFS(embedded, "templates/*.tmpl")
	if err != nil {
		return fmt.Errorf("parse embedded prompt templates: %w", err)
	}

	if r.dir != "" {
		pattern := filepath.Join(r.dir, "*.tmpl")
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("scan prompts dir %q: %w", r.dir, err)
		}
		if len(matches) > 0 {
			tmpl, err = tmpl.ParseGlob(pattern)
			if err != nil {
				return fmt.Errorf("parse prompt overrides in %q: %w", r.dir, err)
			}
		}
	}

	r.mu.Lock()
	r.templates = tmpl
	r.mu.Unlock()
	return nil
}

// Design renders the schema-design prompt.
func (r *Renderer) Design(data DesignData) (string, error) {
	return r.render(designTemplate, data)
}

// Validate renders the design-review prompt.
func (r *Renderer) Validate(data ValidateData) (string, error) {
	return r.render(validateTemplate, data)
}

func (r *Renderer) render(name string, data any) (string, error) {
	r.mu.RLock()
	tmpl := r.templates
	r.mu.RUnlock()

	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", name, err)
	}
	return sb.String(), nil
}
