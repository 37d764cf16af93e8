// Package html renders form overlays to plain HTML using a pongo2-backed
// template set. Field markup is produced through the field-kind registry, so
// embedders can swap individual field renderers without replacing the form
// chrome.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
	"github.com/microcosm-cc/bluemonday"

	"github.com/barisa/untangled-ui/pkg/render"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templateFS fs.FS
	registry   *render.Registry
	policy     *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithRegistry injects a custom field renderer registry. Kinds missing from
// it fail at render time, so a partial registry should be completed with the
// defaults first.
func WithRegistry(registry *render.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithPolicy overrides the bluemonday policy applied to field labels.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithGoTemplateOptions exists for callers that standardize on the
// go-template configuration surface but is currently a no-op; the renderer
// configures its template set directly.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

// Renderer renders FormViews to HTML.
type Renderer struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	registry  *render.Registry
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		policy:     bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	r := &Renderer{
		set:       pongo2.NewSet("untangled-html", pongo2.NewFSLoader(cfg.templateFS)),
		templates: make(map[string]*pongo2.Template),
		policy:    cfg.policy,
	}
	if cfg.registry != nil {
		r.registry = cfg.registry
	} else {
		r.registry = r.defaultRegistry()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Registry exposes the field renderer registry in use.
func (r *Renderer) Registry() *render.Registry {
	return r.registry
}

// Render produces the full form markup: chrome from templates/form.tmpl,
// each field through its registered field renderer.
func (r *Renderer) Render(ctx context.Context, view render.FormView, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(view.Fields))
	for _, field := range view.Fields {
		fieldRenderer, err := r.registry.Get(field.Kind)
		if err != nil {
			return nil, err
		}
		markup, err := fieldRenderer(ctx, field, options)
		if err != nil {
			return nil, fmt.Errorf("html: render field %q: %w", field.Name, err)
		}
		fields = append(fields, string(markup))
	}

	themeName, stylesheet := "", ""
	if options.Theme != nil {
		themeName = options.Theme.Theme
		if options.Theme.AssetURL != nil {
			stylesheet = options.Theme.AssetURL("html.stylesheet")
		}
	}
	out, err := r.execute("templates/form.tmpl", pongo2.Context{
		"ident":      view.Ident.String(),
		"fields":     fields,
		"theme":      themeName,
		"style":      render.CSSVarsStyle(options.Theme),
		"stylesheet": stylesheet,
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (r *Renderer) execute(name string, ctx pongo2.Context) (string, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("html: execute template %q: %w", name, err)
	}
	return out, nil
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", name, err)
	}

	r.mu.Lock()
	r.templates[name] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}
