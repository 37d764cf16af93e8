package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig resolves a named theme and variant through a go-theme selector
// into the renderer configuration renderers consume. Manifest tokens become
// CSS variables ("--" prefixed); variant tokens and templates override the
// base manifest. A nil selector yields a nil config.
func ThemeConfig(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: map[string]string{},
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	manifest := selection.Manifest
	for key, value := range manifest.Tokens {
		cfg.Tokens[key] = value
		cfg.CSSVars["--"+key] = value
	}
	for key, value := range manifest.Templates {
		cfg.Partials[key] = value
	}
	files := map[string]string{}
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}
	if v, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			cfg.Tokens[key] = value
			cfg.CSSVars["--"+key] = value
		}
		for key, value := range v.Templates {
			cfg.Partials[key] = value
		}
		for key, value := range v.Assets.Files {
			files[key] = value
		}
	}

	prefix := strings.TrimSuffix(manifest.Assets.Prefix, "/")
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + file
	}
	return cfg, nil
}

// CSSVarsStyle flattens a theme config's CSS variables into a style
// attribute value, sorted for stable output.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+cfg.CSSVars[key])
	}
	return strings.Join(parts, "; ")
}
