package html

import (
	"context"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/barisa/untangled-ui/pkg/form"
	"github.com/barisa/untangled-ui/pkg/render"
)

func (r *Renderer) defaultRegistry() *render.Registry {
	reg := render.NewRegistry()
	reg.MustRegister(form.KindIdentity, r.fieldTemplate("templates/fields/identity.tmpl"))
	reg.MustRegister(form.KindText, r.fieldTemplate("templates/fields/text.tmpl"))
	reg.MustRegister(form.KindInteger, r.fieldTemplate("templates/fields/integer.tmpl"))
	reg.MustRegister(form.KindCheckbox, r.fieldTemplate("templates/fields/checkbox.tmpl"))
	reg.MustRegister(form.KindDropdown, r.fieldTemplate("templates/fields/dropdown.tmpl"))
	return reg
}

func (r *Renderer) fieldTemplate(name string) render.FieldRenderer {
	return func(ctx context.Context, field render.FieldView, _ render.Options) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := r.execute(name, pongo2.Context{
			"field":    r.fieldContext(field),
			"none_key": form.None,
		})
		if err != nil {
			return nil, err
		}
		return []byte(strings.TrimRight(out, "\n")), nil
	}
}

func (r *Renderer) fieldContext(field render.FieldView) map[string]any {
	options := make([]map[string]string, 0, len(field.Options))
	for _, opt := range field.Options {
		options = append(options, map[string]string{
			"key":   opt.Key,
			"label": r.policy.Sanitize(opt.Label),
		})
	}
	return map[string]any{
		"name":    field.Name,
		"label":   r.policy.Sanitize(field.Label),
		"value":   field.Value,
		"css":     sanitizeClassList(field.CSSClass),
		"invalid": field.Validity == form.ValidityInvalid,
		"options": options,
	}
}

// sanitizeClassList keeps only tokens made of letters, digits, hyphens and
// underscores; user-supplied CSS hints never break out of the attribute.
func sanitizeClassList(value string) string {
	keep := make([]string, 0, 4)
	for _, token := range strings.Fields(value) {
		if safeClassToken(token) {
			keep = append(keep, token)
		}
	}
	return strings.Join(keep, " ")
}

func safeClassToken(token string) bool {
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return token != ""
}
