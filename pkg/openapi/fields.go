// Package openapi derives form field declarations from OpenAPI component
// schemas, so an entity type can source its scalar fields from an API
// contract instead of hand-written declarations. Joins and nested objects
// stay in code: subform links need the capability contract (ident functions,
// shapes) that an OpenAPI document cannot express.
package openapi

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/barisa/untangled-ui/pkg/form"
)

// Component loads an OpenAPI document and extracts one named component
// schema.
func Component(data []byte, name string) (*openapi3.Schema, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("openapi: document has no components")
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: component schema %q not found", name)
	}
	return ref.Value, nil
}

// Fields converts an object schema's properties into field declarations,
// sorted by property name. A property named "id" becomes the identity field.
// String patterns map to the "matches" validator, numeric bounds to
// "in-range", string enums to dropdowns. Properties whose type has no form
// counterpart (objects, arrays) are skipped with a warning; table names the
// entity type the fields are derived for.
func Fields(table string, schema *openapi3.Schema) ([]form.Field, []form.Warning, error) {
	if schema == nil {
		return nil, nil, fmt.Errorf("openapi: schema is required")
	}
	if t := firstType(schema.Type); t != "" && t != "object" {
		return nil, nil, fmt.Errorf("openapi: expected an object schema, got %q", t)
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []form.Field
	var warns []form.Warning
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			warns = append(warns, form.Warning{Table: table, Field: name,
				Reason: "unresolved schema reference"})
			continue
		}
		field, warn, err := convertProperty(table, name, ref.Value)
		if err != nil {
			return nil, nil, err
		}
		if warn != nil {
			warns = append(warns, *warn)
			continue
		}
		fields = append(fields, field)
	}
	return fields, warns, nil
}

func convertProperty(table, name string, prop *openapi3.Schema) (form.Field, *form.Warning, error) {
	if name == "id" {
		return form.IdentityField(name), nil, nil
	}

	var opts []form.FieldOption
	if prop.Default != nil {
		opts = append(opts, form.WithDefault(prop.Default))
	}

	switch t := firstType(prop.Type); t {
	case "string":
		if len(prop.Enum) > 0 {
			options := make([]form.Option, 0, len(prop.Enum))
			for _, raw := range prop.Enum {
				key, ok := raw.(string)
				if !ok {
					warn := form.Warning{Table: table, Field: name,
						Reason: fmt.Sprintf("non-string enum value %v", raw)}
					return form.Field{}, &warn, nil
				}
				options = append(options, form.Option{Key: key, Label: key})
			}
			field, err := form.DropdownField(name, options, opts...)
			if err != nil {
				return form.Field{}, nil, err
			}
			return field, nil, nil
		}
		if prop.Pattern != "" {
			opts = append(opts, form.WithValidator("matches", map[string]any{"pattern": prop.Pattern}))
		}
		return form.TextField(name, opts...), nil, nil
	case "integer", "number":
		if args := rangeArgs(prop); len(args) > 0 {
			opts = append(opts, form.WithValidator("in-range", args))
		}
		return form.IntegerField(name, opts...), nil, nil
	case "boolean":
		return form.CheckboxField(name, opts...), nil, nil
	default:
		warn := form.Warning{Table: table, Field: name,
			Reason: fmt.Sprintf("property type %q has no form field counterpart", t)}
		return form.Field{}, &warn, nil
	}
}

func rangeArgs(prop *openapi3.Schema) map[string]any {
	args := map[string]any{}
	if prop.Min != nil {
		args["min"] = *prop.Min
	}
	if prop.Max != nil {
		args["max"] = *prop.Max
	}
	if len(args) == 0 {
		return nil
	}
	return args
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
