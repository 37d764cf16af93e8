// Package specfile loads form specs from YAML documents. A document names a
// root entity type and declares its fields; entity types themselves (ident
// functions, shapes) are code, so the caller supplies a lookup of the types
// the document may reference.
package specfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/barisa/untangled-ui/pkg/form"
)

// Document is the YAML shape of a form spec.
type Document struct {
	Entity string     `yaml:"entity"`
	Fields []FieldDoc `yaml:"fields"`
}

// FieldDoc declares one field.
type FieldDoc struct {
	Name        string         `yaml:"name"`
	Kind        string         `yaml:"kind"`
	Default     any            `yaml:"default"`
	Validator   string         `yaml:"validator"`
	Args        map[string]any `yaml:"args"`
	OnBlur      bool           `yaml:"validateOnBlur"`
	CSS         string         `yaml:"css"`
	Options     []OptionDoc    `yaml:"options"`
	Target      string         `yaml:"target"`
	Cardinality string         `yaml:"cardinality"`
	SelectKey   string         `yaml:"selectKey"`
}

// OptionDoc declares one dropdown option.
type OptionDoc struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Load decodes a YAML spec document and builds the form.Spec. The types map
// is keyed by table name and must contain the document's root entity plus
// every subform target it references.
func Load(r io.Reader, types map[string]form.FormType) (form.Spec, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return form.Spec{}, fmt.Errorf("specfile: decode document: %w", err)
	}
	return Build(doc, types)
}

// LoadFile reads and decodes a YAML spec document from disk.
func LoadFile(path string, types map[string]form.FormType) (form.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return form.Spec{}, fmt.Errorf("specfile: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, types)
}

// Build turns a decoded document into a form.Spec.
func Build(doc Document, types map[string]form.FormType) (form.Spec, error) {
	if doc.Entity == "" {
		return form.Spec{}, fmt.Errorf("specfile: document lacks an entity")
	}
	root, ok := types[doc.Entity]
	if !ok {
		return form.Spec{}, fmt.Errorf("specfile: unknown entity type %q", doc.Entity)
	}
	if len(doc.Fields) == 0 {
		return form.Spec{}, fmt.Errorf("specfile: entity %q declares no fields", doc.Entity)
	}

	fields := make([]form.Field, 0, len(doc.Fields))
	for _, fd := range doc.Fields {
		field, err := buildField(fd, types)
		if err != nil {
			return form.Spec{}, err
		}
		fields = append(fields, field)
	}
	return form.NewSpec(root, fields...), nil
}

func buildField(fd FieldDoc, types map[string]form.FormType) (form.Field, error) {
	if fd.Name == "" {
		return form.Field{}, fmt.Errorf("specfile: field lacks a name")
	}

	var opts []form.FieldOption
	if fd.Validator != "" {
		opts = append(opts, form.WithValidator(fd.Validator, fd.Args))
	}
	if fd.OnBlur {
		opts = append(opts, form.WithValidateOnBlur())
	}
	if fd.CSS != "" {
		opts = append(opts, form.WithCSSClass(fd.CSS))
	}
	if fd.Default != nil {
		opts = append(opts, form.WithDefault(fd.Default))
	}

	switch fd.Kind {
	case "identity":
		return form.IdentityField(fd.Name), nil
	case "text":
		return form.TextField(fd.Name, opts...), nil
	case "integer":
		return form.IntegerField(fd.Name, opts...), nil
	case "checkbox":
		return form.CheckboxField(fd.Name, opts...), nil
	case "dropdown":
		options := make([]form.Option, 0, len(fd.Options))
		for _, od := range fd.Options {
			options = append(options, form.Option{Key: od.Key, Label: od.Label})
		}
		field, err := form.DropdownField(fd.Name, options, opts...)
		if err != nil {
			return form.Field{}, fmt.Errorf("specfile: %w", err)
		}
		return field, nil
	case "subform", "switcher":
		target, ok := types[fd.Target]
		if !ok {
			return form.Field{}, fmt.Errorf("specfile: field %q references unknown target type %q", fd.Name, fd.Target)
		}
		if fd.Kind == "switcher" {
			return form.SwitcherField(fd.Name, target, fd.SelectKey, opts...), nil
		}
		if fd.Cardinality == string(form.CardinalityMany) {
			opts = append(opts, form.WithCardinality(form.CardinalityMany))
		}
		return form.SubformField(fd.Name, target, opts...), nil
	default:
		return form.Field{}, fmt.Errorf("specfile: field %q has unknown kind %q", fd.Name, fd.Kind)
	}
}
