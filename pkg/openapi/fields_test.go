package openapi_test

import (
	"strings"
	"testing"

	"github.com/barisa/untangled-ui/pkg/form"
	"github.com/barisa/untangled-ui/pkg/openapi"
)

const personSchemaDoc = `{
  "openapi": "3.0.0",
  "info": {"title": "people", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Person": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string", "pattern": "\\S+ \\S+"},
          "age": {"type": "integer", "minimum": 1, "maximum": 110},
          "vip": {"type": "boolean", "default": true},
          "kind": {"type": "string", "enum": ["home", "work"], "default": "home"},
          "tags": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

func TestFieldsFromComponentSchema(t *testing.T) {
	schema, err := openapi.Component([]byte(personSchemaDoc), "Person")
	if err != nil {
		t.Fatalf("component: %v", err)
	}

	fields, warns, err := openapi.Fields("people", schema)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	byName := map[string]form.Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}

	if byName["id"].Kind != form.KindIdentity {
		t.Fatalf("id should map to the identity field: %+v", byName["id"])
	}
	if f := byName["name"]; f.Kind != form.KindText || f.ValidatorRef != "matches" {
		t.Fatalf("name should be a pattern-validated text field: %+v", f)
	}
	if f := byName["age"]; f.Kind != form.KindInteger || f.ValidatorRef != "in-range" {
		t.Fatalf("age should be a range-validated integer field: %+v", f)
	}
	if args := byName["age"].ValidatorArgs; args["min"] != 1.0 || args["max"] != 110.0 {
		t.Fatalf("age bounds: %v", args)
	}
	if f := byName["vip"]; f.Kind != form.KindCheckbox || f.Default != true {
		t.Fatalf("vip should be a checkbox defaulting true: %+v", f)
	}
	if f := byName["kind"]; f.Kind != form.KindDropdown || f.Default != "home" || len(f.Options) != 2 {
		t.Fatalf("kind should be a dropdown: %+v", f)
	}

	if len(warns) != 1 || !strings.Contains(warns[0].Reason, "no form field counterpart") {
		t.Fatalf("array property should warn, got %v", warns)
	}
	if _, ok := byName["tags"]; ok {
		t.Fatalf("array property must be skipped")
	}
}

func TestComponentErrors(t *testing.T) {
	if _, err := openapi.Component([]byte(personSchemaDoc), "Ghost"); err == nil {
		t.Fatalf("missing component must fail")
	}
	if _, err := openapi.Component([]byte("{not json"), "Person"); err == nil {
		t.Fatalf("malformed document must fail")
	}
}

func TestFieldsRejectsNonObjectSchema(t *testing.T) {
	schema, err := openapi.Component([]byte(personSchemaDoc), "Person")
	if err != nil {
		t.Fatalf("component: %v", err)
	}
	arrayProp := schema.Properties["tags"].Value
	if _, _, err := openapi.Fields("people", arrayProp); err == nil {
		t.Fatalf("non-object schema must fail")
	}
}

func TestDerivedFieldsDriveValidation(t *testing.T) {
	schema, err := openapi.Component([]byte(personSchemaDoc), "Person")
	if err != nil {
		t.Fatalf("component: %v", err)
	}
	fields, _, err := openapi.Fields("people", schema)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	reg := form.DefaultRegistry()
	for _, f := range fields {
		if f.ValidatorRef == "" {
			continue
		}
		if !reg.Has(f.ValidatorRef) {
			t.Fatalf("derived validator %q is not a built-in", f.ValidatorRef)
		}
	}
}
