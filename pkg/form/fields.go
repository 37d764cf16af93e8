package form

import (
	"errors"
	"fmt"
)

// FieldOption tweaks a field constructor's defaults.
type FieldOption func(*Field)

// WithValidator attaches a validator reference and its arguments.
func WithValidator(ref string, args map[string]any) FieldOption {
	return func(f *Field) {
		f.ValidatorRef = ref
		f.ValidatorArgs = args
	}
}

// WithValidateOnBlur asks the rendering collaborator to validate the field
// when focus leaves it.
func WithValidateOnBlur() FieldOption {
	return func(f *Field) {
		f.ValidateOnBlur = true
	}
}

// WithCSSClass records a CSS hint for the rendering collaborator.
func WithCSSClass(class string) FieldOption {
	return func(f *Field) {
		f.CSSClass = class
	}
}

// WithDefault overrides the field's default value.
func WithDefault(v any) FieldOption {
	return func(f *Field) {
		f.Default = v
	}
}

// WithCardinality overrides a subform link's cardinality.
func WithCardinality(c Cardinality) FieldOption {
	return func(f *Field) {
		f.Cardinality = c
	}
}

func apply(f Field, opts []FieldOption) Field {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// IdentityField declares the field holding the entity's primary key. The
// overlay builder seeds it with a fresh temporary key when the entity has
// none yet.
func IdentityField(name string) Field {
	return Field{Name: name, Kind: KindIdentity}
}

// TextField declares a free-text input, default "".
func TextField(name string, opts ...FieldOption) Field {
	return apply(Field{Name: name, Kind: KindText, Default: ""}, opts)
}

// IntegerField declares an integer input, default 0. Input values that fully
// match an integer pattern are coerced at update time; anything else passes
// through unchanged so the user can keep typing.
func IntegerField(name string, opts ...FieldOption) Field {
	return apply(Field{Name: name, Kind: KindInteger, Default: 0}, opts)
}

// CheckboxField declares a boolean input, default false.
func CheckboxField(name string, opts ...FieldOption) Field {
	return apply(Field{Name: name, Kind: KindCheckbox, Default: false}, opts)
}

// DropdownField declares a single-select input. The default is the None
// sentinel unless overridden with WithDefault. It returns a configuration
// error when options are empty, an option lacks a key, or the default is
// neither None nor one of the option keys.
func DropdownField(name string, options []Option, opts ...FieldOption) (Field, error) {
	if len(options) == 0 {
		return Field{}, fmt.Errorf("form: dropdown %q: options are required", name)
	}
	for i, opt := range options {
		if opt.Key == "" {
			return Field{}, fmt.Errorf("form: dropdown %q: option %d lacks a key", name, i)
		}
	}
	f := apply(Field{Name: name, Kind: KindDropdown, Default: None, Options: options}, opts)
	if def, ok := f.Default.(string); !ok || (def != None && !hasOptionKey(options, def)) {
		return Field{}, fmt.Errorf("form: dropdown %q: default %v is neither the none sentinel nor an option key", name, f.Default)
	}
	return f, nil
}

// MustDropdownField panics on configuration errors. Useful for fixed schemas
// assembled at composition time.
func MustDropdownField(name string, options []Option, opts ...FieldOption) Field {
	f, err := DropdownField(name, options, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func hasOptionKey(options []Option, key string) bool {
	for _, opt := range options {
		if opt.Key == key {
			return true
		}
	}
	return false
}

// SubformField declares a link to child form instances, cardinality one by
// default. A target missing the form capability set is recorded as-is; the
// resolver reports a warning and skips it during traversal.
func SubformField(name string, target EntityType, opts ...FieldOption) Field {
	return apply(Field{Name: name, Kind: KindSubform, Cardinality: CardinalityOne, Target: target}, opts)
}

// SwitcherField declares a to-many subform link plus a key the rendering
// collaborator uses to pick which sibling is active. The engine itself treats
// it exactly like a many-subform link.
func SwitcherField(name string, target EntityType, selectKey string, opts ...FieldOption) Field {
	f := apply(Field{Name: name, Kind: KindSwitcher, Cardinality: CardinalityMany, Target: target}, opts)
	f.SelectKey = selectKey
	return f
}

var errNilTarget = errors.New("form: subform target is nil")

// targetCaps reports whether a subform target satisfies the full capability
// set, and describes what is missing when it does not.
func targetCaps(t EntityType) (FormType, error) {
	if t == nil {
		return nil, errNilTarget
	}
	ft, ok := t.(FormType)
	if ok {
		return ft, nil
	}
	missing := ""
	if _, ok := t.(Identifier); !ok {
		missing += " ident"
	}
	if _, ok := t.(Shaped); !ok {
		missing += " shape"
	}
	if _, ok := t.(Formable); !ok {
		missing += " fields"
	}
	return nil, fmt.Errorf("form: target %q lacks capabilities:%s", t.Table(), missing)
}
