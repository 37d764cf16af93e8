// Package form is the form-overlay and graph-traversal engine. It attaches
// editable, validated form state to entities living in a normalized store
// without copying them out of the graph, discovers nested subform instances
// across a declared relational shape, and applies validated all-or-nothing
// commit and reset transforms over the resolved form tree.
//
// Every operation is a pure store transform: it takes a store.Store (plus an
// ident and a spec where relevant) and returns a new store value. The
// embedding application holds the single canonical store reference and is
// responsible for serializing calls.
package form

import (
	"fmt"

	"github.com/barisa/untangled-ui/pkg/store"
)

// Kind enumerates the supported field kinds.
type Kind string

const (
	KindIdentity Kind = "identity"
	KindText     Kind = "text"
	KindInteger  Kind = "integer"
	KindCheckbox Kind = "checkbox"
	KindDropdown Kind = "dropdown"
	KindSubform  Kind = "subform"
	KindSwitcher Kind = "switcher"
)

// Cardinality says whether a subform link points at one entity or many.
type Cardinality string

const (
	CardinalityOne  Cardinality = "one"
	CardinalityMany Cardinality = "many"
)

// None is the dropdown default sentinel marking the field optional: no option
// is pre-selected and an empty selection is acceptable.
const None = "::none"

// Option is one selectable dropdown entry.
type Option struct {
	Key   string
	Label string
}

// Field describes one input or subform link on an entity type. Fields are
// plain values produced by the constructors in fields.go; they carry no
// runtime state of their own.
type Field struct {
	Name           string
	Kind           Kind
	Default        any
	ValidatorRef   string
	ValidatorArgs  map[string]any
	ValidateOnBlur bool
	CSSClass       string

	// Dropdown only.
	Options []Option

	// Subform and switcher only.
	Cardinality Cardinality
	Target      EntityType
	SelectKey   string
}

// Editable reports whether the field holds a user-editable scalar value.
// Identity fields and subform links are not editable.
func (f Field) Editable() bool {
	return f.Kind != KindIdentity && !f.IsSubform()
}

// IsSubform reports whether the field links to child form instances.
func (f Field) IsSubform() bool {
	return f.Kind == KindSubform || f.Kind == KindSwitcher
}

// EntityType names an entity table. Concrete types advertise further
// capabilities by also implementing Identifier, Shaped and Formable; the
// engine probes for those with type assertions at spec-construction and
// traversal time.
type EntityType interface {
	Table() string
}

// Identifier computes an entity's Ident from its raw properties.
type Identifier interface {
	IdentOf(e store.Entity) store.Ident
}

// Shaped declares an entity type's relational shape: which of its properties
// are joins to other entity types.
type Shaped interface {
	Shape() Shape
}

// Formable declares an entity type's form fields.
type Formable interface {
	FormFields() []Field
}

// FormType is the full capability set required of a form root or a
// traversable subform target.
type FormType interface {
	EntityType
	Identifier
	Shaped
	Formable
}

// Join is one declared relation in an entity type's shape.
type Join struct {
	Prop      string
	Target    EntityType
	ToMany    bool
	Union     bool
	Recursive bool
}

// Shape is the ordered list of an entity type's joins.
type Shape []Join

// Join looks a join up by property name.
func (s Shape) Join(prop string) (Join, bool) {
	for _, j := range s {
		if j.Prop == prop {
			return j, true
		}
	}
	return Join{}, false
}

// Spec couples an entity type with its ordered field declarations. Build one
// with NewSpec for a hand-assembled field list, or SpecFor to use the type's
// own FormFields declaration.
type Spec struct {
	Type   FormType
	Fields []Field
}

// NewSpec builds a Spec from an explicit field list.
func NewSpec(t FormType, fields ...Field) Spec {
	return Spec{Type: t, Fields: fields}
}

// SpecFor derives the Spec of any entity type that carries the full form
// capability set. The second return is false when a capability is missing.
func SpecFor(t EntityType) (Spec, bool) {
	ft, ok := t.(FormType)
	if !ok {
		return Spec{}, false
	}
	return Spec{Type: ft, Fields: ft.FormFields()}, true
}

// Warning is a non-fatal schema diagnostic: the offending declaration is kept
// but excluded from traversal.
type Warning struct {
	Table  string
	Field  string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("form: %s.%s: %s", w.Table, w.Field, w.Reason)
}

// Check inspects a spec's subform declarations and returns the warnings a
// traversal would report, without walking any store. Useful at composition
// time to surface schema problems early.
func (s Spec) Check() []Warning {
	_, warns := SubformPaths(s)
	return warns
}
