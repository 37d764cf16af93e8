package form

import (
	"errors"

	"github.com/barisa/untangled-ui/pkg/store"
)

// StateKey is the reserved entity property the form overlay lives under.
const StateKey = "ui/form"

// Validity is the tri-state result of field validation.
type Validity string

const (
	ValidityUnchecked Validity = "unchecked"
	ValidityValid     Validity = "valid"
	ValidityInvalid   Validity = "invalid"
)

// FieldState is the overlay storage for one field: the editable value plus
// its validity. The value is independent of the entity's real property until
// a commit copies it over.
type FieldState struct {
	Value    any
	Validity Validity
}

// State is the form overlay attached to an entity under StateKey.
type State struct {
	Ident    store.Ident
	Elements map[string]Field
	Order    []string
	Subforms []Field
	Fields   map[string]FieldState
}

func (st State) clone() State {
	out := st
	out.Elements = make(map[string]Field, len(st.Elements))
	for k, v := range st.Elements {
		out.Elements[k] = v
	}
	out.Fields = make(map[string]FieldState, len(st.Fields))
	for k, v := range st.Fields {
		out.Fields[k] = v
	}
	out.Order = append([]string(nil), st.Order...)
	out.Subforms = append([]Field(nil), st.Subforms...)
	return out
}

// ErrNotInitialized reports an operation on an entity that has no well-formed
// form overlay. Callers must BuildForm or InitForm the entity first.
var ErrNotInitialized = errors.New("form: entity has no initialized form state")

// StateOf extracts the overlay from an entity.
func StateOf(e store.Entity) (State, error) {
	st, ok := e[StateKey].(State)
	if !ok || st.Elements == nil || st.Fields == nil {
		return State{}, ErrNotInitialized
	}
	return st, nil
}

// Initialized reports whether the entity carries a well-formed overlay.
func Initialized(e store.Entity) bool {
	_, err := StateOf(e)
	return err == nil
}

// Value returns the current overlay value of a field.
func (st State) Value(name string) any {
	return st.Fields[name].Value
}

// Config returns the field declaration backing a form element.
func (st State) Config(name string) (Field, bool) {
	f, ok := st.Elements[name]
	return f, ok
}

// FieldValidity returns the current validity of a field. Unknown fields read
// as unchecked.
func (st State) FieldValidity(name string) Validity {
	fs, ok := st.Fields[name]
	if !ok || fs.Validity == "" {
		return ValidityUnchecked
	}
	return fs.Validity
}

// CSSClass returns the CSS hint recorded on a field declaration.
func (st State) CSSClass(name string) string {
	return st.Elements[name].CSSClass
}

// ElementNames returns the declared element names in declaration order.
func (st State) ElementNames() []string {
	return append([]string(nil), st.Order...)
}

// EditableFields returns the editable field declarations in declaration
// order, excluding identity fields and subform links.
func (st State) EditableFields() []Field {
	var out []Field
	for _, name := range st.Order {
		if f := st.Elements[name]; f.Editable() {
			out = append(out, f)
		}
	}
	return out
}

// BuildForm attaches a fresh overlay to one entity, returning a new entity
// value. The caller assigns it back into the store under the entity's ident.
//
// Identity fields are seeded with a fresh temporary key when the entity lacks
// one, and start out valid. Plain fields are seeded from the entity's current
// property, or the field default when the property is absent, and start out
// unchecked. Seeded values (temp keys and defaults for absent properties) are
// written into the entity's real properties as well, so a freshly built form
// is never dirty. Subform links are recorded but not recursively built; use
// InitForm for that.
//
// Calling BuildForm on an already-initialized entity rebuilds the overlay
// from scratch; use InitForm when in-progress edits must survive.
func BuildForm(spec Spec, e store.Entity) (store.Entity, error) {
	if e == nil {
		return nil, errors.New("form: cannot build a form on a nil entity")
	}
	if spec.Type == nil {
		return nil, errors.New("form: spec has no entity type")
	}

	out := e.Clone()
	st := State{
		Elements: make(map[string]Field, len(spec.Fields)),
		Fields:   make(map[string]FieldState, len(spec.Fields)),
	}
	for _, f := range spec.Fields {
		st.Elements[f.Name] = f
		st.Order = append(st.Order, f.Name)
		if f.IsSubform() {
			st.Subforms = append(st.Subforms, f)
			continue
		}
		switch f.Kind {
		case KindIdentity:
			v, ok := out[f.Name]
			if !ok || v == nil {
				v = store.NewTempKey()
				out[f.Name] = v
			}
			st.Fields[f.Name] = FieldState{Value: v, Validity: ValidityValid}
		default:
			v, ok := out[f.Name]
			if !ok {
				v = f.Default
				out[f.Name] = v
			}
			st.Fields[f.Name] = FieldState{Value: v, Validity: ValidityUnchecked}
		}
	}
	st.Ident = spec.Type.IdentOf(out)
	out[StateKey] = st
	return out, nil
}

// InitForm overlays the entity at id and, recursively, every subform instance
// reachable from it through the spec's subform links. It is idempotent:
// already-initialized entities are left untouched, so repeated calls never
// clobber in-progress edits. Idents absent from the store are skipped; the
// initializer never invents entities.
//
// Traversal is cycle-safe: a visited count scoped to this single call bounds
// descent to one visit per ident, so cyclic and repeated-reference graphs
// terminate.
func InitForm(s store.Store, spec Spec, id store.Ident) store.Store {
	visited := map[store.Ident]int{}
	return initForm(s, spec, id, visited)
}

func initForm(s store.Store, spec Spec, id store.Ident, visited map[store.Ident]int) store.Store {
	e, ok := s.Entity(id)
	if !ok {
		return s
	}
	if !Initialized(e) {
		built, err := BuildForm(spec, e)
		if err != nil {
			return s
		}
		e = built
		s = s.With(id, e)
	}
	for _, link := range spec.Fields {
		if !link.IsSubform() {
			continue
		}
		target, err := targetCaps(link.Target)
		if err != nil {
			continue
		}
		childSpec := Spec{Type: target, Fields: target.FormFields()}
		refs, ok := store.Refs(e[link.Name])
		if !ok {
			continue
		}
		for _, ref := range refs {
			visited[ref]++
			if ref.Nil() || visited[ref] != 1 {
				continue
			}
			s = initForm(s, childSpec, ref, visited)
		}
	}
	return s
}
