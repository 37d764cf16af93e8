package form

import (
	"github.com/barisa/untangled-ui/pkg/store"
)

// UpdateValidation re-runs the field's validator against its current overlay
// value and records the outcome. It never touches the value itself. Fields
// without a validator reference are always valid; fields referencing an
// unregistered validator are always invalid.
func UpdateValidation(reg *Registry, st State, name string) State {
	f, ok := st.Elements[name]
	if !ok || !f.Editable() {
		return st
	}
	out := st.clone()
	fs := out.Fields[name]
	fs.Validity = checkValue(reg, f, fs.Value)
	out.Fields[name] = fs
	return out
}

func checkValue(reg *Registry, f Field, value any) Validity {
	if f.ValidatorRef == "" {
		return ValidityValid
	}
	fn, err := reg.Get(f.ValidatorRef)
	if err != nil {
		return ValidityInvalid
	}
	if fn(value, f.ValidatorArgs) {
		return ValidityValid
	}
	return ValidityInvalid
}

// ValidateFields applies UpdateValidation to every editable field on one
// node. It does not recurse into subforms.
func ValidateFields(reg *Registry, st State) State {
	out := st.clone()
	for name, f := range out.Elements {
		if !f.Editable() {
			continue
		}
		fs := out.Fields[name]
		fs.Validity = checkValue(reg, f, fs.Value)
		out.Fields[name] = fs
	}
	return out
}

// ValidateField re-validates a single field on the entity at id and returns
// the updated store. It fails with ErrNotInitialized when the entity carries
// no overlay.
func ValidateField(reg *Registry, s store.Store, id store.Ident, field string) (store.Store, error) {
	e, ok := s.Entity(id)
	if !ok {
		return s, ErrNotInitialized
	}
	st, err := StateOf(e)
	if err != nil {
		return s, err
	}
	st = UpdateValidation(reg, st, field)
	return s.With(id, e.With(StateKey, st)), nil
}

// ValidateForm re-validates every node in the resolved form tree rooted at
// rootID and returns the updated store. Nodes without an overlay are left
// untouched.
func ValidateForm(reg *Registry, s store.Store, rootSpec Spec, rootID store.Ident) store.Store {
	for _, node := range FormsIn(s, rootSpec, rootID) {
		st, err := StateOf(node.Entity)
		if err != nil {
			continue
		}
		st = ValidateFields(reg, st)
		s = s.With(node.Ident, node.Entity.With(StateKey, st))
	}
	return s
}

// Valid reports whether every editable field on one node has been checked
// and found valid. It is vacuously true when there are no editable fields.
// Unchecked fields count against validity; run validation first.
func Valid(st State) bool {
	for name, f := range st.Elements {
		if !f.Editable() {
			continue
		}
		if st.FieldValidity(name) != ValidityValid {
			return false
		}
	}
	return true
}

// Invalid reports whether any editable field on one node has been checked
// and found invalid. Unchecked fields are ignored.
func Invalid(st State) bool {
	for name, f := range st.Elements {
		if !f.Editable() {
			continue
		}
		if st.FieldValidity(name) == ValidityInvalid {
			return true
		}
	}
	return false
}

// TreeValid folds Valid over every initialized node in the resolved tree.
func TreeValid(s store.Store, rootSpec Spec, rootID store.Ident) bool {
	nodes := FormsIn(s, rootSpec, rootID)
	if len(nodes) == 0 {
		return false
	}
	for _, node := range nodes {
		st, err := StateOf(node.Entity)
		if err != nil {
			continue
		}
		if !Valid(st) {
			return false
		}
	}
	return true
}

// TreeInvalid folds Invalid over every initialized node in the resolved tree.
func TreeInvalid(s store.Store, rootSpec Spec, rootID store.Ident) bool {
	for _, node := range FormsIn(s, rootSpec, rootID) {
		st, err := StateOf(node.Entity)
		if err != nil {
			continue
		}
		if Invalid(st) {
			return true
		}
	}
	return false
}
