package form

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/barisa/untangled-ui/pkg/store"
)

// Delta is the commit payload: ident to changed field names. A mutation
// collaborator may forward it to a remote persistence layer.
type Delta map[store.Ident][]string

var integerPattern = regexp.MustCompile(`^-?\d+$`)

// coerceValue applies kind-specific input coercion. Integer fields coerce
// strings that fully match an integer pattern; partial input passes through
// unchanged so the user can keep typing.
func coerceValue(f Field, value any) any {
	if f.Kind != KindInteger {
		return value
	}
	s, ok := value.(string)
	if !ok || !integerPattern.MatchString(s) {
		return value
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return value
	}
	return n
}

func withState(s store.Store, id store.Ident, mutate func(State) (State, error)) (store.Store, error) {
	e, ok := s.Entity(id)
	if !ok {
		return s, ErrNotInitialized
	}
	st, err := StateOf(e)
	if err != nil {
		return s, err
	}
	st, err = mutate(st)
	if err != nil {
		return s, err
	}
	return s.With(id, e.With(StateKey, st)), nil
}

// UpdateField sets a field's overlay value on the entity at id. Only the
// value changes; validity is untouched until the next validation pass.
func UpdateField(s store.Store, id store.Ident, field string, value any) (store.Store, error) {
	return withState(s, id, func(st State) (State, error) {
		f, ok := st.Elements[field]
		if !ok || !f.Editable() {
			return st, fmt.Errorf("form: %s has no editable field %q", id, field)
		}
		out := st.clone()
		fs := out.Fields[field]
		fs.Value = coerceValue(f, value)
		out.Fields[field] = fs
		return out, nil
	})
}

// ToggleField flips a checkbox field's overlay value.
func ToggleField(s store.Store, id store.Ident, field string) (store.Store, error) {
	return withState(s, id, func(st State) (State, error) {
		f, ok := st.Elements[field]
		if !ok || f.Kind != KindCheckbox {
			return st, fmt.Errorf("form: %s has no checkbox field %q", id, field)
		}
		out := st.clone()
		fs := out.Fields[field]
		current, _ := fs.Value.(bool)
		fs.Value = !current
		out.Fields[field] = fs
		return out, nil
	})
}

// SelectOption sets a dropdown field's overlay value to one of its declared
// option keys (or the None sentinel).
func SelectOption(s store.Store, id store.Ident, field, key string) (store.Store, error) {
	return withState(s, id, func(st State) (State, error) {
		f, ok := st.Elements[field]
		if !ok || f.Kind != KindDropdown {
			return st, fmt.Errorf("form: %s has no dropdown field %q", id, field)
		}
		if key != None && !hasOptionKey(f.Options, key) {
			return st, fmt.Errorf("form: dropdown %q has no option %q", field, key)
		}
		out := st.clone()
		fs := out.Fields[field]
		fs.Value = key
		out.Fields[field] = fs
		return out, nil
	})
}

// CommitToEntity validates the whole resolved tree and, when no node is
// invalid, copies every node's editable overlay values into the entity's real
// properties. The transform is all-or-nothing: on validation failure the
// returned store carries updated validity markers but no copied values, the
// delta is nil and committed is false. On success the delta lists the fields
// that were synchronized per ident.
func CommitToEntity(reg *Registry, s store.Store, rootSpec Spec, rootID store.Ident) (out store.Store, delta Delta, committed bool) {
	s = ValidateForm(reg, s, rootSpec, rootID)
	nodes := FormsIn(s, rootSpec, rootID)
	if len(nodes) == 0 {
		return s, nil, false
	}
	for _, node := range nodes {
		st, err := StateOf(node.Entity)
		if err != nil {
			continue
		}
		if Invalid(st) {
			return s, nil, false
		}
	}

	delta = Delta{}
	for _, node := range nodes {
		st, err := StateOf(node.Entity)
		if err != nil {
			continue
		}
		if changed := changedFields(st, node.Entity); len(changed) > 0 {
			delta[node.Ident] = changed
		}
		e := node.Entity.Clone()
		for name, f := range st.Elements {
			if !f.Editable() {
				continue
			}
			e[name] = st.Fields[name].Value
		}
		s = s.With(node.Ident, e)
	}
	return s, delta, true
}

// ResetFromEntity copies every node's real property values back into the
// overlay, discarding in-progress edits, then re-validates the tree so UI
// state reflects the restored values immediately.
func ResetFromEntity(reg *Registry, s store.Store, rootSpec Spec, rootID store.Ident) store.Store {
	for _, node := range FormsIn(s, rootSpec, rootID) {
		st, err := StateOf(node.Entity)
		if err != nil {
			continue
		}
		out := st.clone()
		for name, f := range out.Elements {
			if !f.Editable() {
				continue
			}
			fs := out.Fields[name]
			fs.Value = node.Entity[name]
			out.Fields[name] = fs
		}
		s = s.With(node.Ident, node.Entity.With(StateKey, out))
	}
	return ValidateForm(reg, s, rootSpec, rootID)
}
