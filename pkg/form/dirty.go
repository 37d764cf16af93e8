package form

import (
	"sort"

	"github.com/google/go-cmp/cmp"

	"github.com/barisa/untangled-ui/pkg/store"
)

// Dirty reports whether one node's overlay differs from its entity: either
// the entity still carries a temporary identity, or some editable field's
// overlay value differs from the entity's real property. It does not recurse.
func Dirty(e store.Entity) (bool, error) {
	st, err := StateOf(e)
	if err != nil {
		return false, err
	}
	if st.Ident.Temp() {
		return true, nil
	}
	return len(changedFields(st, e)) > 0, nil
}

// AnyDirty OR-folds Dirty over every initialized node in the resolved tree.
func AnyDirty(s store.Store, rootSpec Spec, rootID store.Ident) bool {
	for _, node := range FormsIn(s, rootSpec, rootID) {
		dirty, err := Dirty(node.Entity)
		if err != nil {
			continue
		}
		if dirty {
			return true
		}
	}
	return false
}

// ModifiedFields computes the delta of the resolved tree: for each node with
// at least one changed field, the sorted list of field names whose overlay
// value differs from the entity's real property.
func ModifiedFields(s store.Store, rootSpec Spec, rootID store.Ident) map[store.Ident][]string {
	out := map[store.Ident][]string{}
	for _, node := range FormsIn(s, rootSpec, rootID) {
		st, err := StateOf(node.Entity)
		if err != nil {
			continue
		}
		if changed := changedFields(st, node.Entity); len(changed) > 0 {
			out[node.Ident] = changed
		}
	}
	return out
}

func changedFields(st State, e store.Entity) []string {
	var out []string
	for name, f := range st.Elements {
		if !f.Editable() {
			continue
		}
		if !cmp.Equal(st.Fields[name].Value, e[name]) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
