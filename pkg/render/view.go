package render

import (
	"strings"

	"github.com/barisa/untangled-ui/pkg/form"
	"github.com/barisa/untangled-ui/pkg/store"
)

// FieldView is the render-facing projection of one form field: everything a
// renderer needs, read through the engine's accessors, nothing more.
type FieldView struct {
	Name     string
	Label    string
	Kind     form.Kind
	Value    any
	Validity form.Validity
	CSSClass string
	Options  []form.Option
}

// FormView is the render-facing projection of one initialized form node.
// Subform links are omitted; the embedding application decides how child
// forms nest visually and renders each node separately.
type FormView struct {
	Ident  store.Ident
	Fields []FieldView
}

// NewFormView projects an initialized entity into a FormView. It fails with
// form.ErrNotInitialized when the entity carries no overlay.
func NewFormView(e store.Entity) (FormView, error) {
	st, err := form.StateOf(e)
	if err != nil {
		return FormView{}, err
	}
	view := FormView{Ident: st.Ident}
	for _, name := range st.ElementNames() {
		f, ok := st.Config(name)
		if !ok || f.IsSubform() {
			continue
		}
		view.Fields = append(view.Fields, FieldView{
			Name:     name,
			Label:    Label(name),
			Kind:     f.Kind,
			Value:    st.Value(name),
			Validity: st.FieldValidity(name),
			CSSClass: st.CSSClass(name),
			Options:  f.Options,
		})
	}
	return view, nil
}

// Label derives a human-readable label from a field name: separators become
// spaces and each word is capitalized, so "first_name" reads "First Name".
func Label(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ", ".", " ", "/", " ").Replace(name)
	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
