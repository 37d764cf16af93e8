// Package testsupport provides shared entity-type fixtures used by tests,
// the example programs and the CLI: a Person with many Phone subforms, and a
// mutually linked pair of types exercising cyclic graphs.
package testsupport

import (
	"github.com/barisa/untangled-ui/pkg/form"
	"github.com/barisa/untangled-ui/pkg/store"
)

// PhoneOptions are the selectable phone types.
var PhoneOptions = []form.Option{
	{Key: "home", Label: "Home"},
	{Key: "work", Label: "Work"},
}

// USPhonePattern matches a formatted US phone number like "(555) 121-2121".
const USPhonePattern = `\(\d{3}\) \d{3}-\d{4}`

type personType struct{}

// Person is the root fixture type.
var Person personType

func (personType) Table() string { return "people" }

func (personType) IdentOf(e store.Entity) store.Ident {
	return store.Ident{Table: "people", Key: e["id"]}
}

func (personType) Shape() form.Shape {
	return form.Shape{
		{Prop: "phones", Target: Phone, ToMany: true},
	}
}

func (personType) FormFields() []form.Field {
	return []form.Field{
		form.IdentityField("id"),
		form.TextField("name", form.WithValidator("words", map[string]any{"min": 2})),
		form.IntegerField("age", form.WithValidator("in-range", map[string]any{"min": 1, "max": 110})),
		form.SubformField("phones", Phone, form.WithCardinality(form.CardinalityMany)),
	}
}

type phoneType struct{}

// Phone is the nested fixture type.
var Phone phoneType

func (phoneType) Table() string { return "phones" }

func (phoneType) IdentOf(e store.Entity) store.Ident {
	return store.Ident{Table: "phones", Key: e["id"]}
}

func (phoneType) Shape() form.Shape { return nil }

func (phoneType) FormFields() []form.Field {
	return []form.Field{
		form.IdentityField("id"),
		form.TextField("number", form.WithValidator("matches", map[string]any{"pattern": USPhonePattern})),
		form.MustDropdownField("type", PhoneOptions, form.WithDefault("home")),
	}
}

// Mate and Buddy are mutually linked to-one types for cycle tests.
type mateType struct{}

var Mate mateType

func (mateType) Table() string { return "mates" }

func (mateType) IdentOf(e store.Entity) store.Ident {
	return store.Ident{Table: "mates", Key: e["id"]}
}

func (mateType) Shape() form.Shape {
	return form.Shape{{Prop: "buddy", Target: Buddy}}
}

func (mateType) FormFields() []form.Field {
	return []form.Field{
		form.IdentityField("id"),
		form.TextField("name"),
		form.SubformField("buddy", Buddy),
	}
}

type buddyType struct{}

var Buddy buddyType

func (buddyType) Table() string { return "buddies" }

func (buddyType) IdentOf(e store.Entity) store.Ident {
	return store.Ident{Table: "buddies", Key: e["id"]}
}

func (buddyType) Shape() form.Shape {
	return form.Shape{{Prop: "mate", Target: Mate}}
}

func (buddyType) FormFields() []form.Field {
	return []form.Field{
		form.IdentityField("id"),
		form.TextField("name"),
		form.SubformField("mate", Mate),
	}
}

// PersonSpec returns the Person form spec.
func PersonSpec() form.Spec {
	spec, _ := form.SpecFor(Person)
	return spec
}

// PhoneSpec returns the Phone form spec.
func PhoneSpec() form.Spec {
	spec, _ := form.SpecFor(Phone)
	return spec
}

// TonyIdent and TonyPhoneIdent name the sample entities.
var (
	TonyIdent      = store.Ident{Table: "people", Key: 1}
	TonyPhoneIdent = store.Ident{Table: "phones", Key: 1}
)

// SampleStore returns a store holding one person with one phone, matching
// the walkthrough used across tests and examples.
func SampleStore() store.Store {
	return store.Store{
		TonyIdent: store.Entity{
			"id":     1,
			"name":   "Tony",
			"age":    23,
			"phones": []store.Ident{TonyPhoneIdent},
		},
		TonyPhoneIdent: store.Entity{
			"id":     1,
			"number": "5551212",
			"type":   "home",
		},
	}
}

// CycleStore returns a two-entity store where a mate and a buddy reference
// each other, for traversal termination tests.
func CycleStore() (store.Store, store.Ident, store.Ident) {
	mateID := store.Ident{Table: "mates", Key: 1}
	buddyID := store.Ident{Table: "buddies", Key: 1}
	s := store.Store{
		mateID:  store.Entity{"id": 1, "name": "Sam", "buddy": buddyID},
		buddyID: store.Entity{"id": 1, "name": "Alex", "mate": mateID},
	}
	return s, mateID, buddyID
}
