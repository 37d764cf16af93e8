package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/barisa/untangled-ui/pkg/form"
	"github.com/barisa/untangled-ui/pkg/store"
	"github.com/barisa/untangled-ui/pkg/testsupport"
)

func initializedSample(t *testing.T) (store.Store, form.Spec) {
	t.Helper()
	spec := testsupport.PersonSpec()
	return form.InitForm(testsupport.SampleStore(), spec, testsupport.TonyIdent), spec
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := form.NewRegistry()
	if err := reg.Register("always", func(any, map[string]any) bool { return true }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("always", func(any, map[string]any) bool { return true }); err == nil {
		t.Fatalf("duplicate registration must fail")
	}
	if err := reg.Register("", nil); err == nil {
		t.Fatalf("empty id must fail")
	}
	if !reg.Has("always") {
		t.Fatalf("registered validator not found")
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("unregistered lookup must fail")
	}
	if diff := cmp.Diff([]string{"always"}, reg.List()); diff != "" {
		t.Fatalf("list (-want +got):\n%s", diff)
	}
}

func TestBuiltinValidators(t *testing.T) {
	reg := form.DefaultRegistry()

	words, _ := reg.Get("words")
	if words("Tony", map[string]any{"min": 2}) {
		t.Fatalf("single word should fail min 2")
	}
	if !words("Tony Kay", map[string]any{"min": 2}) {
		t.Fatalf("two words should pass min 2")
	}

	inRange, _ := reg.Get("in-range")
	if !inRange(23, map[string]any{"min": 1, "max": 110}) {
		t.Fatalf("23 should be in [1,110]")
	}
	if inRange(0, map[string]any{"min": 1, "max": 110}) || inRange(111, map[string]any{"min": 1, "max": 110}) {
		t.Fatalf("bounds should be enforced")
	}
	if inRange("23", map[string]any{"min": 1}) {
		t.Fatalf("non-numeric value should fail in-range")
	}

	matches, _ := reg.Get("matches")
	if matches("5551212", map[string]any{"pattern": testsupport.USPhonePattern}) {
		t.Fatalf("unformatted number should fail the pattern")
	}
	if !matches("(555) 121-2121", map[string]any{"pattern": testsupport.USPhonePattern}) {
		t.Fatalf("formatted number should pass the pattern")
	}
}

func TestUpdateValidationTouchesOnlyValidity(t *testing.T) {
	s, _ := initializedSample(t)
	reg := form.DefaultRegistry()
	person, _ := s.Entity(testsupport.TonyIdent)
	st, _ := form.StateOf(person)

	st2 := form.UpdateValidation(reg, st, "name")

	if st2.Value("name") != st.Value("name") {
		t.Fatalf("validation must never change values")
	}
	if st2.FieldValidity("name") != form.ValidityInvalid {
		t.Fatalf("single-word name should be invalid, got %v", st2.FieldValidity("name"))
	}
	if st.FieldValidity("name") != form.ValidityUnchecked {
		t.Fatalf("input state must not be mutated")
	}
}

func TestFieldWithoutValidatorIsAlwaysValid(t *testing.T) {
	mateSpec, _ := form.SpecFor(testsupport.Mate)
	built, _ := form.BuildForm(mateSpec, store.Entity{"id": 1, "name": "Sam"})
	st, _ := form.StateOf(built)

	st = form.UpdateValidation(form.NewRegistry(), st, "name")
	if st.FieldValidity("name") != form.ValidityValid {
		t.Fatalf("field without validator ref must be valid, got %v", st.FieldValidity("name"))
	}
}

func TestUnregisteredValidatorNeverValidates(t *testing.T) {
	s, _ := initializedSample(t)
	empty := form.NewRegistry()
	person, _ := s.Entity(testsupport.TonyIdent)
	st, _ := form.StateOf(person)

	st = form.ValidateFields(empty, st)
	if st.FieldValidity("name") != form.ValidityInvalid {
		t.Fatalf("unregistered validator must mark the field invalid")
	}
	if st.FieldValidity("age") != form.ValidityInvalid {
		t.Fatalf("unregistered validator must mark the field invalid")
	}
}

func TestValidateFormCoversTree(t *testing.T) {
	s, spec := initializedSample(t)
	reg := form.DefaultRegistry()

	s = form.ValidateForm(reg, s, spec, testsupport.TonyIdent)

	person, _ := s.Entity(testsupport.TonyIdent)
	pst, _ := form.StateOf(person)
	if pst.FieldValidity("name") != form.ValidityInvalid {
		t.Fatalf("name should be invalid: %v", pst.FieldValidity("name"))
	}
	if pst.FieldValidity("age") != form.ValidityValid {
		t.Fatalf("age should be valid: %v", pst.FieldValidity("age"))
	}

	phone, _ := s.Entity(testsupport.TonyPhoneIdent)
	fst, _ := form.StateOf(phone)
	if fst.FieldValidity("number") != form.ValidityInvalid {
		t.Fatalf("phone number should be invalid: %v", fst.FieldValidity("number"))
	}
}

func TestValidateFieldOnUninitializedEntity(t *testing.T) {
	s := testsupport.SampleStore()
	if _, err := form.ValidateField(form.DefaultRegistry(), s, testsupport.TonyIdent, "name"); err != form.ErrNotInitialized {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestValidAndInvalidAggregates(t *testing.T) {
	mateSpec, _ := form.SpecFor(testsupport.Mate)
	built, _ := form.BuildForm(mateSpec, store.Entity{"id": 1, "name": "Sam"})
	st, _ := form.StateOf(built)

	if form.Valid(st) {
		t.Fatalf("unchecked fields count against Valid")
	}
	if form.Invalid(st) {
		t.Fatalf("unchecked fields are ignored by Invalid")
	}

	st = form.ValidateFields(form.NewRegistry(), st)
	if !form.Valid(st) {
		t.Fatalf("all-valid node should aggregate valid")
	}
	if form.Invalid(st) {
		t.Fatalf("all-valid node should not aggregate invalid")
	}
}

func TestTreeAggregates(t *testing.T) {
	s, spec := initializedSample(t)
	reg := form.DefaultRegistry()

	s = form.ValidateForm(reg, s, spec, testsupport.TonyIdent)
	if form.TreeValid(s, spec, testsupport.TonyIdent) {
		t.Fatalf("tree with invalid fields cannot be valid")
	}
	if !form.TreeInvalid(s, spec, testsupport.TonyIdent) {
		t.Fatalf("tree with invalid fields must aggregate invalid")
	}

	s, _ = form.UpdateField(s, testsupport.TonyIdent, "name", "Tony Kay")
	s, _ = form.UpdateField(s, testsupport.TonyPhoneIdent, "number", "(555) 121-2121")
	s = form.ValidateForm(reg, s, spec, testsupport.TonyIdent)

	if !form.TreeValid(s, spec, testsupport.TonyIdent) {
		t.Fatalf("fully valid tree should aggregate valid")
	}
	if form.TreeInvalid(s, spec, testsupport.TonyIdent) {
		t.Fatalf("fully valid tree should not aggregate invalid")
	}
}
