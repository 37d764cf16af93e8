package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/barisa/untangled-ui/pkg/form"
	"github.com/barisa/untangled-ui/pkg/store"
	"github.com/barisa/untangled-ui/pkg/testsupport"
)

func TestDirtyFalseAfterInit(t *testing.T) {
	s, spec := initializedSample(t)

	if form.AnyDirty(s, spec, testsupport.TonyIdent) {
		t.Fatalf("freshly initialized tree must not be dirty")
	}
}

func TestDirtyAfterFieldUpdate(t *testing.T) {
	s, spec := initializedSample(t)

	s, err := form.UpdateField(s, testsupport.TonyIdent, "name", "Tony Kay")
	if err != nil {
		t.Fatalf("update field: %v", err)
	}

	person, _ := s.Entity(testsupport.TonyIdent)
	dirty, err := form.Dirty(person)
	if err != nil {
		t.Fatalf("dirty: %v", err)
	}
	if !dirty {
		t.Fatalf("value-changing update must make the node dirty")
	}
	if !form.AnyDirty(s, spec, testsupport.TonyIdent) {
		t.Fatalf("tree fold should see the dirty node")
	}
}

func TestDirtyOnUninitializedEntity(t *testing.T) {
	if _, err := form.Dirty(store.Entity{"id": 1}); err != form.ErrNotInitialized {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestDirtyOnTemporaryIdentity(t *testing.T) {
	built, _ := form.BuildForm(testsupport.PhoneSpec(), store.Entity{"number": "(555) 121-2121"})
	dirty, err := form.Dirty(built)
	if err != nil {
		t.Fatalf("dirty: %v", err)
	}
	if !dirty {
		t.Fatalf("temporary identity must count as dirty")
	}
}

func TestModifiedFields(t *testing.T) {
	s, spec := initializedSample(t)

	if got := form.ModifiedFields(s, spec, testsupport.TonyIdent); len(got) != 0 {
		t.Fatalf("clean tree should have no modified fields, got %v", got)
	}

	s, _ = form.UpdateField(s, testsupport.TonyIdent, "name", "Tony Kay")
	s, _ = form.UpdateField(s, testsupport.TonyIdent, "age", 24)
	s, _ = form.UpdateField(s, testsupport.TonyPhoneIdent, "number", "(555) 121-2121")

	want := map[store.Ident][]string{
		testsupport.TonyIdent:      {"age", "name"},
		testsupport.TonyPhoneIdent: {"number"},
	}
	if diff := cmp.Diff(want, form.ModifiedFields(s, spec, testsupport.TonyIdent)); diff != "" {
		t.Fatalf("modified fields (-want +got):\n%s", diff)
	}
}
