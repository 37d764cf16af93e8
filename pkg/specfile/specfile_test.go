package specfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barisa/untangled-ui/pkg/form"
	"github.com/barisa/untangled-ui/pkg/specfile"
	"github.com/barisa/untangled-ui/pkg/testsupport"
)

const personDoc = `
entity: people
fields:
  - name: id
    kind: identity
  - name: name
    kind: text
    validator: words
    args: {min: 2}
    validateOnBlur: true
    css: name-input
  - name: age
    kind: integer
    validator: in-range
    args: {min: 1, max: 110}
  - name: vip
    kind: checkbox
    default: true
  - name: type
    kind: dropdown
    default: home
    options:
      - {key: home, label: Home}
      - {key: work, label: Work}
  - name: phones
    kind: subform
    target: phones
    cardinality: many
`

func fixtureTypes() map[string]form.FormType {
	return map[string]form.FormType{
		"people": testsupport.Person,
		"phones": testsupport.Phone,
	}
}

func TestLoadPersonDocument(t *testing.T) {
	spec, err := specfile.Load(strings.NewReader(personDoc), fixtureTypes())
	require.NoError(t, err)

	assert.Equal(t, "people", spec.Type.Table())
	require.Len(t, spec.Fields, 6)

	name := spec.Fields[1]
	assert.Equal(t, form.KindText, name.Kind)
	assert.Equal(t, "words", name.ValidatorRef)
	assert.Equal(t, map[string]any{"min": 2}, name.ValidatorArgs)
	assert.True(t, name.ValidateOnBlur)
	assert.Equal(t, "name-input", name.CSSClass)

	vip := spec.Fields[3]
	assert.Equal(t, true, vip.Default)

	dropdown := spec.Fields[4]
	assert.Equal(t, "home", dropdown.Default)
	assert.Len(t, dropdown.Options, 2)

	phones := spec.Fields[5]
	assert.True(t, phones.IsSubform())
	assert.Equal(t, form.CardinalityMany, phones.Cardinality)
	assert.Equal(t, "phones", phones.Target.Table())
}

func TestLoadRejectsUnknownEntity(t *testing.T) {
	_, err := specfile.Load(strings.NewReader("entity: ghosts\nfields: [{name: id, kind: identity}]"), fixtureTypes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity type")
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	doc := "entity: people\nfields: [{name: id, kind: slider}]"
	_, err := specfile.Load(strings.NewReader(doc), fixtureTypes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestLoadRejectsUnknownSubformTarget(t *testing.T) {
	doc := "entity: people\nfields: [{name: pets, kind: subform, target: pets}]"
	_, err := specfile.Load(strings.NewReader(doc), fixtureTypes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target type")
}

func TestLoadSurfacesDropdownConfigurationError(t *testing.T) {
	doc := `
entity: people
fields:
  - name: type
    kind: dropdown
    default: mobile
    options:
      - {key: home, label: Home}
`
	_, err := specfile.Load(strings.NewReader(doc), fixtureTypes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither the none sentinel nor an option key")
}

func TestLoadRejectsUnknownDocumentFields(t *testing.T) {
	doc := "entity: people\nbogus: true\nfields: [{name: id, kind: identity}]"
	_, err := specfile.Load(strings.NewReader(doc), fixtureTypes())
	require.Error(t, err)
}

func TestLoadedSpecDrivesTheEngine(t *testing.T) {
	doc := `
entity: phones
fields:
  - name: id
    kind: identity
  - name: number
    kind: text
    validator: matches
    args: {pattern: '\(\d{3}\) \d{3}-\d{4}'}
  - name: type
    kind: dropdown
    default: home
    options:
      - {key: home, label: Home}
      - {key: work, label: Work}
`
	spec, err := specfile.Load(strings.NewReader(doc), fixtureTypes())
	require.NoError(t, err)

	s := form.InitForm(testsupport.SampleStore(), spec, testsupport.TonyPhoneIdent)
	s = form.ValidateForm(form.DefaultRegistry(), s, spec, testsupport.TonyPhoneIdent)

	phone, _ := s.Entity(testsupport.TonyPhoneIdent)
	st, err := form.StateOf(phone)
	require.NoError(t, err)
	assert.Equal(t, form.ValidityInvalid, st.FieldValidity("number"))
}
