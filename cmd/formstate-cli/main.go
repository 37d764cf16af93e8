// Command formstate-cli is an interactive editor for a person form living in
// a normalized store: edit fields, validate the form tree, and commit or
// reset the whole tree. On a successful commit the delta payload is printed
// as JSON, the way a mutation collaborator would forward it to a remote
// persistence layer.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"

	"github.com/barisa/untangled-ui/pkg/form"
	"github.com/barisa/untangled-ui/pkg/store"
	"github.com/barisa/untangled-ui/pkg/testsupport"
)

type personDoc struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Age    int        `json:"age"`
	Phones []phoneDoc `json:"phones"`
}

type phoneDoc struct {
	ID     int    `json:"id"`
	Number string `json:"number"`
	Type   string `json:"type"`
}

func main() {
	dataPath := flag.String("data", "", "JSON file with person data (built-in sample if empty)")
	flag.Parse()

	s, rootID, err := loadStore(*dataPath)
	if err != nil {
		log.Fatalf("load data: %v", err)
	}

	spec := testsupport.PersonSpec()
	reg := form.DefaultRegistry()
	s = form.InitForm(s, spec, rootID)

	for {
		action := ""
		prompt := &survey.Select{
			Message: "Action:",
			Options: []string{"edit", "validate", "commit", "reset", "quit"},
		}
		if err := survey.AskOne(prompt, &action); err != nil {
			log.Fatalf("prompt: %v", err)
		}

		switch action {
		case "edit":
			s = editField(s, spec, rootID)
		case "validate":
			s = form.ValidateForm(reg, s, spec, rootID)
			printValidity(s, spec, rootID)
		case "commit":
			next, delta, committed := form.CommitToEntity(reg, s, spec, rootID)
			s = next
			if !committed {
				fmt.Println("commit aborted: fix the invalid fields first")
				printValidity(s, spec, rootID)
				continue
			}
			printDelta(delta)
		case "reset":
			s = form.ResetFromEntity(reg, s, spec, rootID)
			fmt.Println("edits discarded")
		case "quit":
			return
		}
	}
}

func loadStore(path string) (store.Store, store.Ident, error) {
	if path == "" {
		return testsupport.SampleStore(), testsupport.TonyIdent, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, store.Ident{}, err
	}
	var doc personDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, store.Ident{}, err
	}

	rootID := store.Ident{Table: "people", Key: doc.ID}
	phones := make([]store.Ident, 0, len(doc.Phones))
	s := store.Store{}
	for _, p := range doc.Phones {
		id := store.Ident{Table: "phones", Key: p.ID}
		phones = append(phones, id)
		s[id] = store.Entity{"id": p.ID, "number": p.Number, "type": p.Type}
	}
	s[rootID] = store.Entity{"id": doc.ID, "name": doc.Name, "age": doc.Age, "phones": phones}
	return s, rootID, nil
}

type fieldChoice struct {
	ident store.Ident
	field form.Field
}

func editField(s store.Store, spec form.Spec, rootID store.Ident) store.Store {
	choices := map[string]fieldChoice{}
	var labels []string
	for _, node := range form.FormsIn(s, spec, rootID) {
		st, err := form.StateOf(node.Entity)
		if err != nil {
			continue
		}
		for _, f := range st.EditableFields() {
			label := fmt.Sprintf("%s %s (%v)", node.Ident, f.Name, st.Value(f.Name))
			labels = append(labels, label)
			choices[label] = fieldChoice{ident: node.Ident, field: f}
		}
	}
	if len(labels) == 0 {
		fmt.Println("nothing editable")
		return s
	}

	picked := ""
	if err := survey.AskOne(&survey.Select{Message: "Field:", Options: labels}, &picked); err != nil {
		log.Fatalf("prompt: %v", err)
	}
	choice := choices[picked]

	next, err := applyEdit(s, choice)
	if err != nil {
		fmt.Printf("edit failed: %v\n", err)
		return s
	}
	return next
}

func applyEdit(s store.Store, choice fieldChoice) (store.Store, error) {
	switch choice.field.Kind {
	case form.KindCheckbox:
		return form.ToggleField(s, choice.ident, choice.field.Name)
	case form.KindDropdown:
		options := []string{form.None}
		for _, opt := range choice.field.Options {
			options = append(options, opt.Key)
		}
		key := ""
		if err := survey.AskOne(&survey.Select{Message: "Option:", Options: options}, &key); err != nil {
			return s, err
		}
		return form.SelectOption(s, choice.ident, choice.field.Name, key)
	default:
		value := ""
		if err := survey.AskOne(&survey.Input{Message: "New value:"}, &value); err != nil {
			return s, err
		}
		return form.UpdateField(s, choice.ident, choice.field.Name, value)
	}
}

func printValidity(s store.Store, spec form.Spec, rootID store.Ident) {
	for _, node := range form.FormsIn(s, spec, rootID) {
		st, err := form.StateOf(node.Entity)
		if err != nil {
			continue
		}
		for _, f := range st.EditableFields() {
			fmt.Printf("  %s %s = %v [%s]\n", node.Ident, f.Name, st.Value(f.Name), st.FieldValidity(f.Name))
		}
	}
}

func printDelta(delta form.Delta) {
	payload := map[string][]string{}
	for id, fields := range delta {
		payload[id.String()] = fields
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatalf("encode delta: %v", err)
	}
	fmt.Printf("committed, delta:\n%s\n", out)
}
