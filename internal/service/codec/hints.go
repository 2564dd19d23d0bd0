package codec

import "github.com/sujay090/Dynamic-form-sub001/internal/domain"

// Hints tells Decode which stored strings carry a richer type.
type Hints struct {
	Numbers  map[string]bool
	Booleans map[string]bool
	Files    map[string]bool
}

// HintsFor derives hints from every field of def, enabled or not, so values
// stored under a disabled field still decode with their type.
func HintsFor(def domain.FormDefinition) Hints {
	h := Hints{
		Numbers:  make(map[string]bool),
		Booleans: make(map[string]bool),
		Files:    make(map[string]bool),
	}
	for _, f := range def.Fields {
		switch f.InputType {
		case domain.InputNumber:
			h.Numbers[f.Name] = true
		case domain.InputCheckbox:
			h.Booleans[f.Name] = true
		case domain.InputFile:
			h.Files[f.Name] = true
		}
	}
	return h
}
