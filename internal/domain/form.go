package domain

import (
	"slices"
	"time"
)

// FieldConfig describes one dynamic field of a form.
type FieldConfig struct {
	ID          string    `json:"id"          yaml:"id"`
	Name        string    `json:"name"        yaml:"name"`
	Label       string    `json:"label"       yaml:"label"`
	Description string    `json:"description" yaml:"description"`
	Enabled     bool      `json:"enabled"     yaml:"enabled"`
	Required    bool      `json:"required"    yaml:"required"`
	Position    int       `json:"position"    yaml:"position"`
	Category    Category  `json:"category"    yaml:"category"`
	InputType   InputType `json:"inputType"   yaml:"input_type"`
	Options     []string  `json:"options,omitempty" yaml:"options"`
	Searchable  bool      `json:"searchable"  yaml:"searchable"`
}

// reservedFieldNames carry record metadata on the wire and never hold field values.
var reservedFieldNames = map[string]bool{
	"formType":   true,
	"fieldsData": true,
	"_id":        true,
}

// IsReservedFieldName reports whether name is one of formType, fieldsData or _id.
func IsReservedFieldName(name string) bool { return reservedFieldNames[name] }

// FormDefinition is the ordered set of fields defining one form type.
type FormDefinition struct {
	FormType  FormType      `json:"formType"`
	Name      string        `json:"name"`
	Custom    bool          `json:"custom"`
	Fields    []FieldConfig `json:"fields"`
	Version   int           `json:"version"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Clone returns a deep copy so callers can mutate without touching shared state.
func (d FormDefinition) Clone() FormDefinition {
	out := d
	out.Fields = make([]FieldConfig, len(d.Fields))
	for i, f := range d.Fields {
		f.Options = slices.Clone(f.Options)
		out.Fields[i] = f
	}
	return out
}

// EnabledFields returns enabled fields ordered by Position. Fields sharing a
// position keep their list order.
func (d FormDefinition) EnabledFields() []FieldConfig {
	return SortedEnabled(d.Fields)
}

// FieldByName returns the enabled field called name.
func (d FormDefinition) FieldByName(name string) (FieldConfig, bool) {
	for _, f := range d.Fields {
		if f.Enabled && f.Name == name {
			return f, true
		}
	}
	return FieldConfig{}, false
}

// FieldIndex returns the index of the field with id, or -1.
func (d FormDefinition) FieldIndex(id string) int {
	for i, f := range d.Fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// SortedEnabled filters enabled fields and stable-sorts them by Position.
func SortedEnabled(fields []FieldConfig) []FieldConfig {
	out := make([]FieldConfig, 0, len(fields))
	for _, f := range fields {
		if f.Enabled {
			out = append(out, f)
		}
	}
	slices.SortStableFunc(out, func(a, b FieldConfig) int {
		return a.Position - b.Position
	})
	return out
}
