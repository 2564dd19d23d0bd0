// Package fieldconfig maintains the field list of a form definition:
// adding, removing and patching FieldConfig entries while keeping enabled
// field names unique.
package fieldconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

// NewID generates field identifiers. Tests may replace it.
var NewID = func() string { return uuid.NewString() }

// Add validates in and appends the resulting field to def.
// Position defaults to len(def.Fields)+1.
func Add(def *domain.FormDefinition, in Input) (domain.FieldConfig, error) {
	if err := in.Validate(); err != nil {
		return domain.FieldConfig{}, err
	}

	field := domain.FieldConfig{
		ID:          NewID(),
		Name:        strings.TrimSpace(in.Name),
		Label:       strings.TrimSpace(in.Label),
		Description: strings.TrimSpace(in.Description),
		Enabled:     in.Enabled == nil || *in.Enabled,
		Required:    in.Required == nil || *in.Required,
		Position:    len(def.Fields) + 1,
		Category:    in.Category,
		InputType:   in.InputType,
	}
	if in.Position != nil {
		field.Position = *in.Position
	}
	if field.Category == "" {
		field.Category = domain.CategoryBasic
	}
	if in.InputType.HasOptions() {
		field.Options = ParseOptions(in.Options)
	}
	if in.InputType == domain.InputSelect {
		field.Searchable = in.Searchable
	}

	if field.Enabled {
		if _, taken := def.FieldByName(field.Name); taken {
			return domain.FieldConfig{}, domain.NewFieldDefinitionError("name",
				fmt.Sprintf("%q is already used by an enabled field", field.Name))
		}
	}

	def.Fields = append(def.Fields, field)
	return field, nil
}

// Remove deletes the field with fieldID from def. It is a no-op when the
// field is absent and reports whether anything was removed. Records keep
// values stored under the removed name.
func Remove(def *domain.FormDefinition, fieldID string) bool {
	idx := def.FieldIndex(fieldID)
	if idx < 0 {
		return false
	}
	def.Fields = append(def.Fields[:idx], def.Fields[idx+1:]...)
	return true
}

// Update applies p to the field with fieldID. Enabling a field whose name is
// held by another enabled field is rejected.
func Update(def *domain.FormDefinition, fieldID string, p Patch) (domain.FieldConfig, error) {
	if err := p.Validate(); err != nil {
		return domain.FieldConfig{}, err
	}

	idx := def.FieldIndex(fieldID)
	if idx < 0 {
		return domain.FieldConfig{}, fmt.Errorf("field %s: %w", fieldID, domain.ErrNotFound)
	}
	field := def.Fields[idx]

	if p.Label != nil {
		field.Label = strings.TrimSpace(*p.Label)
	}
	if p.Description != nil {
		field.Description = strings.TrimSpace(*p.Description)
	}
	if p.Required != nil {
		field.Required = *p.Required
	}
	if p.Position != nil {
		field.Position = *p.Position
	}
	if p.Category != nil {
		field.Category = *p.Category
	}
	if p.Searchable != nil && field.InputType == domain.InputSelect {
		field.Searchable = *p.Searchable
	}
	if p.Options != nil && field.InputType.HasOptions() {
		opts := ParseOptions(*p.Options)
		if field.InputType == domain.InputSelect && len(opts) == 0 {
			return domain.FieldConfig{}, domain.NewFieldDefinitionError("options", "select fields need at least one option")
		}
		field.Options = opts
	}
	if p.Enabled != nil {
		if *p.Enabled && !field.Enabled {
			if other, taken := def.FieldByName(field.Name); taken && other.ID != field.ID {
				return domain.FieldConfig{}, domain.NewFieldDefinitionError("enabled",
					fmt.Sprintf("%q is already used by an enabled field", field.Name))
			}
		}
		field.Enabled = *p.Enabled
	}

	def.Fields[idx] = field
	return field, nil
}

// ValidateSet checks a complete replacement field list: every field must be
// well-formed, ids unique, and names unique among enabled fields.
// Missing ids are generated and empty categories default to basic.
func ValidateSet(fields []domain.FieldConfig) ([]domain.FieldConfig, error) {
	var errs []domain.FieldError
	out := make([]domain.FieldConfig, len(fields))
	ids := make(map[string]bool, len(fields))
	names := make(map[string]bool, len(fields))

	for i, f := range fields {
		prefix := fmt.Sprintf("fields[%d]", i)

		f.Name = strings.TrimSpace(f.Name)
		f.Label = strings.TrimSpace(f.Label)
		if f.ID == "" {
			f.ID = NewID()
		}
		if f.Category == "" {
			f.Category = domain.CategoryBasic
		}

		in := Input{Name: f.Name, Label: f.Label, InputType: f.InputType, Category: f.Category, Options: strings.Join(f.Options, ",")}
		var defErr *domain.FieldDefinitionError
		if err := in.Validate(); errors.As(err, &defErr) {
			for _, fe := range defErr.Errors {
				fe.Field = prefix + "." + fe.Field
				errs = append(errs, fe)
			}
		}

		if ids[f.ID] {
			errs = append(errs, domain.FieldError{Field: prefix + ".id", Message: "duplicate id"})
		}
		ids[f.ID] = true

		if f.Enabled && f.Name != "" {
			if names[f.Name] {
				errs = append(errs, domain.FieldError{Field: prefix + ".name", Message: fmt.Sprintf("%q is already used by an enabled field", f.Name)})
			}
			names[f.Name] = true
		}

		if f.InputType.HasOptions() {
			f.Options = ParseOptions(strings.Join(f.Options, ","))
		} else {
			f.Options = nil
		}
		if f.InputType != domain.InputSelect {
			f.Searchable = false
		}
		out[i] = f
	}

	if len(errs) > 0 {
		return nil, &domain.FieldDefinitionError{Errors: errs}
	}
	return out, nil
}
