package fieldconfig

import (
	"strings"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

// Input holds admin-authored metadata for a new field.
type Input struct {
	Name        string
	Label       string
	Description string
	InputType   domain.InputType
	Category    domain.Category
	Options     string // comma-separated; required for select
	Position    *int   // nil = append after the current fields
	Required    *bool  // nil = required
	Enabled     *bool  // nil = enabled
	Searchable  bool
}

// Validate checks all attributes and collects all errors.
func (i Input) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Code: domain.CodeRequired, Message: "required"})
	} else if domain.IsReservedFieldName(name) {
		errs = append(errs, domain.FieldError{Field: "name", Message: "reserved name"})
	}
	if strings.TrimSpace(i.Label) == "" {
		errs = append(errs, domain.FieldError{Field: "label", Code: domain.CodeRequired, Message: "required"})
	}
	if !i.InputType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "inputType", Message: "unsupported input type"})
	}
	if i.Category != "" && !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if i.InputType == domain.InputSelect && len(ParseOptions(i.Options)) == 0 {
		errs = append(errs, domain.FieldError{Field: "options", Code: domain.CodeRequired, Message: "select fields need at least one option"})
	}
	if i.Position != nil && *i.Position < 0 {
		errs = append(errs, domain.FieldError{Field: "position", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.FieldDefinitionError{Errors: errs}
	}
	return nil
}

// Patch holds a partial update of an existing field. nil = don't change.
type Patch struct {
	Label       *string
	Description *string
	Enabled     *bool
	Required    *bool
	Searchable  *bool
	Position    *int
	Category    *domain.Category
	Options     *string
}

// Validate checks all attributes and collects all errors.
func (p Patch) Validate() error {
	var errs []domain.FieldError

	if p.Label != nil && strings.TrimSpace(*p.Label) == "" {
		errs = append(errs, domain.FieldError{Field: "label", Code: domain.CodeRequired, Message: "required"})
	}
	if p.Position != nil && *p.Position < 0 {
		errs = append(errs, domain.FieldError{Field: "position", Message: "must be >= 0"})
	}
	if p.Category != nil && !p.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return &domain.FieldDefinitionError{Errors: errs}
	}
	return nil
}

// ParseOptions splits a comma-separated option string into trimmed,
// non-empty options. Duplicates keep their first occurrence.
func ParseOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
