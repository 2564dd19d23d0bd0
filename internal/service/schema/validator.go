// Package schema synthesizes record validators from form field definitions.
//
// Build is pure: the same field list always yields a validator with the same
// acceptance behavior, so validators can be cached by Fingerprint and shared
// between concurrent requests.
package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

// Validator checks typed records against a fixed set of enabled fields.
type Validator struct {
	fields      []domain.FieldConfig
	fingerprint string
}

// Build returns a validator for the enabled fields of fields, in position order.
func Build(fields []domain.FieldConfig) *Validator {
	enabled := domain.SortedEnabled(fields)
	for i := range enabled {
		enabled[i].Options = slices.Clone(enabled[i].Options)
	}
	return &Validator{
		fields:      enabled,
		fingerprint: Fingerprint(fields),
	}
}

// Fields returns the enabled fields the validator enforces.
func (v *Validator) Fields() []domain.FieldConfig {
	return slices.Clone(v.fields)
}

func (v *Validator) Fingerprint() string { return v.fingerprint }

// Validate checks every enforced field and returns a *domain.ValidationError
// listing all violations, or nil. Keys without an enabled field are ignored.
func (v *Validator) Validate(values *domain.FieldMap) error {
	var errs []domain.FieldError

	for _, f := range v.fields {
		val := values.Get(f.Name)
		if val.IsBlank() {
			if f.Required {
				errs = append(errs, domain.FieldError{Field: f.Name, Code: domain.CodeRequired, Message: "required"})
			}
			continue
		}

		chk, ok := checks[f.InputType]
		if !ok {
			errs = append(errs, domain.FieldError{Field: f.Name, Code: domain.CodeInvalidType, Message: "unsupported input type"})
			continue
		}
		if code, msg := chk(f, val); code != "" {
			errs = append(errs, domain.FieldError{Field: f.Name, Code: code, Message: msg})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Fingerprint hashes the attributes of the enabled fields that validation and
// Rules depend on. Descriptions, categories and ids do not affect it.
func Fingerprint(fields []domain.FieldConfig) string {
	type key struct {
		Name      string           `json:"n"`
		Label     string           `json:"l"`
		InputType domain.InputType `json:"t"`
		Required  bool             `json:"r"`
		Options   []string         `json:"o,omitempty"`
	}
	enabled := domain.SortedEnabled(fields)
	keys := make([]key, len(enabled))
	for i, f := range enabled {
		keys[i] = key{Name: f.Name, Label: f.Label, InputType: f.InputType, Required: f.Required, Options: f.Options}
	}
	b, _ := json.Marshal(keys)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
