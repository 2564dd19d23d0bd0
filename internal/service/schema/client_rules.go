package schema

import (
	"slices"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

// Rule is the client-facing description of one field's validation.
type Rule struct {
	Name      string           `json:"name"`
	Label     string           `json:"label"`
	InputType domain.InputType `json:"inputType"`
	Required  bool             `json:"required"`
	Options   []string         `json:"options,omitempty"`
	Pattern   string           `json:"pattern,omitempty"`
	Formats   []string         `json:"formats,omitempty"`
}

var patterns = map[domain.InputType]string{
	domain.InputEmail:  `^[^\s@]+@[^\s@]+\.[^\s@]+$`,
	domain.InputTel:    `^[0-9]{10}$`,
	domain.InputNumber: `^-?[0-9]+(\.[0-9]+)?$`,
}

// Rules describes the validator for generated client-side validation.
func (v *Validator) Rules() []Rule {
	rules := make([]Rule, 0, len(v.fields))
	for _, f := range v.fields {
		r := Rule{
			Name:      f.Name,
			Label:     f.Label,
			InputType: f.InputType,
			Required:  f.Required,
			Pattern:   patterns[f.InputType],
		}
		if f.InputType.HasOptions() {
			r.Options = slices.Clone(f.Options)
		}
		if f.InputType == domain.InputDate {
			r.Formats = slices.Clone(DateLayouts)
		}
		rules = append(rules, r)
	}
	return rules
}
