package uniqueness

import (
	"maps"
	"slices"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

// Policy maps a form type to the field names that must be unique across its
// records. A record conflicts when ANY key matches. Form types without an
// entry have no uniqueness constraint.
type Policy struct {
	keys map[domain.FormType][]string
}

// NewPolicy builds a policy from table. Empty key lists are dropped.
func NewPolicy(table map[domain.FormType][]string) Policy {
	p := Policy{keys: make(map[domain.FormType][]string, len(table))}
	for ft, keys := range table {
		if len(keys) > 0 {
			p.keys[ft] = slices.Clone(keys)
		}
	}
	return p
}

// DefaultPolicy returns the key table for the built-in form types.
func DefaultPolicy() Policy {
	return NewPolicy(map[domain.FormType][]string{
		domain.FormTypeStudent: {"studentEmail", "phoneNumber"},
		domain.FormTypeBranch:  {"addBranch", "branchCode", "email"},
		domain.FormTypeCourse:  {"courseName", "courseCode"},
	})
}

// Keys returns the unique key fields of formType in check order.
func (p Policy) Keys(formType domain.FormType) []string {
	return slices.Clone(p.keys[formType])
}

// With returns a copy of p with formType's keys replaced. Passing no keys
// removes the constraint.
func (p Policy) With(formType domain.FormType, keys ...string) Policy {
	out := Policy{keys: maps.Clone(p.keys)}
	if out.keys == nil {
		out.keys = make(map[domain.FormType][]string)
	}
	if len(keys) == 0 {
		delete(out.keys, formType)
		return out
	}
	out.keys[formType] = slices.Clone(keys)
	return out
}

// FormTypes lists the form types that carry keys, sorted.
func (p Policy) FormTypes() []domain.FormType {
	return slices.Sorted(maps.Keys(p.keys))
}
