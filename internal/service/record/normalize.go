package record

import (
	"slices"
	"strings"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/schema"
)

// FromRaw builds a typed map from a raw submission, ordered by Arrange and
// coerced by Normalize. Uploads replace values of the same name.
func FromRaw(def domain.FormDefinition, raw map[string]any, files map[string]*domain.Upload) *domain.FieldMap {
	m := &domain.FieldMap{}
	for k, v := range raw {
		m.Set(k, domain.ValueFromAny(v))
	}
	for k, u := range files {
		if u != nil {
			m.Set(k, domain.UploadValue(u))
		}
	}

	m = Arrange(def, m)
	Normalize(def, m)
	return m
}

// Arrange returns m reordered: enabled fields of def in position order, then
// the remaining keys sorted by name. Reserved names are dropped.
func Arrange(def domain.FormDefinition, m *domain.FieldMap) *domain.FieldMap {
	out := &domain.FieldMap{}
	for _, f := range def.EnabledFields() {
		if m.Has(f.Name) && !domain.IsReservedFieldName(f.Name) {
			out.Set(f.Name, m.Get(f.Name))
		}
	}
	rest := m.Keys()
	slices.Sort(rest)
	for _, k := range rest {
		if out.Has(k) || domain.IsReservedFieldName(k) {
			continue
		}
		out.Set(k, m.Get(k))
	}
	return out
}

// Normalize coerces values in place to the kind their field's input type
// expects and drops reserved names. Values that cannot be coerced are left
// for the validator to reject. Keys without an enabled field are untouched.
func Normalize(def domain.FormDefinition, m *domain.FieldMap) {
	for _, k := range m.Keys() {
		if domain.IsReservedFieldName(k) {
			m.Delete(k)
		}
	}
	for _, f := range def.EnabledFields() {
		v := m.Get(f.Name)
		if !v.IsPresent() || v.IsNull() {
			continue
		}
		m.Set(f.Name, coerce(f.InputType, v))
	}
}

func coerce(typ domain.InputType, v domain.Value) domain.Value {
	s, isString := v.AsString()
	switch typ {
	case domain.InputNumber:
		if isString {
			if strings.TrimSpace(s) == "" {
				return domain.String("")
			}
			if f, ok := domain.ParseNumber(s); ok {
				return domain.Number(f)
			}
		}
	case domain.InputCheckbox:
		if isString {
			if b, ok := schema.ParseBool(s); ok {
				return domain.Bool(b)
			}
		}
	case domain.InputFile:
		if isString && s != "" {
			return domain.FileRef(s)
		}
	case domain.InputTel:
		switch {
		case isString:
			return domain.String(strings.TrimSpace(s))
		case v.Kind() == domain.KindNumber:
			return domain.String(v.Canonical())
		}
	default:
		switch v.Kind() {
		case domain.KindString:
			return domain.String(strings.TrimSpace(s))
		case domain.KindNumber, domain.KindBool:
			return domain.String(v.Canonical())
		}
	}
	return v
}
