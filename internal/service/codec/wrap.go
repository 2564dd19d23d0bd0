package codec

import "github.com/sujay090/Dynamic-form-sub001/internal/domain"

// maxWrapDepth bounds unwrapping of records nested more than once.
const maxWrapDepth = 4

// Unwrap returns the flat field list of a stored record. Some producers store
// the whole list as the value of a single entry named "fieldsData"; the
// nested entries are returned first, followed by any flat siblings whose
// names are not already present. Other lists are returned unchanged.
func Unwrap(entries []domain.FieldEntry) []domain.FieldEntry {
	for depth := 0; depth < maxWrapDepth; depth++ {
		idx := wrapperIndex(entries)
		if idx < 0 {
			return entries
		}
		nested, _ := entries[idx].Value.AsList()

		seen := make(map[string]bool, len(nested))
		out := make([]domain.FieldEntry, 0, len(nested)+len(entries)-1)
		for _, e := range nested {
			seen[e.Name] = true
			out = append(out, e)
		}
		for i, e := range entries {
			if i == idx || seen[e.Name] {
				continue
			}
			out = append(out, e)
		}
		entries = out
	}
	return entries
}

// Wrap nests entries in the double-wrapped shape.
func Wrap(entries []domain.FieldEntry) []domain.FieldEntry {
	return []domain.FieldEntry{{Name: WrapperKey, Value: domain.List(entries)}}
}

// IsWrapped reports whether entries use the double-wrapped shape.
func IsWrapped(entries []domain.FieldEntry) bool {
	return wrapperIndex(entries) >= 0
}

// GetField returns the stored value for name without coercion, or
// domain.NotPresent when no entry has that name.
func GetField(entries []domain.FieldEntry, name string) domain.Value {
	for _, e := range Unwrap(entries) {
		if e.Name == name {
			return e.Value
		}
	}
	return domain.NotPresent
}

func wrapperIndex(entries []domain.FieldEntry) int {
	for i, e := range entries {
		if e.Name == WrapperKey && e.Value.Kind() == domain.KindList {
			return i
		}
	}
	return -1
}
