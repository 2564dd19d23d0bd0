package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FieldEntry is one {name, value} pair of a record's persisted field list.
type FieldEntry struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}

// Record is a persisted entity instance. FieldsData is the schema-less
// encoding of the typed record; timestamps are set by the store.
type Record struct {
	ID         uuid.UUID    `json:"_id"`
	FormType   FormType     `json:"formType"`
	FieldsData []FieldEntry `json:"fieldsData"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// FieldPredicate matches records whose field Name holds Value (canonical string).
type FieldPredicate struct {
	Name  string
	Value string
}

// FieldMap is an insertion-ordered map of field name to typed Value.
// The zero value is ready to use.
type FieldMap struct {
	keys   []string
	values map[string]Value
}

// NewFieldMap builds a FieldMap from entries, keeping their order. A later
// entry with the same name overwrites the earlier value in place.
func NewFieldMap(entries ...FieldEntry) *FieldMap {
	m := &FieldMap{}
	for _, e := range entries {
		m.Set(e.Name, e.Value)
	}
	return m
}

// Set stores v under name. Existing names keep their position.
func (m *FieldMap) Set(name string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = v
}

// Get returns the value for name, or NotPresent.
func (m *FieldMap) Get(name string) Value {
	if m == nil || m.values == nil {
		return NotPresent
	}
	v, ok := m.values[name]
	if !ok {
		return NotPresent
	}
	return v
}

// Has reports whether name was set, even to null.
func (m *FieldMap) Has(name string) bool {
	if m == nil || m.values == nil {
		return false
	}
	_, ok := m.values[name]
	return ok
}

func (m *FieldMap) Delete(name string) {
	if !m.Has(name) {
		return
	}
	delete(m.values, name)
	for i, k := range m.keys {
		if k == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the names in insertion order.
func (m *FieldMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Entries returns the map as an ordered {name, value} list.
func (m *FieldMap) Entries() []FieldEntry {
	if m == nil {
		return nil
	}
	out := make([]FieldEntry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, FieldEntry{Name: k, Value: m.values[k]})
	}
	return out
}

// Equal reports whether both maps hold equal values under the same names in
// the same order.
func (m *FieldMap) Equal(o *FieldMap) bool {
	if m.Len() != o.Len() {
		return false
	}
	if m == nil || o == nil {
		return true
	}
	for i, k := range m.keys {
		if o.keys[i] != k || !m.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the map as a JSON object with keys in insertion order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
