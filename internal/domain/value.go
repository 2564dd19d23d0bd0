package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the payload held by a Value.
type ValueKind uint8

const (
	// KindAbsent is the zero kind: the field is not present at all.
	KindAbsent ValueKind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindFileRef
	KindUpload
	KindList
)

var kindNames = [...]string{"absent", "null", "string", "number", "bool", "file_ref", "upload", "list"}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Upload is a file received with a submission that has not been stored yet.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Value is a typed field value. The zero Value is NotPresent, which is
// distinct from an empty string, false, and null.
type Value struct {
	kind   ValueKind
	str    string
	num    float64
	b      bool
	upload *Upload
	list   []FieldEntry
}

// NotPresent is returned by lookups for names that do not exist.
var NotPresent = Value{}

func Null() Value                 { return Value{kind: KindNull} }
func String(s string) Value       { return Value{kind: KindString, str: s} }
func Number(f float64) Value      { return Value{kind: KindNumber, num: f} }
func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func FileRef(ref string) Value    { return Value{kind: KindFileRef, str: ref} }
func UploadValue(u *Upload) Value { return Value{kind: KindUpload, upload: u} }

// List wraps a nested field list. It only models the double-wrapped storage shape.
func List(entries []FieldEntry) Value { return Value{kind: KindList, list: entries} }

func (v Value) Kind() ValueKind { return v.kind }

// IsPresent reports whether v is anything other than NotPresent.
func (v Value) IsPresent() bool { return v.kind != KindAbsent }

func (v Value) IsNull() bool { return v.kind == KindNull }

// IsBlank reports whether v carries no usable data: absent, null, an empty or
// whitespace-only string, or an empty list.
func (v Value) IsBlank() bool {
	switch v.kind {
	case KindAbsent, KindNull:
		return true
	case KindString, KindFileRef:
		return strings.TrimSpace(v.str) == ""
	case KindList:
		return len(v.list) == 0
	case KindUpload:
		return v.upload == nil
	}
	return false
}

func (v Value) AsString() (string, bool) {
	if v.kind == KindString {
		return v.str, true
	}
	return "", false
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind == KindNumber {
		return v.num, true
	}
	return 0, false
}

func (v Value) AsBool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

func (v Value) AsFileRef() (string, bool) {
	if v.kind == KindFileRef {
		return v.str, true
	}
	return "", false
}

func (v Value) AsUpload() (*Upload, bool) {
	if v.kind == KindUpload {
		return v.upload, true
	}
	return nil, false
}

func (v Value) AsList() ([]FieldEntry, bool) {
	if v.kind == KindList {
		return v.list, true
	}
	return nil, false
}

// Canonical returns the wire string for primitive values. Numbers use the
// shortest exact decimal form, booleans "true"/"false". Absent and null
// render as "". Lists and uploads have no canonical string.
func (v Value) Canonical() string {
	switch v.kind {
	case KindString, KindFileRef:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<not present>"
	case KindNull:
		return "<null>"
	case KindUpload:
		if v.upload == nil {
			return "<upload>"
		}
		return "<upload " + v.upload.Filename + ">"
	case KindList:
		return fmt.Sprintf("<list %d>", len(v.list))
	}
	return v.Canonical()
}

// Equal compares kind and payload. Uploads compare by identity.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString, KindFileRef:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindUpload:
		return v.upload == o.upload
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i].Name != o.list[i].Name || !v.list[i].Value.Equal(o.list[i].Value) {
				return false
			}
		}
	}
	return true
}

// MarshalJSON renders the value the way API clients expect: numbers and
// booleans keep their JSON type, absent and null become null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindAbsent, KindNull:
		return []byte("null"), nil
	case KindString, KindFileRef:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return json.Marshal(FormatNumber(v.num))
		}
		return []byte(FormatNumber(v.num)), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return nil, fmt.Errorf("marshal value: %s cannot be serialized", v.kind)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}
	*v = ValueFromAny(raw)
	return nil
}

// ValueFromAny converts a decoded JSON value into a Value. Arrays whose
// elements all look like {name, value} pairs become a List; other arrays and
// objects are kept as their JSON text.
func ValueFromAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return String(x.String())
		}
		return Number(f)
	case []FieldEntry:
		return List(x)
	case []any:
		if entries, ok := entriesFromAny(x); ok {
			return List(entries)
		}
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return String(fmt.Sprint(raw))
	}
	return String(string(b))
}

func entriesFromAny(items []any) ([]FieldEntry, bool) {
	entries := make([]FieldEntry, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		name, ok := m["name"].(string)
		if !ok {
			return nil, false
		}
		value := NotPresent
		if raw, exists := m["value"]; exists {
			value = ValueFromAny(raw)
		}
		entries = append(entries, FieldEntry{Name: name, Value: value})
	}
	return entries, true
}

// FormatNumber renders f in its canonical decimal form ("3", "2.5", "-0.125").
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseNumber parses a finite number from s. NaN and infinities are rejected.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
