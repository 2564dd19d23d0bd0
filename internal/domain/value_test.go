package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotPresent_DistinctFromEmptyValues(t *testing.T) {
	t.Parallel()

	assert.False(t, NotPresent.IsPresent())
	assert.False(t, NotPresent.Equal(String("")))
	assert.False(t, NotPresent.Equal(Bool(false)))
	assert.False(t, NotPresent.Equal(Null()))
	assert.True(t, String("").IsPresent())
	assert.True(t, Bool(false).IsPresent())
	assert.True(t, Null().IsPresent())
}

func TestValue_Canonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "integer number", v: Number(3), want: "3"},
		{name: "fraction", v: Number(2.5), want: "2.5"},
		{name: "negative", v: Number(-0.125), want: "-0.125"},
		{name: "large", v: Number(1e21), want: "1000000000000000000000"},
		{name: "true", v: Bool(true), want: "true"},
		{name: "false", v: Bool(false), want: "false"},
		{name: "string", v: String("North Campus"), want: "North Campus"},
		{name: "file ref", v: FileRef("uploads/student/a.png"), want: "uploads/student/a.png"},
		{name: "null", v: Null(), want: ""},
		{name: "absent", v: NotPresent, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.v.Canonical())
		})
	}
}

func TestValue_IsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, NotPresent.IsBlank())
	assert.True(t, Null().IsBlank())
	assert.True(t, String("  ").IsBlank())
	assert.True(t, List(nil).IsBlank())
	assert.False(t, String("x").IsBlank())
	assert.False(t, Bool(false).IsBlank())
	assert.False(t, Number(0).IsBlank())
}

func TestValue_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	entries := []FieldEntry{
		{Name: "courseName", Value: String("Go Basics")},
		{Name: "fee", Value: Number(1200.5)},
		{Name: "isActive", Value: Bool(true)},
		{Name: "notes", Value: Null()},
	}

	b, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name":"courseName","value":"Go Basics"},
		{"name":"fee","value":1200.5},
		{"name":"isActive","value":true},
		{"name":"notes","value":null}
	]`, string(b))

	var got []FieldEntry
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, len(entries))
	for i := range entries {
		assert.Equal(t, entries[i].Name, got[i].Name)
		assert.Truef(t, entries[i].Value.Equal(got[i].Value), "entry %d: got %v, want %v", i, got[i].Value, entries[i].Value)
	}
}

func TestValue_UnmarshalDoubleWrapped(t *testing.T) {
	t.Parallel()

	raw := `[{"name":"fieldsData","value":[{"name":"courseName","value":"X"}]}]`

	var got []FieldEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Len(t, got, 1)

	inner, ok := got[0].Value.AsList()
	require.True(t, ok, "value should decode as a nested list")
	require.Len(t, inner, 1)
	assert.Equal(t, "courseName", inner[0].Name)
	assert.True(t, inner[0].Value.Equal(String("X")))
}

func TestValueFromAny_NonEntryArrayKeptAsJSON(t *testing.T) {
	t.Parallel()

	v := ValueFromAny([]any{"a", "b"})
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, `["a","b"]`, s)
}

func TestValue_MarshalUploadFails(t *testing.T) {
	t.Parallel()

	_, err := json.Marshal(UploadValue(&Upload{Filename: "a.png"}))
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	f, ok := ParseNumber(" 42.5 ")
	assert.True(t, ok)
	assert.Equal(t, 42.5, f)

	for _, s := range []string{"", "abc", "NaN", "Inf", "-Inf", "1e400"} {
		_, ok := ParseNumber(s)
		assert.Falsef(t, ok, "ParseNumber(%q) should fail", s)
	}
	assert.False(t, math.IsNaN(f))
}
