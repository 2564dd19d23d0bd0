package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

func testDef() domain.FormDefinition {
	return domain.FormDefinition{
		FormType: "enquiry",
		Fields: []domain.FieldConfig{
			{Name: "name", Enabled: true, Position: 2, InputType: domain.InputText},
			{Name: "mobile", Enabled: true, Position: 1, InputType: domain.InputTel},
			{Name: "age", Enabled: true, Position: 3, InputType: domain.InputNumber},
			{Name: "subscribed", Enabled: true, Position: 4, InputType: domain.InputCheckbox},
			{Name: "resume", Enabled: true, Position: 5, InputType: domain.InputFile},
			{Name: "old", Enabled: false, Position: 6, InputType: domain.InputNumber},
		},
	}
}

func TestFromRaw_OrderAndCoercion(t *testing.T) {
	t.Parallel()

	var raw map[string]any
	err := json.Unmarshal([]byte(`{
		"formType": "enquiry",
		"zeta": "last",
		"name": "  Ravi ",
		"age": "21",
		"mobile": 9876543210,
		"subscribed": "on",
		"old": "7",
		"alpha": 1
	}`), &raw)
	assert.NoError(t, err)

	upload := &domain.Upload{Filename: "cv.pdf"}
	m := FromRaw(testDef(), raw, map[string]*domain.Upload{"resume": upload})

	assert.Equal(t, []string{"mobile", "name", "age", "subscribed", "resume", "alpha", "old", "zeta"}, m.Keys())
	assert.Equal(t, domain.String("9876543210"), m.Get("mobile"))
	assert.Equal(t, domain.String("Ravi"), m.Get("name"))
	assert.Equal(t, domain.Number(21), m.Get("age"))
	assert.Equal(t, domain.Bool(true), m.Get("subscribed"))
	assert.Equal(t, domain.UploadValue(upload), m.Get("resume"))
	// Keys without an enabled field keep their raw form.
	assert.Equal(t, domain.String("7"), m.Get("old"))
	assert.Equal(t, domain.Number(1), m.Get("alpha"))
	assert.False(t, m.Has("formType"))
}

func TestNormalize_LeavesBadValuesForValidator(t *testing.T) {
	t.Parallel()

	m := domain.NewFieldMap(
		domain.FieldEntry{Name: "age", Value: domain.String("twenty")},
		domain.FieldEntry{Name: "subscribed", Value: domain.String("maybe")},
		domain.FieldEntry{Name: "name", Value: domain.Null()},
		domain.FieldEntry{Name: "resume", Value: domain.String("")},
	)
	Normalize(testDef(), m)

	assert.Equal(t, domain.String("twenty"), m.Get("age"))
	assert.Equal(t, domain.String("maybe"), m.Get("subscribed"))
	assert.True(t, m.Get("name").IsNull())
	assert.Equal(t, domain.String(""), m.Get("resume"))
}

func TestFromRaw_DropsReservedKeys(t *testing.T) {
	t.Parallel()

	m := FromRaw(testDef(), map[string]any{
		"_id":        "forged",
		"formType":   "enquiry",
		"fieldsData": []any{},
		"name":       "Ravi",
	}, nil)

	assert.Equal(t, []string{"name"}, m.Keys())
}

func TestArrange(t *testing.T) {
	t.Parallel()

	m := domain.NewFieldMap(
		domain.FieldEntry{Name: "zeta", Value: domain.String("z")},
		domain.FieldEntry{Name: "_id", Value: domain.String("x")},
		domain.FieldEntry{Name: "age", Value: domain.Number(3)},
		domain.FieldEntry{Name: "old", Value: domain.String("7")},
		domain.FieldEntry{Name: "mobile", Value: domain.String("9876543210")},
	)

	got := Arrange(testDef(), m)
	assert.Equal(t, []string{"mobile", "age", "old", "zeta"}, got.Keys())
	assert.Equal(t, domain.Number(3), got.Get("age"))
	// The input map is left as it was.
	assert.Equal(t, 5, m.Len())
}
