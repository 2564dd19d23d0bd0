package record

import (
	"github.com/google/uuid"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

// SubmitInput is a raw submission: decoded JSON or form values keyed by
// field name, plus uploaded files keyed by field name.
type SubmitInput struct {
	FormType domain.FormType
	Fields   map[string]any
	Files    map[string]*domain.Upload
}

func (i SubmitInput) Validate() error {
	if i.FormType == "" {
		return domain.NewValidationError("formType", "required")
	}
	return nil
}

// UpdateInput replaces the fields of record ID. FieldsData may use the
// double-wrapped shape.
type UpdateInput struct {
	ID         uuid.UUID
	FieldsData []domain.FieldEntry
	Files      map[string]*domain.Upload
}

func (i UpdateInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return nil
}
