package rest

import (
	"bytes"
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/export"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/fieldconfig"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/record"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/schema"
)

var (
	_ formCatalog   = &formCatalogMock{}
	_ recordService = &recordServiceMock{}
	_ exportService = &exportServiceMock{}
)

type formCatalogMock struct {
	ListFunc             func(ctx context.Context) ([]domain.FormDefinition, error)
	GetFunc              func(ctx context.Context, formType domain.FormType) (domain.FormDefinition, error)
	StateFunc            func(formType domain.FormType) domain.LoadState
	ReloadFunc           func(formType domain.FormType)
	ValidatorFunc        func(ctx context.Context, formType domain.FormType) (*schema.Validator, domain.FormDefinition, error)
	CreateCustomFormFunc func(ctx context.Context, name string) (domain.FormDefinition, error)
	RenameFormFunc       func(ctx context.Context, formType domain.FormType, name string) (domain.FormDefinition, error)
	AddFieldFunc         func(ctx context.Context, formType domain.FormType, in fieldconfig.Input) (domain.FieldConfig, error)
	RemoveFieldFunc      func(ctx context.Context, formType domain.FormType, fieldID string) error
	UpdateFieldFunc      func(ctx context.Context, formType domain.FormType, fieldID string, p fieldconfig.Patch) (domain.FieldConfig, error)
	SetFieldsFunc        func(ctx context.Context, formType domain.FormType, fields []domain.FieldConfig) (domain.FormDefinition, error)
}

func (m *formCatalogMock) List(ctx context.Context) ([]domain.FormDefinition, error) {
	return m.ListFunc(ctx)
}

func (m *formCatalogMock) Get(ctx context.Context, formType domain.FormType) (domain.FormDefinition, error) {
	return m.GetFunc(ctx, formType)
}

func (m *formCatalogMock) State(formType domain.FormType) domain.LoadState {
	if m.StateFunc == nil {
		return domain.LoadStateReady
	}
	return m.StateFunc(formType)
}

func (m *formCatalogMock) Reload(formType domain.FormType) {
	m.ReloadFunc(formType)
}

func (m *formCatalogMock) Validator(ctx context.Context, formType domain.FormType) (*schema.Validator, domain.FormDefinition, error) {
	return m.ValidatorFunc(ctx, formType)
}

func (m *formCatalogMock) CreateCustomForm(ctx context.Context, name string) (domain.FormDefinition, error) {
	return m.CreateCustomFormFunc(ctx, name)
}

func (m *formCatalogMock) RenameForm(ctx context.Context, formType domain.FormType, name string) (domain.FormDefinition, error) {
	return m.RenameFormFunc(ctx, formType, name)
}

func (m *formCatalogMock) AddField(ctx context.Context, formType domain.FormType, in fieldconfig.Input) (domain.FieldConfig, error) {
	return m.AddFieldFunc(ctx, formType, in)
}

func (m *formCatalogMock) RemoveField(ctx context.Context, formType domain.FormType, fieldID string) error {
	return m.RemoveFieldFunc(ctx, formType, fieldID)
}

func (m *formCatalogMock) UpdateField(ctx context.Context, formType domain.FormType, fieldID string, p fieldconfig.Patch) (domain.FieldConfig, error) {
	return m.UpdateFieldFunc(ctx, formType, fieldID, p)
}

func (m *formCatalogMock) SetFields(ctx context.Context, formType domain.FormType, fields []domain.FieldConfig) (domain.FormDefinition, error) {
	return m.SetFieldsFunc(ctx, formType, fields)
}

type recordServiceMock struct {
	SubmitFunc      func(ctx context.Context, in record.SubmitInput) (*domain.Record, error)
	UpdateFunc      func(ctx context.Context, in record.UpdateInput) (*domain.Record, error)
	GetFunc         func(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	ListDecodedFunc func(ctx context.Context, formType domain.FormType) ([]record.Decoded, error)
	DeleteByIDFunc  func(ctx context.Context, id uuid.UUID) error
	DecodeFunc      func(ctx context.Context, rec *domain.Record) (record.Decoded, error)
}

func (m *recordServiceMock) Submit(ctx context.Context, in record.SubmitInput) (*domain.Record, error) {
	return m.SubmitFunc(ctx, in)
}

func (m *recordServiceMock) Update(ctx context.Context, in record.UpdateInput) (*domain.Record, error) {
	return m.UpdateFunc(ctx, in)
}

func (m *recordServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	return m.GetFunc(ctx, id)
}

func (m *recordServiceMock) ListDecoded(ctx context.Context, formType domain.FormType) ([]record.Decoded, error) {
	return m.ListDecodedFunc(ctx, formType)
}

func (m *recordServiceMock) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return m.DeleteByIDFunc(ctx, id)
}

// Decode defaults to copying the stored entries as-is.
func (m *recordServiceMock) Decode(ctx context.Context, rec *domain.Record) (record.Decoded, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(ctx, rec)
	}
	return record.Decoded{
		ID:        rec.ID,
		FormType:  rec.FormType,
		Fields:    domain.NewFieldMap(rec.FieldsData...),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

type exportServiceMock struct {
	ExportFunc func(ctx context.Context, formType domain.FormType) (*bytes.Buffer, string, error)
	ImportFunc func(ctx context.Context, formType domain.FormType, r io.Reader) (*export.ImportResult, error)
}

func (m *exportServiceMock) Export(ctx context.Context, formType domain.FormType) (*bytes.Buffer, string, error) {
	return m.ExportFunc(ctx, formType)
}

func (m *exportServiceMock) Import(ctx context.Context, formType domain.FormType, r io.Reader) (*export.ImportResult, error) {
	return m.ImportFunc(ctx, formType, r)
}
