// Package record implements the record pipeline: definition lookup,
// validation, duplicate checks, encoding and persistence.
package record

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/codec"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/schema"
)

type recordRepo interface {
	Create(ctx context.Context, rec *domain.Record) (*domain.Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	// Replace overwrites fieldsData and bumps updated_at.
	Replace(ctx context.Context, id uuid.UUID, fieldsData []domain.FieldEntry) (*domain.Record, error)
	ListByType(ctx context.Context, formType domain.FormType) ([]*domain.Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type formCatalog interface {
	Get(ctx context.Context, formType domain.FormType) (domain.FormDefinition, error)
	Validator(ctx context.Context, formType domain.FormType) (*schema.Validator, domain.FormDefinition, error)
}

type duplicateChecker interface {
	CheckDuplicate(ctx context.Context, formType domain.FormType, candidate *domain.FieldMap, excludeID *uuid.UUID) error
}

type recordCodec interface {
	Encode(ctx context.Context, formType domain.FormType, m *domain.FieldMap) ([]domain.FieldEntry, error)
	Decode(entries []domain.FieldEntry, hints codec.Hints) *domain.FieldMap
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type writeObserver interface {
	RecordWritten(formType domain.FormType, op, outcome string)
}

// Operation names reported to the write observer.
const (
	OpSubmit = "submit"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Service provides record submission and management.
type Service struct {
	records  recordRepo
	catalog  formCatalog
	dups     duplicateChecker
	codec    recordCodec
	tx       txManager
	observer writeObserver
	log      *slog.Logger
}

// NewService creates a record Service. observer may be nil.
func NewService(
	log *slog.Logger,
	records recordRepo,
	catalog formCatalog,
	dups duplicateChecker,
	codec recordCodec,
	tx txManager,
	observer writeObserver,
) *Service {
	return &Service{
		records:  records,
		catalog:  catalog,
		dups:     dups,
		codec:    codec,
		tx:       tx,
		observer: observer,
		log:      log.With("service", "record"),
	}
}

func (s *Service) observe(formType domain.FormType, op string, err error) {
	if s.observer == nil {
		return
	}
	s.observer.RecordWritten(formType, op, Outcome(err))
}
