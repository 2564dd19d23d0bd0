package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/codec"
)

// Decoded is a record with its fields decoded for display.
type Decoded struct {
	ID        uuid.UUID        `json:"_id"`
	FormType  domain.FormType  `json:"formType"`
	Fields    *domain.FieldMap `json:"fields"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Get returns a record by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return rec, nil
}

// ListByType returns all records of formType, newest first.
func (s *Service) ListByType(ctx context.Context, formType domain.FormType) ([]*domain.Record, error) {
	recs, err := s.records.ListByType(ctx, formType)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", formType, err)
	}
	return recs, nil
}

// DeleteByID removes a record. It returns domain.ErrNotFound when no record has id.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	var formType domain.FormType
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.records.GetByID(ctx, id)
		if err != nil {
			return err
		}
		formType = rec.FormType
		return s.records.Delete(ctx, id)
	})
	if formType != "" {
		s.observe(formType, OpDelete, err)
	}
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}

	s.log.InfoContext(ctx, "record deleted",
		slog.String("form_type", formType.String()),
		slog.String("record_id", id.String()),
	)
	return nil
}

// Hints returns decode hints for formType. Records of a form whose
// definition is gone decode with no hints.
func (s *Service) Hints(ctx context.Context, formType domain.FormType) (codec.Hints, error) {
	def, err := s.catalog.Get(ctx, formType)
	if errors.Is(err, domain.ErrNotFound) {
		return codec.Hints{}, nil
	}
	if err != nil {
		return codec.Hints{}, err
	}
	return codec.HintsFor(def), nil
}

// Decode decodes one record for display.
func (s *Service) Decode(ctx context.Context, rec *domain.Record) (Decoded, error) {
	hints, err := s.Hints(ctx, rec.FormType)
	if err != nil {
		return Decoded{}, err
	}
	return s.decode(rec, hints), nil
}

// ListDecoded returns the records of formType decoded for display.
func (s *Service) ListDecoded(ctx context.Context, formType domain.FormType) ([]Decoded, error) {
	recs, err := s.ListByType(ctx, formType)
	if err != nil {
		return nil, err
	}
	hints, err := s.Hints(ctx, formType)
	if err != nil {
		return nil, err
	}
	out := make([]Decoded, len(recs))
	for i, rec := range recs {
		out[i] = s.decode(rec, hints)
	}
	return out, nil
}

func (s *Service) decode(rec *domain.Record, hints codec.Hints) Decoded {
	return Decoded{
		ID:        rec.ID,
		FormType:  rec.FormType,
		Fields:    s.codec.Decode(rec.FieldsData, hints),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
