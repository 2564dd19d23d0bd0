package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/codec"
)

// Submit validates a raw submission against the current definition of its
// form type, rejects duplicates, stores uploads and inserts the record.
// Only writes to a resolved form type are observed.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (rec *domain.Record, err error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	validator, def, err := s.catalog.Validator(ctx, in.FormType)
	if err != nil {
		return nil, err
	}
	defer func() { s.observe(in.FormType, OpSubmit, err) }()

	values := FromRaw(def, in.Fields, in.Files)
	if err := validator.Validate(values); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.dups.CheckDuplicate(ctx, in.FormType, values, nil); err != nil {
			return err
		}
		entries, err := s.codec.Encode(ctx, in.FormType, values)
		if err != nil {
			return err
		}
		rec, err = s.records.Create(ctx, &domain.Record{FormType: in.FormType, FieldsData: entries})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("submit %s: %w", in.FormType, err)
	}

	s.log.InfoContext(ctx, "record created",
		slog.String("form_type", in.FormType.String()),
		slog.String("record_id", rec.ID.String()),
	)
	return rec, nil
}

// Update replaces the fields of an existing record after validating them
// against the current definition. The record itself is excluded from the
// duplicate check, so unchanged unique values are accepted.
func (s *Service) Update(ctx context.Context, in UpdateInput) (rec *domain.Record, err error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.records.GetByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("update record %s: %w", in.ID, err)
	}
	formType := existing.FormType

	validator, def, err := s.catalog.Validator(ctx, formType)
	if err != nil {
		return nil, err
	}
	defer func() { s.observe(formType, OpUpdate, err) }()

	values := s.codec.Decode(in.FieldsData, codec.HintsFor(def))
	for name, u := range in.Files {
		if u != nil {
			values.Set(name, domain.UploadValue(u))
		}
	}
	values = Arrange(def, values)
	Normalize(def, values)
	if err := validator.Validate(values); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.dups.CheckDuplicate(ctx, formType, values, &existing.ID); err != nil {
			return err
		}
		entries, err := s.codec.Encode(ctx, formType, values)
		if err != nil {
			return err
		}
		rec, err = s.records.Replace(ctx, existing.ID, entries)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update record %s: %w", in.ID, err)
	}

	s.log.InfoContext(ctx, "record updated",
		slog.String("form_type", formType.String()),
		slog.String("record_id", rec.ID.String()),
	)
	return rec, nil
}

// Outcome classifies a write result for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrDuplicateEntity):
		return "duplicate"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		return "unavailable"
	}
	return "error"
}
