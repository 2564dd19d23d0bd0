// Package uniqueness enforces per-form-type duplicate-key policies.
package uniqueness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/codec"
)

type recordFinder interface {
	// FindMatching returns records of formType where any predicate matches,
	// skipping excludeID when set.
	FindMatching(ctx context.Context, formType domain.FormType, preds []domain.FieldPredicate, excludeID *uuid.UUID) ([]*domain.Record, error)
}

// Resolver checks candidate records against the uniqueness policy.
type Resolver struct {
	policy  Policy
	records recordFinder
	log     *slog.Logger
}

func NewResolver(log *slog.Logger, policy Policy, records recordFinder) *Resolver {
	return &Resolver{
		policy:  policy,
		records: records,
		log:     log.With("service", "uniqueness"),
	}
}

func (r *Resolver) Policy() Policy { return r.policy }

// CheckDuplicate returns a *domain.DuplicateEntityError when another record
// of formType shares any non-blank unique key value with candidate. On
// update, pass the record's own id as excludeID.
func (r *Resolver) CheckDuplicate(ctx context.Context, formType domain.FormType, candidate *domain.FieldMap, excludeID *uuid.UUID) error {
	preds := Predicates(r.policy.Keys(formType), candidate)
	if len(preds) == 0 {
		return nil
	}

	found, err := r.records.FindMatching(ctx, formType, preds, excludeID)
	if err != nil {
		return fmt.Errorf("check duplicate %s: %w", formType, err)
	}
	if len(found) == 0 {
		return nil
	}

	existing := found[0]
	conflict := preds[0]
	for _, p := range preds {
		if codec.GetField(existing.FieldsData, p.Name).Canonical() == p.Value {
			conflict = p
			break
		}
	}

	r.log.InfoContext(ctx, "duplicate rejected",
		slog.String("form_type", formType.String()),
		slog.String("field", conflict.Name),
		slog.String("existing_id", existing.ID.String()),
	)
	return &domain.DuplicateEntityError{
		FormType:   formType,
		Field:      conflict.Name,
		Value:      conflict.Value,
		ExistingID: existing.ID.String(),
	}
}

// Predicates builds one predicate per key holding a non-blank value in
// candidate, in key order.
func Predicates(keys []string, candidate *domain.FieldMap) []domain.FieldPredicate {
	preds := make([]domain.FieldPredicate, 0, len(keys))
	for _, k := range keys {
		v := candidate.Get(k)
		if v.IsBlank() {
			continue
		}
		switch v.Kind() {
		case domain.KindString, domain.KindNumber, domain.KindBool, domain.KindFileRef:
			preds = append(preds, domain.FieldPredicate{Name: k, Value: v.Canonical()})
		}
	}
	return preds
}
