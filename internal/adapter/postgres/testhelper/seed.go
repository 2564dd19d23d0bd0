package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

// UniqueFormType returns a form type no other test uses, so tests can share
// the database without cleaning up.
func UniqueFormType(prefix string) domain.FormType {
	return domain.FormType(prefix + "-" + uuid.New().String()[:8])
}

// SeedRecord inserts a record of formType with the given encoded entries.
func SeedRecord(t *testing.T, pool *pgxpool.Pool, formType domain.FormType, entries ...domain.FieldEntry) uuid.UUID {
	t.Helper()
	if entries == nil {
		entries = []domain.FieldEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("SeedRecord: marshal: %v", err)
	}

	id := uuid.New()
	_, err = pool.Exec(context.Background(),
		`INSERT INTO records (id, form_type, fields_data) VALUES ($1, $2, $3::jsonb)`,
		id, formType.String(), string(data),
	)
	if err != nil {
		t.Fatalf("SeedRecord: %v", err)
	}
	return id
}
