package testhelper

import (
	"context"
	"testing"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	ft := UniqueFormType("smoke")
	id := SeedRecord(t, pool, ft, domain.FieldEntry{Name: "courseName", Value: domain.String("Go")})

	var got string
	err := pool.QueryRow(context.Background(),
		`SELECT form_type FROM records WHERE id = $1`, id,
	).Scan(&got)
	if err != nil {
		t.Fatalf("expected record in DB, got error: %v", err)
	}
	if got != ft.String() {
		t.Fatalf("expected form_type %q, got %q", ft, got)
	}
}
