// Package formdef persists form definitions in the form_definitions table.
package formdef

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/sujay090/Dynamic-form-sub001/internal/adapter/postgres"
	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

const (
	table     = "form_definitions"
	returning = "RETURNING form_type, name, is_custom, fields, version, updated_at"
)

var columns = []string{"form_type", "name", "is_custom", "fields", "version", "updated_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides form definition persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new form definition repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	FormType  string    `db:"form_type"`
	Name      string    `db:"name"`
	IsCustom  bool      `db:"is_custom"`
	Fields    []byte    `db:"fields"`
	Version   int       `db:"version"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() (*domain.FormDefinition, error) {
	def := &domain.FormDefinition{
		FormType:  domain.FormType(r.FormType),
		Name:      r.Name,
		Custom:    r.IsCustom,
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Fields, &def.Fields); err != nil {
		return nil, fmt.Errorf("decode fields of form %s: %w", r.FormType, err)
	}
	if def.Fields == nil {
		def.Fields = []domain.FieldConfig{}
	}
	return def, nil
}

func encodeFields(fields []domain.FieldConfig) (string, error) {
	if fields == nil {
		fields = []domain.FieldConfig{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}
	return string(b), nil
}

// Get returns the saved definition of formType or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, formType domain.FormType) (*domain.FormDefinition, error) {
	query, args, err := psql.Select(columns...).From(table).
		Where(sq.Eq{"form_type": formType.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get form: %w", err)
	}
	return r.getOne(ctx, formType, query, args...)
}

// List returns every saved definition in creation order.
func (r *Repo) List(ctx context.Context) ([]*domain.FormDefinition, error) {
	query, args, err := psql.Select(columns...).From(table).OrderBy("created_at", "form_type").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list forms: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "list forms", "")
	}
	out := make([]*domain.FormDefinition, 0, len(rows))
	for _, rw := range rows {
		def, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

// Create inserts a new definition. Returns domain.ErrAlreadyExists when the
// form type is taken.
func (r *Repo) Create(ctx context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error) {
	query, args, err := r.insert(def).Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert form: %w", err)
	}
	return r.getOne(ctx, def.FormType, query, args...)
}

// Save upserts def by form type and returns the stored row.
func (r *Repo) Save(ctx context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error) {
	query, args, err := r.insert(def).
		Suffix(`ON CONFLICT (form_type) DO UPDATE SET
    name = EXCLUDED.name,
    is_custom = EXCLUDED.is_custom,
    fields = EXCLUDED.fields,
    version = EXCLUDED.version,
    updated_at = now() ` + returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build save form: %w", err)
	}
	return r.getOne(ctx, def.FormType, query, args...)
}

func (r *Repo) insert(def *domain.FormDefinition) sq.InsertBuilder {
	// FieldConfig holds only plain types, so marshaling cannot fail.
	fields, _ := encodeFields(def.Fields)
	version := def.Version
	if version < 1 {
		version = 1
	}
	return psql.Insert(table).
		Columns("form_type", "name", "is_custom", "fields", "version").
		Values(def.FormType.String(), def.Name, def.Custom, sq.Expr("?::jsonb", fields), version)
}

func (r *Repo) getOne(ctx context.Context, formType domain.FormType, query string, args ...any) (*domain.FormDefinition, error) {
	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "form definition", formType.String())
	}
	return dst.toDomain()
}
