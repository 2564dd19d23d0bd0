// Package record implements the records repository using PostgreSQL.
// Field values live in a single fields_data JSONB column holding the
// encoded [{name, value}] list.
package record

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/sujay090/Dynamic-form-sub001/internal/adapter/postgres"
	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

const (
	table      = "records"
	wrapperKey = "fieldsData"
)

var columns = []string{"id", "form_type", "fields_data", "created_at", "updated_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new record repository. db is used when the context carries
// no transaction.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID `db:"id"`
	FormType   string    `db:"form_type"`
	FieldsData []byte    `db:"fields_data"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r row) toDomain() (*domain.Record, error) {
	rec := &domain.Record{
		ID:        r.ID,
		FormType:  domain.FormType(r.FormType),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.FieldsData) > 0 {
		if err := json.Unmarshal(r.FieldsData, &rec.FieldsData); err != nil {
			return nil, fmt.Errorf("decode fields_data of record %s: %w", r.ID, err)
		}
	}
	if rec.FieldsData == nil {
		rec.FieldsData = []domain.FieldEntry{}
	}
	return rec, nil
}

func encodeFields(entries []domain.FieldEntry) (string, error) {
	if entries == nil {
		entries = []domain.FieldEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode fields_data: %w", err)
	}
	return string(b), nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts rec and returns the stored row. A zero ID is replaced by a
// fresh one.
func (r *Repo) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	data, err := encodeFields(rec.FieldsData)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Insert(table).
		Columns("id", "form_type", "fields_data").
		Values(id, rec.FormType.String(), sq.Expr("?::jsonb", data)).
		Suffix("RETURNING id, form_type, fields_data, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert record: %w", err)
	}

	return r.getOne(ctx, "record", id.String(), query, args...)
}

// Replace overwrites the whole fields_data of record id and bumps updated_at.
func (r *Repo) Replace(ctx context.Context, id uuid.UUID, fieldsData []domain.FieldEntry) (*domain.Record, error) {
	data, err := encodeFields(fieldsData)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Update(table).
		Set("fields_data", sq.Expr("?::jsonb", data)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, form_type, fields_data, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update record: %w", err)
	}

	return r.getOne(ctx, "record", id.String(), query, args...)
}

// Delete removes record id. Returns domain.ErrNotFound when nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete record: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "record", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns record id or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	query, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get record: %w", err)
	}
	return r.getOne(ctx, "record", id.String(), query, args...)
}

// ListByType returns all records of formType, newest first.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByType(ctx context.Context, formType domain.FormType) ([]*domain.Record, error) {
	query, args, err := psql.Select(columns...).From(table).
		Where(sq.Eq{"form_type": formType.String()}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list records: %w", err)
	}
	return r.getMany(ctx, "list records "+formType.String(), query, args...)
}

// FindMatching returns records of formType where any predicate matches,
// either in the flat encoding or in the legacy wrapped one. excludeID, when
// set, is left out of the result.
func (r *Repo) FindMatching(
	ctx context.Context,
	formType domain.FormType,
	preds []domain.FieldPredicate,
	excludeID *uuid.UUID,
) ([]*domain.Record, error) {
	if len(preds) == 0 {
		return []*domain.Record{}, nil
	}

	matches := sq.Or{}
	for _, p := range preds {
		flat, wrapped, err := containment(p)
		if err != nil {
			return nil, err
		}
		matches = append(matches,
			sq.Expr("fields_data @> ?::jsonb", flat),
			sq.Expr("fields_data @> ?::jsonb", wrapped),
		)
	}

	where := sq.And{sq.Eq{"form_type": formType.String()}, matches}
	if excludeID != nil {
		where = append(where, sq.NotEq{"id": *excludeID})
	}

	query, args, err := psql.Select(columns...).From(table).
		Where(where).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find matching records: %w", err)
	}
	return r.getMany(ctx, "find matching "+formType.String(), query, args...)
}

// containment renders the JSONB documents a predicate must be contained in:
// [{"name":k,"value":v}] and [{"name":"fieldsData","value":[{"name":k,"value":v}]}].
func containment(p domain.FieldPredicate) (flat, wrapped string, err error) {
	entry := []domain.FieldEntry{{Name: p.Name, Value: domain.String(p.Value)}}
	f, err := json.Marshal(entry)
	if err != nil {
		return "", "", fmt.Errorf("encode predicate %s: %w", p.Name, err)
	}
	w, err := json.Marshal([]domain.FieldEntry{{Name: wrapperKey, Value: domain.List(entry)}})
	if err != nil {
		return "", "", fmt.Errorf("encode predicate %s: %w", p.Name, err)
	}
	return string(f), string(w), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, entity, id, query string, args ...any) (*domain.Record, error) {
	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return dst.toDomain()
}

func (r *Repo) getMany(ctx context.Context, op, query string, args ...any) ([]*domain.Record, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, op, "")
	}

	out := make([]*domain.Record, 0, len(rows))
	for _, rw := range rows {
		rec, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
