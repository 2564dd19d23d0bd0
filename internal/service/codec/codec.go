// Package codec converts between typed field maps and the persisted
// {name, value} list of a record.
package codec

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

const (
	// FormTypeKey is dropped on encode; the form type is stored beside fieldsData.
	FormTypeKey = "formType"
	// WrapperKey names the entry that holds the whole list in double-wrapped records.
	WrapperKey = "fieldsData"

	maxParallelUploads = 4
)

type fileStore interface {
	Put(ctx context.Context, formType domain.FormType, field string, upload *domain.Upload) (string, error)
}

// Codec encodes typed records for storage and decodes stored ones.
type Codec struct {
	files    fileStore
	booleans map[string]bool
	log      *slog.Logger
}

// New creates a Codec. booleanFields are decoded as booleans for every form
// type, in addition to checkbox fields. files may be nil when uploads are
// not accepted.
func New(log *slog.Logger, files fileStore, booleanFields []string) *Codec {
	set := make(map[string]bool, len(booleanFields))
	for _, name := range booleanFields {
		set[name] = true
	}
	return &Codec{
		files:    files,
		booleans: set,
		log:      log.With("service", "codec"),
	}
}

// Encode renders m as a field list in insertion order. The formType key is
// dropped, uploads are handed to the file store and replaced by the returned
// reference, and numbers and booleans become their canonical strings.
func (c *Codec) Encode(ctx context.Context, formType domain.FormType, m *domain.FieldMap) ([]domain.FieldEntry, error) {
	entries := make([]domain.FieldEntry, 0, m.Len())

	type pending struct {
		idx    int
		upload *domain.Upload
	}
	var uploads []pending

	for _, e := range m.Entries() {
		if e.Name == FormTypeKey {
			continue
		}
		v := e.Value
		switch v.Kind() {
		case domain.KindAbsent:
			continue
		case domain.KindNumber, domain.KindBool:
			v = domain.String(v.Canonical())
		case domain.KindUpload:
			u, _ := v.AsUpload()
			if u == nil {
				v = domain.Null()
				break
			}
			uploads = append(uploads, pending{idx: len(entries), upload: u})
		case domain.KindList:
			return nil, fmt.Errorf("encode %s: field %q holds a nested list", formType, e.Name)
		}
		entries = append(entries, domain.FieldEntry{Name: e.Name, Value: v})
	}

	if len(uploads) == 0 {
		return entries, nil
	}
	if c.files == nil {
		return nil, fmt.Errorf("encode %s: file uploads are not configured: %w", formType, domain.ErrPersistenceUnavailable)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for _, p := range uploads {
		name := entries[p.idx].Name
		g.Go(func() error {
			ref, err := c.files.Put(gctx, formType, name, p.upload)
			if err != nil {
				return fmt.Errorf("upload %s: %w", name, err)
			}
			entries[p.idx].Value = domain.FileRef(ref)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", formType, err)
	}

	c.log.DebugContext(ctx, "uploads stored",
		slog.String("form_type", formType.String()),
		slog.Int("count", len(uploads)),
	)
	return entries, nil
}

// Decode unwraps entries and coerces values using hints and the configured
// boolean field names. Values without a hint are left as stored.
func (c *Codec) Decode(entries []domain.FieldEntry, hints Hints) *domain.FieldMap {
	m := &domain.FieldMap{}
	for _, e := range Unwrap(entries) {
		m.Set(e.Name, c.coerce(e.Name, e.Value, hints))
	}
	return m
}

// GetField looks name up with the same unwrapping as Decode and coerces the
// value. It returns domain.NotPresent when the name is absent.
func (c *Codec) GetField(entries []domain.FieldEntry, name string, hints Hints) domain.Value {
	v := GetField(entries, name)
	if !v.IsPresent() {
		return v
	}
	return c.coerce(name, v, hints)
}

// BooleanFields returns the names decoded as booleans for every form type.
func (c *Codec) BooleanFields() map[string]bool {
	out := make(map[string]bool, len(c.booleans))
	for k := range c.booleans {
		out[k] = true
	}
	return out
}

func (c *Codec) coerce(name string, v domain.Value, hints Hints) domain.Value {
	s, isString := v.AsString()
	if !isString {
		return v
	}
	switch {
	case hints.Booleans[name] || c.booleans[name]:
		if b, ok := parseBool(s); ok {
			return domain.Bool(b)
		}
	case hints.Numbers[name]:
		if f, ok := domain.ParseNumber(s); ok {
			return domain.Number(f)
		}
	case hints.Files[name]:
		if s != "" {
			return domain.FileRef(s)
		}
	}
	return v
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "TRUE", "True", "on", "1":
		return true, true
	case "false", "FALSE", "False", "off", "0":
		return false, true
	}
	return false, false
}
