package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/codec"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/export"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/record"
	"github.com/sujay090/Dynamic-form-sub001/internal/transport/middleware"
)

type recordService interface {
	Submit(ctx context.Context, in record.SubmitInput) (*domain.Record, error)
	Update(ctx context.Context, in record.UpdateInput) (*domain.Record, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	Decode(ctx context.Context, rec *domain.Record) (record.Decoded, error)
	ListDecoded(ctx context.Context, formType domain.FormType) ([]record.Decoded, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type exportService interface {
	Export(ctx context.Context, formType domain.FormType) (*bytes.Buffer, string, error)
	Import(ctx context.Context, formType domain.FormType, r io.Reader) (*export.ImportResult, error)
}

// RecordHandler serves record endpoints.
type RecordHandler struct {
	records   recordService
	exporter  exportService
	maxUpload int64
	log       *slog.Logger
}

// NewRecordHandler creates a RecordHandler. maxUploadBytes bounds multipart
// bodies.
func NewRecordHandler(records recordService, exporter exportService, maxUploadBytes int64, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		records:   records,
		exporter:  exporter,
		maxUpload: maxUploadBytes,
		log:       logger.With("handler", "records"),
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Submit handles POST /api/forms/{type}/records with a JSON object, a
// {"fieldsData": [...]} body, or multipart/form-data carrying files.
func (h *RecordHandler) Submit(w http.ResponseWriter, r *http.Request) {
	raw, files, ok := h.readSubmission(w, r)
	if !ok {
		return
	}
	defer closeUploads(files)

	rec, err := h.records.Submit(r.Context(), record.SubmitInput{
		FormType: formTypeParam(r),
		Fields:   raw,
		Files:    files,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writeDecoded(w, r, http.StatusCreated, rec)
}

// List handles GET /api/forms/{type}/records.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.ListDecoded(r.Context(), formTypeParam(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Get handles GET /api/records/{id}.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	rec, err := h.records.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writeDecoded(w, r, http.StatusOK, rec)
}

// Update handles PUT /api/records/{id}. The body replaces every field.
// Admin only.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	raw, files, ok := h.readSubmission(w, r)
	if !ok {
		return
	}
	defer closeUploads(files)

	rec, err := h.records.Update(r.Context(), record.UpdateInput{
		ID:         id,
		FieldsData: toEntries(raw),
		Files:      files,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writeDecoded(w, r, http.StatusOK, rec)
}

// Delete handles DELETE /api/records/{id}. Admin only.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.records.DeleteByID(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/forms/{type}/records/export.
func (h *RecordHandler) Export(w http.ResponseWriter, r *http.Request) {
	buf, filename, err := h.exporter.Export(r.Context(), formTypeParam(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Import handles POST /api/forms/{type}/records/import with the workbook as
// the "file" part of a multipart body.
func (h *RecordHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	res, err := h.exporter.Import(r.Context(), formTypeParam(r), file)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *RecordHandler) writeDecoded(w http.ResponseWriter, r *http.Request, status int, rec *domain.Record) {
	out, err := h.records.Decode(r.Context(), rec)
	if err != nil {
		// The write already happened; fall back to the stored shape.
		h.log.WarnContext(r.Context(), "decode record for response",
			slog.String("record_id", rec.ID.String()),
			slog.String("error", err.Error()),
		)
		writeJSON(w, status, rec)
		return
	}
	writeJSON(w, status, out)
}

// readSubmission parses the body into raw values and uploads.
func (h *RecordHandler) readSubmission(w http.ResponseWriter, r *http.Request) (map[string]any, map[string]*domain.Upload, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
		if err := r.ParseMultipartForm(h.maxUpload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return nil, nil, false
		}
		raw := make(map[string]any, len(r.MultipartForm.Value))
		for k, vs := range r.MultipartForm.Value {
			if len(vs) > 0 {
				raw[k] = vs[0]
			}
		}
		files := make(map[string]*domain.Upload, len(r.MultipartForm.File))
		for k, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			fh := headers[0]
			f, err := fh.Open()
			if err != nil {
				closeUploads(files)
				writeError(w, http.StatusBadRequest, "unreadable file "+k)
				return nil, nil, false
			}
			files[k] = &domain.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Reader:      f,
			}
		}
		return raw, files, true
	}

	var raw map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil || raw == nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, nil, false
	}
	return flattenWrapped(raw), nil, true
}

// flattenWrapped lifts the entries of a {"fieldsData": [...]} body to top
// level keys. Top level keys win over wrapped ones.
func flattenWrapped(raw map[string]any) map[string]any {
	wrapped, ok := raw[codec.WrapperKey]
	if !ok {
		return raw
	}
	entries, ok := domain.ValueFromAny(wrapped).AsList()
	if !ok {
		return raw
	}
	delete(raw, codec.WrapperKey)
	for _, e := range codec.Unwrap(entries) {
		if _, exists := raw[e.Name]; !exists {
			raw[e.Name] = e.Value
		}
	}
	return raw
}

// toEntries lists raw by sorted key. The record service puts the entries
// back in definition order.
func toEntries(raw map[string]any) []domain.FieldEntry {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]domain.FieldEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.FieldEntry{Name: k, Value: domain.ValueFromAny(raw[k])})
	}
	return out
}

func closeUploads(files map[string]*domain.Upload) {
	for _, u := range files {
		if c, ok := u.Reader.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return uuid.Nil, false
	}
	return id, true
}
