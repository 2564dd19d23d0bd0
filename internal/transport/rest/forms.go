package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/fieldconfig"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/schema"
	"github.com/sujay090/Dynamic-form-sub001/internal/transport/middleware"
)

type formCatalog interface {
	List(ctx context.Context) ([]domain.FormDefinition, error)
	Get(ctx context.Context, formType domain.FormType) (domain.FormDefinition, error)
	State(formType domain.FormType) domain.LoadState
	Reload(formType domain.FormType)
	Validator(ctx context.Context, formType domain.FormType) (*schema.Validator, domain.FormDefinition, error)
	CreateCustomForm(ctx context.Context, name string) (domain.FormDefinition, error)
	RenameForm(ctx context.Context, formType domain.FormType, name string) (domain.FormDefinition, error)
	AddField(ctx context.Context, formType domain.FormType, in fieldconfig.Input) (domain.FieldConfig, error)
	RemoveField(ctx context.Context, formType domain.FormType, fieldID string) error
	UpdateField(ctx context.Context, formType domain.FormType, fieldID string, p fieldconfig.Patch) (domain.FieldConfig, error)
	SetFields(ctx context.Context, formType domain.FormType, fields []domain.FieldConfig) (domain.FormDefinition, error)
}

// FormHandler serves form definition endpoints.
type FormHandler struct {
	catalog formCatalog
	log     *slog.Logger
}

// NewFormHandler creates a FormHandler.
func NewFormHandler(catalog formCatalog, logger *slog.Logger) *FormHandler {
	return &FormHandler{catalog: catalog, log: logger.With("handler", "forms")}
}

type formResponse struct {
	domain.FormDefinition
	State domain.LoadState `json:"state"`
}

type schemaResponse struct {
	FormType    domain.FormType `json:"formType"`
	Version     int             `json:"version"`
	Fingerprint string          `json:"fingerprint"`
	Rules       []schema.Rule   `json:"rules"`
}

type nameRequest struct {
	Name string `json:"name"`
}

// options accepts either a comma-separated string or a JSON array.
type options string

func (o *options) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*o = options(strings.Join(list, ","))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = options(s)
	return nil
}

type fieldRequest struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Description string           `json:"description"`
	InputType   domain.InputType `json:"inputType"`
	Category    domain.Category  `json:"category"`
	Options     options          `json:"options"`
	Position    *int             `json:"position"`
	Required    *bool            `json:"required"`
	Enabled     *bool            `json:"enabled"`
	Searchable  bool             `json:"searchable"`
}

type fieldPatchRequest struct {
	Label       *string          `json:"label"`
	Description *string          `json:"description"`
	Enabled     *bool            `json:"enabled"`
	Required    *bool            `json:"required"`
	Searchable  *bool            `json:"searchable"`
	Position    *int             `json:"position"`
	Category    *domain.Category `json:"category"`
	Options     *options         `json:"options"`
}

type fieldsRequest struct {
	Fields []domain.FieldConfig `json:"fields"`
}

// List handles GET /api/forms.
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	defs, err := h.catalog.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]formResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, formResponse{FormDefinition: d, State: h.catalog.State(d.FormType)})
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/forms/{type}.
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	formType := formTypeParam(r)
	def, err := h.catalog.Get(r.Context(), formType)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{FormDefinition: def, State: h.catalog.State(formType)})
}

// Schema handles GET /api/forms/{type}/schema.
func (h *FormHandler) Schema(w http.ResponseWriter, r *http.Request) {
	v, def, err := h.catalog.Validator(r.Context(), formTypeParam(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schemaResponse{
		FormType:    def.FormType,
		Version:     def.Version,
		Fingerprint: v.Fingerprint(),
		Rules:       v.Rules(),
	})
}

// Create handles POST /api/forms.
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	def, err := h.catalog.CreateCustomForm(r.Context(), req.Name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, formResponse{FormDefinition: def, State: domain.LoadStateReady})
}

// Rename handles PATCH /api/forms/{type}.
func (h *FormHandler) Rename(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	def, err := h.catalog.RenameForm(r.Context(), formTypeParam(r), req.Name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{FormDefinition: def, State: h.catalog.State(def.FormType)})
}

// Reload handles POST /api/forms/{type}/reload. It drops the cached
// definition, e.g. after a fallback to defaults, and fetches it again.
func (h *FormHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	formType := formTypeParam(r)
	h.catalog.Reload(formType)
	def, err := h.catalog.Get(r.Context(), formType)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{FormDefinition: def, State: h.catalog.State(formType)})
}

// AddField handles POST /api/forms/{type}/fields.
func (h *FormHandler) AddField(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req fieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	fc, err := h.catalog.AddField(r.Context(), formTypeParam(r), fieldconfig.Input{
		Name:        req.Name,
		Label:       req.Label,
		Description: req.Description,
		InputType:   req.InputType,
		Category:    req.Category,
		Options:     string(req.Options),
		Position:    req.Position,
		Required:    req.Required,
		Enabled:     req.Enabled,
		Searchable:  req.Searchable,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, fc)
}

// UpdateField handles PATCH /api/forms/{type}/fields/{id}.
func (h *FormHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req fieldPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	patch := fieldconfig.Patch{
		Label:       req.Label,
		Description: req.Description,
		Enabled:     req.Enabled,
		Required:    req.Required,
		Searchable:  req.Searchable,
		Position:    req.Position,
		Category:    req.Category,
	}
	if req.Options != nil {
		s := string(*req.Options)
		patch.Options = &s
	}
	fc, err := h.catalog.UpdateField(r.Context(), formTypeParam(r), r.PathValue("id"), patch)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

// RemoveField handles DELETE /api/forms/{type}/fields/{id}.
func (h *FormHandler) RemoveField(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if err := h.catalog.RemoveField(r.Context(), formTypeParam(r), r.PathValue("id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetFields handles PUT /api/forms/{type}/fields.
func (h *FormHandler) SetFields(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req fieldsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	def, err := h.catalog.SetFields(r.Context(), formTypeParam(r), req.Fields)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{FormDefinition: def, State: h.catalog.State(def.FormType)})
}

func (h *FormHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return false
	}
	return true
}

func formTypeParam(r *http.Request) domain.FormType {
	return domain.FormType(r.PathValue("type"))
}

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
