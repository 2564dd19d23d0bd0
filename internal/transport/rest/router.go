package rest

import "net/http"

// Routes groups the handlers mounted by NewRouter. Metrics may be nil.
type Routes struct {
	Health  *HealthHandler
	Forms   *FormHandler
	Records *RecordHandler

	Metrics     http.Handler
	MetricsPath string
}

// NewRouter registers every endpoint on a fresh ServeMux.
func NewRouter(rt Routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", rt.Health.Live)
	mux.HandleFunc("GET /health/ready", rt.Health.Ready)
	if rt.Metrics != nil {
		path := rt.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, rt.Metrics)
	}

	mux.HandleFunc("GET /api/forms", rt.Forms.List)
	mux.HandleFunc("POST /api/forms", rt.Forms.Create)
	mux.HandleFunc("GET /api/forms/{type}", rt.Forms.Get)
	mux.HandleFunc("PATCH /api/forms/{type}", rt.Forms.Rename)
	mux.HandleFunc("GET /api/forms/{type}/schema", rt.Forms.Schema)
	mux.HandleFunc("POST /api/forms/{type}/reload", rt.Forms.Reload)
	mux.HandleFunc("PUT /api/forms/{type}/fields", rt.Forms.SetFields)
	mux.HandleFunc("POST /api/forms/{type}/fields", rt.Forms.AddField)
	mux.HandleFunc("PATCH /api/forms/{type}/fields/{id}", rt.Forms.UpdateField)
	mux.HandleFunc("DELETE /api/forms/{type}/fields/{id}", rt.Forms.RemoveField)

	mux.HandleFunc("POST /api/forms/{type}/records", rt.Records.Submit)
	mux.HandleFunc("GET /api/forms/{type}/records", rt.Records.List)
	mux.HandleFunc("GET /api/forms/{type}/records/export", rt.Records.Export)
	mux.HandleFunc("POST /api/forms/{type}/records/import", rt.Records.Import)
	mux.HandleFunc("GET /api/records/{id}", rt.Records.Get)
	mux.HandleFunc("PUT /api/records/{id}", rt.Records.Update)
	mux.HandleFunc("DELETE /api/records/{id}", rt.Records.Delete)

	return mux
}
