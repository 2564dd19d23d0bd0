package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

func TestCollector_Counters(t *testing.T) {
	t.Parallel()

	c := New()
	c.RecordWritten(domain.FormTypeStudent, "submit", "ok")
	c.RecordWritten(domain.FormTypeStudent, "submit", "ok")
	c.RecordWritten(domain.FormTypeStudent, "submit", "duplicate")
	c.DefaultsApplied(domain.FormTypeCourse)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.recordWrites.WithLabelValues("student", "submit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.recordWrites.WithLabelValues("student", "submit", "duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fallbacks.WithLabelValues("course")))
}

func TestCollector_Handler(t *testing.T) {
	t.Parallel()

	c := New()
	c.ObserveRequest(http.MethodGet, "/api/forms", http.StatusOK, 12*time.Millisecond)
	c.DefaultsApplied(domain.FormTypeBranch)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `forms_definition_fallbacks_total{form_type="branch"} 1`)
	assert.Contains(t, string(body), `forms_http_request_duration_seconds_count{method="GET",route="/api/forms",status="200"} 1`)
}
