package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastropath/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/add_restaurant", "POST", 200, 12*time.Millisecond)
	observability.ObserveExternal("google", "details", 200, 30*time.Millisecond)
	observability.ObservePipeline("created")
	observability.ObservePipeline("")
	observability.ObserveEnrichmentFailure("cover")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"gastropath_http_requests_total",
		"gastropath_external_requests_total",
		`gastropath_pipeline_runs_total{outcome="created"}`,
		`gastropath_pipeline_runs_total{outcome="internal"}`,
		`gastropath_enrichment_failures_total{lookup="cover"}`,
	} {
		assert.Contains(t, out, want)
	}
}
