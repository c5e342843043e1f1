package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	var cumulative uint64
	var got []uint64
	for i := range snap.buckets {
		cumulative += snap.counts[i]
		got = append(got, cumulative)
	}
	if got[0] != 1 || got[1] != 2 || snap.count != 3 {
		t.Fatalf("unexpected cumulative buckets %v count %d", got, snap.count)
	}
	if snap.sum != 555 {
		t.Fatalf("unexpected sum %v", snap.sum)
	}
}

func TestHandlerRendersCatalogMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncAPIRequest()
	IncAPIFailure()

	router := gin.New()
	router.GET("/metrics", Handler())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		"# TYPE catalog_api_requests_total counter",
		"# TYPE catalog_api_failures_total counter",
		"catalog_api_duration_ms_bucket{le=\"+Inf\"}",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q:\n%s", want, body)
		}
	}
}
