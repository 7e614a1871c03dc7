package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/error", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "error")
	})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{
			name:           "records metrics for successful request",
			path:           "/test",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "records metrics for error request",
			path:           "/error",
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRecordPackExpansion(t *testing.T) {
	createdBefore := testutil.ToFloat64(PackComponentLinesTotal.WithLabelValues("created"))
	discardedBefore := testutil.ToFloat64(PackComponentLinesTotal.WithLabelValues("discarded"))
	successBefore := testutil.ToFloat64(PackExpansionsTotal.WithLabelValues("price_refresh", "success"))

	RecordPackExpansion(10*time.Millisecond, "price_refresh", "success", 3, 0, 2)

	assert.Equal(t, createdBefore+3, testutil.ToFloat64(PackComponentLinesTotal.WithLabelValues("created")))
	assert.Equal(t, discardedBefore+2, testutil.ToFloat64(PackComponentLinesTotal.WithLabelValues("discarded")))
	assert.Equal(t, successBefore+1, testutil.ToFloat64(PackExpansionsTotal.WithLabelValues("price_refresh", "success")))
}

func TestRecordPackLineModifyRejected(t *testing.T) {
	before := testutil.ToFloat64(PackLineModifyRejectedTotal)

	RecordPackLineModifyRejected()

	assert.Equal(t, before+1, testutil.ToFloat64(PackLineModifyRejectedTotal))
}

func TestRecordRejectionCounters(t *testing.T) {
	rateBefore := testutil.ToFloat64(RateLimitRejectedTotal)
	droppedBefore := testutil.ToFloat64(AuditEntriesDroppedTotal)

	RecordRateLimitRejection()
	RecordAuditEntryDropped()
	RecordAuditEntryDropped()

	assert.Equal(t, rateBefore+1, testutil.ToFloat64(RateLimitRejectedTotal))
	assert.Equal(t, droppedBefore+2, testutil.ToFloat64(AuditEntriesDroppedTotal))
}

func TestRecordCacheOperation(t *testing.T) {
	before := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("products", "get", "hit"))

	RecordCacheOperation("products", "get", "hit")
	RecordCacheOperation("products", "get", "miss")

	assert.Equal(t, before+1, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("products", "get", "hit")))
}

func TestGauges(t *testing.T) {
	UpdateCacheSize("products", 42)
	RecordCircuitBreakerState("mongodb-orders", 1)

	assert.Equal(t, 42.0, testutil.ToFloat64(CacheSize.WithLabelValues("products")))
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongodb-orders")))
}
