//go:build !integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sale-pack-service/internal/domain/dto"
	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/middleware"
	"github.com/guttosm/sale-pack-service/internal/mocks"
	"github.com/guttosm/sale-pack-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerMocks struct {
	orders  *mocks.MockOrderService
	lines   *mocks.MockOrderLineService
	catalog *mocks.MockCatalogService
}

// auditRecorder collects audit entries stored by handlers.
type auditRecorder struct {
	mu      sync.Mutex
	entries []*model.LogEntry
	stored  chan struct{}
}

func newAuditRecorder() *auditRecorder {
	return &auditRecorder{stored: make(chan struct{}, 16)}
}

func (r *auditRecorder) CreateLog(_ context.Context, entry *model.LogEntry) error {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	r.stored <- struct{}{}
	return nil
}

func (r *auditRecorder) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	for _, e := range entries {
		_ = r.CreateLog(ctx, e)
	}
	return nil
}

func (r *auditRecorder) QueryLogs(context.Context, model.LogQueryOptions) ([]model.LogEntry, error) {
	return nil, nil
}

func (r *auditRecorder) CountLogs(context.Context, model.LogQueryOptions) (int64, error) {
	return 0, nil
}

// waitFor returns the audit entry with the given action, waiting for the async store.
func (r *auditRecorder) waitFor(t *testing.T, actionType string) *model.LogEntry {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		r.mu.Lock()
		for _, e := range r.entries {
			if e.ActionType == actionType {
				r.mu.Unlock()
				return e
			}
		}
		r.mu.Unlock()
		select {
		case <-r.stored:
		case <-deadline:
			t.Fatalf("no audit entry with action %q", actionType)
			return nil
		}
	}
}

var _ service.LoggingService = (*auditRecorder)(nil)

func newTestRouter(t *testing.T, ls service.LoggingService) (*gin.Engine, handlerMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := handlerMocks{
		orders:  mocks.NewMockOrderService(t),
		lines:   mocks.NewMockOrderLineService(t),
		catalog: mocks.NewMockCatalogService(t),
	}
	handler := NewHandler(m.orders, m.lines, m.catalog, WithProductListLimit(50))

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(), middleware.WithLoggingService(ls))
	NewSaleRoutes(handler).RegisterRoutes(router.Group("/api"))
	return router, m
}

func newJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	return serve(router, newJSONRequest(method, path, body))
}

// decodeData unmarshals the data member of a success response into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_CreateOrder(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(handlerMocks)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "creates order",
			body: dto.CreateOrderRequest{Name: "SO001", PartnerName: "Deco Addict", PricelistID: "public"},
			setupMocks: func(m handlerMocks) {
				m.orders.On("CreateOrder", mock.Anything, "SO001", "Deco Addict", "public").
					Return(&model.Order{ID: "o1", Name: "SO001", PricelistID: "public"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           map[string]string{"partner_name": "Deco Addict"},
			setupMocks:     func(handlerMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name: "unknown pricelist",
			body: dto.CreateOrderRequest{Name: "SO002", PricelistID: "nope"},
			setupMocks: func(m handlerMocks) {
				m.orders.On("CreateOrder", mock.Anything, "SO002", "", "nope").
					Return(nil, service.ErrPricelistNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, nil)
			tt.setupMocks(m)

			w := doJSON(router, http.MethodPost, "/api/orders", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
				return
			}
			var order model.Order
			decodeData(t, w, &order)
			assert.Equal(t, "o1", order.ID)
		})
	}
}

func TestHandler_CreateOrder_Audited(t *testing.T) {
	recorder := newAuditRecorder()
	router, m := newTestRouter(t, recorder)
	m.orders.On("CreateOrder", mock.Anything, "SO001", "", "").
		Return(&model.Order{ID: "o1", Name: "SO001"}, nil)

	w := doJSON(router, http.MethodPost, "/api/orders", dto.CreateOrderRequest{Name: "SO001"})

	require.Equal(t, http.StatusCreated, w.Code)
	entry := recorder.waitFor(t, model.ActionCreateOrder)
	assert.Equal(t, "o1", entry.OrderID)
	assert.Equal(t, "info", entry.Level)
	assert.NotEmpty(t, entry.RequestID)
}

func TestHandler_GetOrder(t *testing.T) {
	router, m := newTestRouter(t, nil)
	m.orders.On("GetOrder", mock.Anything, "o1").Return(&model.Order{ID: "o1", Name: "SO001"}, nil)
	m.orders.On("GetOrder", mock.Anything, "missing").Return(nil, service.ErrOrderNotFound)

	w := doJSON(router, http.MethodGet, "/api/orders/o1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Sale order not found", decodeError(t, w).Message)
}

func TestHandler_UpdatePrices(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		pricelistID    string
		err            error
		expectedStatus int
	}{
		{
			name:           "without body keeps the pricelist",
			body:           nil,
			pricelistID:    "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "switches pricelist",
			body:           dto.UpdatePricesRequest{PricelistID: "reseller"},
			pricelistID:    "reseller",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown pricelist",
			body:           dto.UpdatePricesRequest{PricelistID: "nope"},
			pricelistID:    "nope",
			err:            service.ErrPricelistNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed body",
			body:           `{"pricelist_id":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, nil)
			if tt.expectedStatus != http.StatusBadRequest {
				if tt.err != nil {
					m.lines.On("UpdatePrices", mock.Anything, "o1", tt.pricelistID).Return(nil, nil, tt.err)
				} else {
					m.lines.On("UpdatePrices", mock.Anything, "o1", tt.pricelistID).
						Return(&model.Order{ID: "o1", PricelistID: tt.pricelistID}, []*model.OrderLine{{ID: "l1"}}, nil)
				}
			}

			w := doJSON(router, http.MethodPost, "/api/orders/o1/update-prices", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp dto.UpdatePricesResponse
				decodeData(t, w, &resp)
				assert.Equal(t, tt.pricelistID, resp.Order.PricelistID)
				assert.Len(t, resp.Lines, 1)
			}
		})
	}
}
