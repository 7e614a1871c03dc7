//go:build !integration

package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/guttosm/sale-pack-service/internal/circuitbreaker"
	"github.com/guttosm/sale-pack-service/internal/domain/dto"
	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func packLines() []*model.OrderLine {
	return []*model.OrderLine{
		{ID: "l1", OrderID: "o1", ProductID: "workstation", Quantity: 2},
		{ID: "l2", OrderID: "o1", ProductID: "cpu", Quantity: 2, PackParentLineID: "l1", PackDepth: 1},
		{ID: "l3", OrderID: "o1", ProductID: "ram", Quantity: 4, PackParentLineID: "l1", PackDepth: 1},
	}
}

func TestHandler_ListLines(t *testing.T) {
	router, m := newTestRouter(t, nil)
	m.lines.On("ListLines", mock.Anything, "o1").Return(packLines(), nil)

	w := doJSON(router, "GET", "/api/orders/o1/lines", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LinesResponse
	decodeData(t, w, &resp)
	require.Len(t, resp.Lines, 3)
	assert.Equal(t, "l1", resp.Lines[1].PackParentLineID)
}

func TestHandler_CreateLines(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(handlerMocks)
		expectedStatus int
		expectedCode   string
		expectedLines  int
	}{
		{
			name: "creates pack line with components",
			body: map[string]interface{}{
				"lines": []map[string]interface{}{{"product_id": "workstation", "quantity": 2}},
			},
			setupMocks: func(m handlerMocks) {
				m.lines.On("Create", mock.Anything, mock.MatchedBy(func(values []model.LineValues) bool {
					return len(values) == 1 && values[0].OrderID == "o1" &&
						*values[0].ProductID == "workstation" && *values[0].Quantity == 2
				}), model.ModeStructural).Return(packLines(), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedLines:  3,
		},
		{
			name: "quantity defaults to one",
			body: map[string]interface{}{
				"lines": []map[string]interface{}{{"product_id": "cpu"}},
			},
			setupMocks: func(m handlerMocks) {
				m.lines.On("Create", mock.Anything, mock.MatchedBy(func(values []model.LineValues) bool {
					return len(values) == 1 && *values[0].Quantity == 1
				}), model.ModeStructural).Return([]*model.OrderLine{{ID: "l9", ProductID: "cpu", Quantity: 1}}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedLines:  1,
		},
		{
			name:           "empty batch",
			body:           map[string]interface{}{"lines": []interface{}{}},
			setupMocks:     func(handlerMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name: "negative quantity",
			body: map[string]interface{}{
				"lines": []map[string]interface{}{{"product_id": "cpu", "quantity": -1}},
			},
			setupMocks:     func(handlerMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name: "component line refused",
			body: map[string]interface{}{
				"lines": []map[string]interface{}{{"product_id": "cpu", "pack_parent_line_id": "l1"}},
			},
			setupMocks:     func(handlerMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name: "unknown product",
			body: map[string]interface{}{
				"lines": []map[string]interface{}{{"product_id": "nope"}},
			},
			setupMocks: func(m handlerMocks) {
				m.lines.On("Create", mock.Anything, mock.Anything, model.ModeStructural).
					Return(nil, fmt.Errorf("%w: nope", service.ErrProductNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name: "store unavailable",
			body: map[string]interface{}{
				"lines": []map[string]interface{}{{"product_id": "cpu"}},
			},
			setupMocks: func(m handlerMocks) {
				m.lines.On("Create", mock.Anything, mock.Anything, model.ModeStructural).
					Return(nil, circuitbreaker.ErrCircuitOpen)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   dto.ErrCodeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, nil)
			tt.setupMocks(m)

			w := doJSON(router, "POST", "/api/orders/o1/lines", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
				return
			}
			var resp dto.LinesResponse
			decodeData(t, w, &resp)
			assert.Len(t, resp.Lines, tt.expectedLines)
		})
	}
}

func TestHandler_CreateLines_ValidationDetails(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(router, "POST", "/api/orders/o1/lines", map[string]interface{}{
		"lines": []map[string]interface{}{{"product_id": "cpu", "discount": 120}},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Request validation failed", resp.Message)
	assert.Equal(t, map[string]string{"discount": "must be between 0 and 100"}, resp.Details)
}

func TestHandler_UpdateLine(t *testing.T) {
	tests := []struct {
		name           string
		lineID         string
		body           interface{}
		setupMocks     func(handlerMocks)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "updates quantity",
			lineID: "l1",
			body:   map[string]interface{}{"quantity": 3},
			setupMocks: func(m handlerMocks) {
				m.lines.On("UpdateLine", mock.Anything, "l1", mock.MatchedBy(func(v model.LineValues) bool {
					return v.Quantity != nil && *v.Quantity == 3 && v.Discount == nil
				}), model.ModeStructural).Return(&model.OrderLine{ID: "l1", OrderID: "o1", Quantity: 3}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "price flags select price refresh",
			lineID: "l1",
			body:   map[string]interface{}{"price_unit": 10, "updating_prices": true},
			setupMocks: func(m handlerMocks) {
				m.lines.On("UpdateLine", mock.Anything, "l1", mock.Anything, model.ModePriceRefresh).
					Return(&model.OrderLine{ID: "l1", OrderID: "o1", PriceUnit: 10}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "locked component line",
			lineID: "l3",
			body:   map[string]interface{}{"discount": 50},
			setupMocks: func(m handlerMocks) {
				m.lines.On("UpdateLine", mock.Anything, "l3", mock.Anything, model.ModeStructural).
					Return(nil, fmt.Errorf("%w: line l3", service.ErrModificationForbidden))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "You can not change this line because is part of a pack included in this order",
		},
		{
			name:           "empty edit",
			lineID:         "l1",
			body:           map[string]interface{}{},
			setupMocks:     func(handlerMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown line",
			lineID: "nope",
			body:   map[string]interface{}{"quantity": 1},
			setupMocks: func(m handlerMocks) {
				m.lines.On("UpdateLine", mock.Anything, "nope", mock.Anything, model.ModeStructural).
					Return(nil, service.ErrLineNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, nil)
			tt.setupMocks(m)

			w := doJSON(router, "PATCH", "/api/order-lines/"+tt.lineID, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, decodeError(t, w).Message)
			}
		})
	}
}

func TestHandler_UpdateLine_RejectionAudited(t *testing.T) {
	recorder := newAuditRecorder()
	router, m := newTestRouter(t, recorder)
	m.lines.On("UpdateLine", mock.Anything, "l3", mock.Anything, model.ModeStructural).
		Return(nil, fmt.Errorf("%w: line l3", service.ErrModificationForbidden))

	w := doJSON(router, "PATCH", "/api/order-lines/l3", map[string]interface{}{"discount": 50})

	require.Equal(t, http.StatusForbidden, w.Code)
	entry := recorder.waitFor(t, model.ActionModifyRejected)
	assert.Equal(t, "warn", entry.Level)
	assert.Equal(t, "l3", entry.LineID)
	assert.Contains(t, entry.Error, "pack component line cannot be modified")
}

func TestHandler_PreviewLine(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectAllowed  bool
	}{
		{name: "allowed edit", expectedStatus: http.StatusOK, expectAllowed: true},
		{name: "refused edit", err: service.ErrModificationForbidden, expectedStatus: http.StatusOK},
		{name: "unknown line", err: service.ErrLineNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, nil)
			if tt.err != nil {
				m.lines.On("PreviewLine", mock.Anything, "l2", mock.Anything).Return(nil, tt.err)
			} else {
				m.lines.On("PreviewLine", mock.Anything, "l2", mock.Anything).
					Return(&model.OrderLine{ID: "l2", Quantity: 5}, nil)
			}

			w := doJSON(router, "POST", "/api/order-lines/l2/preview", map[string]interface{}{"quantity": 5})

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var resp dto.PreviewResponse
			decodeData(t, w, &resp)
			assert.Equal(t, tt.expectAllowed, resp.Allowed)
			if tt.expectAllowed {
				require.NotNil(t, resp.Line)
				assert.Equal(t, 5.0, resp.Line.Quantity)
			} else {
				assert.Nil(t, resp.Line)
				assert.NotEmpty(t, resp.Message)
			}
		})
	}
}

func TestHandler_ExpandLine(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedMode   model.ReconcileMode
		expectedStatus int
	}{
		{name: "defaults to structural", body: nil, expectedMode: model.ModeStructural, expectedStatus: http.StatusOK},
		{name: "price refresh", body: map[string]string{"mode": "price_refresh"}, expectedMode: model.ModePriceRefresh, expectedStatus: http.StatusOK},
		{name: "unknown mode", body: map[string]string{"mode": "other"}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, nil)
			if tt.expectedStatus == http.StatusOK {
				line := packLines()[0]
				m.lines.On("GetLine", mock.Anything, "l1").Return(line, nil)
				m.lines.On("ExpandPackLine", mock.Anything, line, true, tt.expectedMode).
					Return(&service.ExpansionResult{Updated: packLines()[1:]}, nil)
			}

			w := doJSON(router, "POST", "/api/order-lines/l1/expand", tt.body)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var res service.ExpansionResult
				decodeData(t, w, &res)
				assert.Len(t, res.Updated, 2)
				assert.Empty(t, res.Created)
			}
		})
	}
}

func TestHandler_OpenParentPackProducts(t *testing.T) {
	tests := []struct {
		name           string
		locale         string
		expectedName   string
		expectedStatus int
	}{
		{name: "english title", locale: "en", expectedName: "Parent Product", expectedStatus: http.StatusOK},
		{name: "dutch title", locale: "nl-NL", expectedName: "Bovenliggend product", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, nil)
			m.lines.On("OpenParentPackProducts", mock.Anything, []string{"l2", "l3"}).Return(&model.ViewAction{
				Name: "Parent Product", Model: "product", ViewMode: "tree,form", IDs: []string{"workstation"},
			}, nil)

			req := newJSONRequest("POST", "/api/order-lines/parent-products", dto.ParentProductsRequest{LineIDs: []string{"l2", "l3"}})
			req.Header.Set("Accept-Language", tt.locale)
			w := serve(router, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			var action model.ViewAction
			decodeData(t, w, &action)
			assert.Equal(t, tt.expectedName, action.Name)
			assert.Equal(t, []string{"workstation"}, action.IDs)
			assert.Equal(t, "tree,form", action.ViewMode)
		})
	}
}

func TestHandler_OpenParentPackProducts_RequiresLines(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(router, "POST", "/api/order-lines/parent-products", map[string]interface{}{"line_ids": []string{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
