package get

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fieldservice-golang/internal/storage"
)

type MockWorkOrderProvider struct {
	mock.Mock
}

func (m *MockWorkOrderProvider) GetWorkOrders(ctx context.Context) ([]storage.WorkOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.WorkOrder), args.Error(1)
}

func TestGetWorkOrders_All(t *testing.T) {
	mockProvider := new(MockWorkOrderProvider)
	mockProvider.On("GetWorkOrders", mock.Anything).Return([]storage.WorkOrder{
		{ID: 1, Numero: "OT-001", Status: "Abierta", TechnicianID: "u1"},
		{ID: 2, Numero: "OT-002", Status: "Abierta"},
	}, nil)

	handler := GetWorkOrders(slog.Default(), mockProvider)

	req := httptest.NewRequest(http.MethodGet, "/api/ot", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []storage.WorkOrder
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Len(t, resp, 2)
}

func TestGetWorkOrders_Backlog(t *testing.T) {
	mockProvider := new(MockWorkOrderProvider)
	mockProvider.On("GetWorkOrders", mock.Anything).Return([]storage.WorkOrder{
		{ID: 1, Numero: "OT-001", Status: "Abierta", TechnicianID: "u1"},
		{ID: 2, Numero: "OT-002", Status: "Abierta"},
		{ID: 3, Numero: "OT-003", Status: "En curso"},
	}, nil)

	handler := GetWorkOrders(slog.Default(), mockProvider)

	// el backlog son las OT sin técnico
	req := httptest.NewRequest(http.MethodGet, "/api/ot?backlog=true", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []storage.WorkOrder
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "OT-002", resp[0].Numero)
	assert.Equal(t, "OT-003", resp[1].Numero)
}

func TestGetWorkOrders_StorageError(t *testing.T) {
	mockProvider := new(MockWorkOrderProvider)
	mockProvider.On("GetWorkOrders", mock.Anything).Return(nil, assert.AnError)

	handler := GetWorkOrders(slog.Default(), mockProvider)

	req := httptest.NewRequest(http.MethodGet, "/api/ot", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
