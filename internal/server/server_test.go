package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/foods/internal/dashboard"
	"github.com/idilsaglam/foods/internal/foodapi"
	"github.com/idilsaglam/foods/internal/model"
	"github.com/idilsaglam/foods/internal/server"
	"github.com/idilsaglam/foods/internal/store"
	"github.com/idilsaglam/foods/internal/store/jsonstore"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	repo, err := jsonstore.Open(filepath.Join(t.TempDir(), "foods.json"))
	require.NoError(t, err)
	return server.NewFoodHandler(repo, nil).Routes()
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestFoodHandler_CRUD(t *testing.T) {
	h := newHandler(t)

	rr := serve(h, http.MethodPost, "/foods", `{"name":"Ao molho","price":19.9,"available":true}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created model.Food
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	rr = serve(h, http.MethodPut, "/foods/1", `{"id":1,"name":"Ao molho","price":25,"available":false}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var updated model.Food
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, 25.0, updated.Price)
	assert.False(t, updated.Available)

	rr = serve(h, http.MethodGet, "/foods/1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(h, http.MethodGet, "/foods", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var items []model.Food
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	rr = serve(h, http.MethodDelete, "/foods/1", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(h, http.MethodGet, "/foods", "")
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestFoodHandler_Errors(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "bad id", method: http.MethodGet, path: "/foods/abc", wantCode: http.StatusBadRequest, wantErr: "invalid food id"},
		{name: "zero id", method: http.MethodDelete, path: "/foods/0", wantCode: http.StatusBadRequest, wantErr: "invalid food id"},
		{name: "missing get", method: http.MethodGet, path: "/foods/9", wantCode: http.StatusNotFound, wantErr: "food not found"},
		{name: "missing update", method: http.MethodPut, path: "/foods/9", body: `{"name":"x"}`, wantCode: http.StatusNotFound, wantErr: "food not found"},
		{name: "missing delete", method: http.MethodDelete, path: "/foods/9", wantCode: http.StatusNotFound, wantErr: "food not found"},
		{name: "bad json", method: http.MethodPost, path: "/foods", body: `{`, wantCode: http.StatusBadRequest, wantErr: "invalid request format"},
		{name: "validation", method: http.MethodPost, path: "/foods", body: `{"name":"","price":-1}`, wantCode: http.StatusBadRequest, wantErr: "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(h, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantCode, rr.Code)
			var resp server.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantErr, resp.Error)
		})
	}
}

type MockRepository struct {
	mock.Mock
	store.Repository
}

func (m *MockRepository) List(ctx context.Context) ([]*model.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Food), args.Error(1)
}

func TestFoodHandler_StorageFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("disk on fire"))
	h := server.NewFoodHandler(repo, nil).Routes()

	rr := serve(h, http.MethodGet, "/foods", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"failed to retrieve foods"}`, rr.Body.String())
	repo.AssertExpectations(t)
}

func TestFoodHandler_KeepsCallerRequestID(t *testing.T) {
	h := newHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/foods", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, "req-123", rr.Header().Get("X-Request-Id"))
}

// The dashboard against the real client and backend.
func TestDashboard_EndToEnd(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(newHandler(t))
	t.Cleanup(srv.Close)

	client, err := foodapi.New(srv.URL)
	require.NoError(t, err)
	c := dashboard.New(client)
	require.NoError(t, c.Initialize(ctx))
	assert.Empty(t, c.Items())

	a, err := c.AddItem(ctx, model.FoodInput{Name: "Ao molho", Price: 19.9})
	require.NoError(t, err)
	b, err := c.AddItem(ctx, model.FoodInput{Name: "Veggie", Price: 21.9})
	require.NoError(t, err)
	assert.True(t, a.Available)

	c.BeginEdit(a)
	_, err = c.UpdateItem(ctx, model.FoodInput{Name: "Ao molho", Description: "spicy", Price: 22})
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "spicy", items[0].Description)
	assert.Same(t, b, items[1])

	require.NoError(t, c.DeleteItem(ctx, a.ID))
	assert.Equal(t, dashboard.Snapshot{b}, c.Items())

	err = c.DeleteItem(ctx, a.ID)
	var se *foodapi.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, dashboard.Snapshot{b}, c.Items())

	fresh := dashboard.New(client)
	require.NoError(t, fresh.Initialize(ctx))
	require.Len(t, fresh.Items(), 1)
	assert.Equal(t, b.ID, fresh.Items()[0].ID)
}
