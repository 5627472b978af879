package foodapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/foods/internal/model"
)

type recorded struct {
	method string
	path   string
	body   string
	reqID  string
}

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.calls...)
}

func newTestServer(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		rec.mu.Lock()
		rec.calls = append(rec.calls, recorded{
			method: req.Method,
			path:   req.URL.Path,
			body:   string(b),
			reqID:  req.Header.Get(RequestIDHeader),
		})
		rec.mu.Unlock()
		handle(w, req)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c, rec
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_List(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.Food{
			{ID: 1, Name: "Ao molho", Price: 19.9, Available: true},
			{ID: 2, Name: "Veggie", Price: 21.9},
		})
	})

	got, err := c.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Veggie", got[1].Name)
	assert.False(t, got[1].Available)
	require.Len(t, calls.all(), 1)
	assert.Equal(t, http.MethodGet, calls.all()[0].method)
	assert.Equal(t, "/foods", calls.all()[0].path)
	assert.NotEmpty(t, calls.all()[0].reqID)
}

func TestClient_List_NullIsEmpty(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	})

	got, err := c.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_Create(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var in model.Food
		_ = json.NewDecoder(r.Body).Decode(&in)
		in.ID = 3
		writeJSON(w, http.StatusCreated, in)
	})

	got, err := c.Create(context.Background(), model.NewFood(model.FoodInput{Name: "Pasta", Price: 12}))

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.True(t, got.Available)
	require.Len(t, calls.all(), 1)
	call := calls.all()[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/foods", call.path)
	assert.JSONEq(t, `{"name":"Pasta","description":"","price":12,"image":"","available":true}`, call.body)
}

func TestClient_Update(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var in model.Food
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeJSON(w, http.StatusOK, in)
	})
	food := &model.Food{ID: 7, Name: "Veggie", Price: 30, Available: false}

	got, err := c.Update(context.Background(), 7, food)

	require.NoError(t, err)
	assert.Equal(t, food, got)
	assert.Equal(t, http.MethodPut, calls.all()[0].method)
	assert.Equal(t, "/foods/7", calls.all()[0].path)
}

func TestClient_Delete(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), 4))

	assert.Equal(t, http.MethodDelete, calls.all()[0].method)
	assert.Equal(t, "/foods/4", calls.all()[0].path)
	assert.Empty(t, calls.all()[0].body)
}

func TestClient_StatusError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		body    string
		wantMsg string
	}{
		{name: "json error body", code: http.StatusNotFound, body: `{"error":"food not found"}`, wantMsg: "delete: 404 food not found"},
		{name: "plain body", code: http.StatusBadGateway, body: "upstream down\n", wantMsg: "delete: 502 upstream down"},
		{name: "empty body", code: http.StatusInternalServerError, wantMsg: "delete: 500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = io.WriteString(w, tt.body)
			})

			err := c.Delete(context.Background(), 1)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestClient_CancelledContext(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.Food{})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"localhost:3333", "ftp://host", "://nope"} {
		_, err := New(raw)
		assert.Error(t, err, raw)
	}
}
