// Package server is a small food REST backend for running the dashboard
// without an external service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/idilsaglam/foods/internal/model"
	"github.com/idilsaglam/foods/internal/store"
)

const requestIDHeader = "X-Request-Id"

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type FoodHandler struct {
	repo store.Repository
	log  *slog.Logger
}

func NewFoodHandler(repo store.Repository, log *slog.Logger) *FoodHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &FoodHandler{repo: repo, log: log}
}

// Routes wires the food endpoints onto a router.
func (h *FoodHandler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestLog)
	r.HandleFunc("/foods", h.ListFoods).Methods(http.MethodGet)
	r.HandleFunc("/foods", h.CreateFood).Methods(http.MethodPost)
	r.HandleFunc("/foods/{id}", h.GetFood).Methods(http.MethodGet)
	r.HandleFunc("/foods/{id}", h.UpdateFood).Methods(http.MethodPut)
	r.HandleFunc("/foods/{id}", h.DeleteFood).Methods(http.MethodDelete)
	return r
}

func (h *FoodHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "failed to retrieve foods", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *FoodHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	food, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.storeFail(w, r, "failed to retrieve food", err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *FoodHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	food, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.repo.Create(r.Context(), food)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "failed to create food", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FoodHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	food, ok := h.decode(w, r)
	if !ok {
		return
	}
	updated, err := h.repo.Update(r.Context(), id, food)
	if err != nil {
		h.storeFail(w, r, "failed to update food", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FoodHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.storeFail(w, r, "failed to delete food", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FoodHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid food id"})
		return 0, false
	}
	return id, true
}

func (h *FoodHandler) decode(w http.ResponseWriter, r *http.Request) (*model.Food, bool) {
	var food model.Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request format"})
		return nil, false
	}
	if err := food.Input().Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: []string{err.Error()},
		})
		return nil, false
	}
	return &food, true
}

func (h *FoodHandler) storeFail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if store.IsNotFound(err) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "food not found"})
		return
	}
	h.fail(w, r, http.StatusInternalServerError, msg, err)
}

func (h *FoodHandler) fail(w http.ResponseWriter, r *http.Request, code int, msg string, err error) {
	h.log.Error(msg, "err", err, "request_id", r.Header.Get(requestIDHeader))
	writeJSON(w, code, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLog tags each request with an id (keeping the caller's when sent)
// and logs it once the handler returns.
func (h *FoodHandler) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		h.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"took", time.Since(start),
			"request_id", id,
		)
	})
}

// Run serves h on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, h *FoodHandler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		h.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
