package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-order-services.git/internal/clients"
	"github.com/ariefcatur/go-order-services.git/internal/metrics"
	"github.com/ariefcatur/go-order-services.git/internal/orders"
	"github.com/ariefcatur/go-order-services.git/internal/redisx"
)

type OrdersHandler struct {
	Repo     orders.Repository
	Workflow *orders.Workflow
	Cache    *redisx.Cache
	Metrics  *metrics.WorkflowMetrics
	Log      *slog.Logger
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Get("/orders", h.list)
	r.Get("/orders/{id}", h.get)
	r.Get("/orders/customer/{customerId}", h.byCustomer)
	r.Post("/orders", h.create)
	r.Put("/orders/{id}", h.update)
	r.Delete("/orders/{id}", h.remove)
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	all, err := h.Repo.GetAll(ctx)
	if err != nil {
		h.logError("list orders", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *OrdersHandler) logError(op string, err error) {
	if h.Log != nil {
		h.Log.Error(op, "err", err)
	}
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := redisx.OrderKey(id)
	if s, ok := h.Cache.Get(ctx, key); ok {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	o, err := h.Repo.Get(ctx, id)
	if err != nil {
		writeError(w, mapOrderError(err), err.Error())
		return
	}
	b, _ := json.Marshal(o)
	h.Cache.Set(ctx, key, b)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *OrdersHandler) byCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := parseID(chi.URLParam(r, "customerId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Repo.GetByCustomer(ctx, customerID)
	if err != nil {
		h.logError("list orders by customer", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var in orders.Order
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	o, err := h.Workflow.Create(ctx, in)
	if err != nil {
		h.Metrics.Observe("create", outcome(err))
		if errors.Is(err, orders.ErrInsufficientStock) {
			// Rule declined: no error, nothing created.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, mapOrderError(err), err.Error())
		return
	}
	h.Metrics.Observe("create", "created")

	w.Header().Set("Location", fmt.Sprintf("/orders/%d", o.ID))
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in orders.Order
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.ID != id {
		writeError(w, http.StatusBadRequest, "id mismatch")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.Workflow.Fulfill(ctx, id, orders.ParseStatus(string(in.Status))); err != nil {
		h.Metrics.Observe("fulfill", outcome(err))
		writeError(w, mapOrderError(err), err.Error())
		return
	}
	h.Metrics.Observe("fulfill", "updated")
	h.Cache.Del(ctx, redisx.OrderKey(id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrdersHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.Remove(ctx, id); err != nil {
		writeError(w, mapOrderError(err), err.Error())
		return
	}
	h.Cache.Del(ctx, redisx.OrderKey(id))
	w.WriteHeader(http.StatusNoContent)
}

func mapOrderError(err error) int {
	switch {
	case errors.Is(err, orders.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, orders.ErrNotFound),
		errors.Is(err, orders.ErrCustomerNotFound),
		errors.Is(err, orders.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrNoCreditStanding):
		return http.StatusUnauthorized
	case errors.Is(err, clients.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		// ErrPartialFailure lands here with its distinct message intact.
		return http.StatusInternalServerError
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, orders.ErrInvalidInput):
		return "bad_request"
	case errors.Is(err, orders.ErrNotFound),
		errors.Is(err, orders.ErrCustomerNotFound),
		errors.Is(err, orders.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, orders.ErrNoCreditStanding):
		return "no_credit"
	case errors.Is(err, orders.ErrInsufficientStock):
		return "declined"
	case errors.Is(err, orders.ErrPartialFailure):
		return "partial_failure"
	case errors.Is(err, clients.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
