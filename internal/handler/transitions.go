package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kiwari-pos/kds/internal/service"
)

// Transitioner defines the service methods the transition endpoints need.
// Satisfied by *service.TransitionService; narrow interface for testability.
type Transitioner interface {
	StartCooking(ctx context.Context, orderID uuid.UUID, ref string) error
	CompleteCooking(ctx context.Context, orderID uuid.UUID, ref string, batchOrder int) error
	UndoCompleted(ctx context.Context, orderID uuid.UUID, ref string) error
}

// TransitionHandler exposes the three kitchen transition commands plus the
// shared error banner.
type TransitionHandler struct {
	svc  Transitioner
	errs *service.ErrorState
}

// NewTransitionHandler creates a new TransitionHandler.
func NewTransitionHandler(svc Transitioner, errs *service.ErrorState) *TransitionHandler {
	return &TransitionHandler{svc: svc, errs: errs}
}

// RegisterRoutes registers transition endpoints on the given Chi router.
// Expected to be mounted at /orders.
func (h *TransitionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/{id}/items/{ref}/start", h.Start)
	r.Post("/{id}/items/{ref}/complete", h.Complete)
	r.Post("/{id}/items/{ref}/undo", h.Undo)
}

// RegisterErrorRoutes registers the error banner endpoints.
// Expected to be mounted at /kitchen/error.
func (h *TransitionHandler) RegisterErrorRoutes(r chi.Router) {
	r.Get("/", h.GetError)
	r.Delete("/", h.ClearError)
}

type completeRequest struct {
	BatchOrder int `json:"batch_order"`
}

// Start handles POST /orders/{id}/items/{ref}/start.
func (h *TransitionHandler) Start(w http.ResponseWriter, r *http.Request) {
	orderID, ref, ok := parseTransitionTarget(w, r)
	if !ok {
		return
	}
	h.respond(w, "start cooking", h.svc.StartCooking(r.Context(), orderID, ref))
}

// Complete handles POST /orders/{id}/items/{ref}/complete.
func (h *TransitionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	orderID, ref, ok := parseTransitionTarget(w, r)
	if !ok {
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.BatchOrder < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "batch_order must be >= 1"})
		return
	}

	h.respond(w, "complete cooking", h.svc.CompleteCooking(r.Context(), orderID, ref, req.BatchOrder))
}

// Undo handles POST /orders/{id}/items/{ref}/undo.
func (h *TransitionHandler) Undo(w http.ResponseWriter, r *http.Request) {
	orderID, ref, ok := parseTransitionTarget(w, r)
	if !ok {
		return
	}
	h.respond(w, "undo completed", h.svc.UndoCompleted(r.Context(), orderID, ref))
}

// GetError handles GET /kitchen/error.
func (h *TransitionHandler) GetError(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"error": h.errs.Get()})
}

// ClearError handles DELETE /kitchen/error.
func (h *TransitionHandler) ClearError(w http.ResponseWriter, r *http.Request) {
	h.errs.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func parseTransitionTarget(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return uuid.Nil, "", false
	}

	ref := chi.URLParam(r, "ref")
	if ref == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item ref is required"})
		return uuid.Nil, "", false
	}
	return orderID, ref, true
}

func (h *TransitionHandler) respond(w http.ResponseWriter, op string, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
	case errors.Is(err, service.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "line item not found"})
	case errors.Is(err, service.ErrBadBatchOrder):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
