package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/kds/internal/service"
)

// TimingCleaner defines the store method the maintenance endpoint needs.
// Satisfied by *postgres.Store; narrow interface for testability.
type TimingCleaner interface {
	DeleteAllTimingRecords(ctx context.Context) error
}

// MaintenanceHandler exposes operator cleanup actions. These are escape
// hatches, not part of the scheduling loop.
type MaintenanceHandler struct {
	cleaner TimingCleaner
	errs    *service.ErrorState
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(cleaner TimingCleaner, errs *service.ErrorState) *MaintenanceHandler {
	return &MaintenanceHandler{cleaner: cleaner, errs: errs}
}

// RegisterRoutes registers maintenance endpoints on the given Chi router.
// Expected to be mounted at /timing-records behind the ADMIN role.
func (h *MaintenanceHandler) RegisterRoutes(r chi.Router) {
	r.Delete("/", h.DeleteAll)
}

// DeleteAll handles DELETE /timing-records, removing every fallback timing
// record.
func (h *MaintenanceHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.cleaner.DeleteAllTimingRecords(r.Context()); err != nil {
		log.Printf("ERROR: delete timing records: %v", err)
		h.errs.Set("delete timing records: " + err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
