package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/kds/internal/enum"
	"github.com/kiwari-pos/kds/internal/model"
	"github.com/kiwari-pos/kds/internal/ws"
)

// QueueReader defines the aggregator methods the queue endpoints need.
// Satisfied by *aggregator.Aggregator; narrow interface for testability.
type QueueReader interface {
	Queue(station string, table int) []model.QueueUnit
	Stats(station string, table int) model.QueueStats
	Tables() []int
}

// QueueHandler serves the ordered queue views to station displays.
type QueueHandler struct {
	agg QueueReader
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(agg QueueReader) *QueueHandler {
	return &QueueHandler{agg: agg}
}

// RegisterRoutes registers queue endpoints on the given Chi router.
// Expected to be mounted at /queue.
func (h *QueueHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Get("/tables", h.Tables)
}

type queueResponse struct {
	Units []model.QueueUnit `json:"units"`
	Total int               `json:"total"`
}

// List handles GET /queue with optional station and table filters.
func (h *QueueHandler) List(w http.ResponseWriter, r *http.Request) {
	station, table, ok := parseQueueFilters(w, r)
	if !ok {
		return
	}

	units := h.agg.Queue(station, table)
	writeJSON(w, http.StatusOK, queueResponse{Units: units, Total: len(units)})
}

// Stats handles GET /queue/stats with the same filters as List.
func (h *QueueHandler) Stats(w http.ResponseWriter, r *http.Request) {
	station, table, ok := parseQueueFilters(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.agg.Stats(station, table))
}

// Tables handles GET /queue/tables.
func (h *QueueHandler) Tables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]int{"tables": h.agg.Tables()})
}

func parseQueueFilters(w http.ResponseWriter, r *http.Request) (station string, table int, ok bool) {
	// ALL means the whole queue, same as the websocket rooms.
	station = r.URL.Query().Get("station")
	if station != "" && station != ws.StationAll && !enum.IsValidStation(station) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid station"})
		return "", 0, false
	}

	if s := r.URL.Query().Get("table"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table number"})
			return "", 0, false
		}
		table = v
	}
	return station, table, true
}
