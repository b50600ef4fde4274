// Package aggregator wires store change notifications to queue
// reprojection. It holds the latest snapshots of the three scheduler
// inputs, re-runs the projector whenever one of them changes, and
// republishes the resulting queue to the station displays.
package aggregator

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kiwari-pos/kds/internal/enum"
	"github.com/kiwari-pos/kds/internal/kitchen"
	"github.com/kiwari-pos/kds/internal/model"
	"github.com/kiwari-pos/kds/internal/store"
	"github.com/kiwari-pos/kds/internal/ws"
)

// EventQueueUpdated is pushed to station rooms on every reprojection.
const EventQueueUpdated = "queue_updated"

// Sources defines the snapshot reads the aggregator performs.
// Satisfied by *postgres.Store; narrow interface for testability.
type Sources interface {
	ListOrdersByDate(ctx context.Context, businessDate string) ([]model.Order, error)
	ListDishMasters(ctx context.Context) ([]model.DishMaster, error)
	ListTimingRecords(ctx context.Context) ([]model.TimingRecord, error)
}

// Publisher pushes events to the station rooms. Satisfied by *ws.Hub.
type Publisher interface {
	BroadcastToStation(station string, event ws.Event)
}

// QueueView is the published shape of one queue slice.
type QueueView struct {
	Units []model.QueueUnit `json:"units"`
	Stats model.QueueStats  `json:"stats"`
}

// Aggregator keeps the last-known-good projection. Reads never block on the
// store; HTTP consumers get the cached queue while notifications drive the
// refresh loop.
type Aggregator struct {
	sources      Sources
	pub          Publisher
	businessDate func() string
	now          func() time.Time

	mu      sync.RWMutex
	orders  []model.Order
	masters map[uuid.UUID]model.DishMaster
	records []model.TimingRecord
	queue   []model.QueueUnit
}

// New creates an Aggregator resolving "today" in the given location.
func New(sources Sources, pub Publisher, loc *time.Location) *Aggregator {
	return &Aggregator{
		sources: sources,
		pub:     pub,
		businessDate: func() string {
			return time.Now().In(loc).Format("2006-01-02")
		},
		now:     time.Now,
		masters: make(map[uuid.UUID]model.DishMaster),
	}
}

// RefreshAll loads all three snapshots and reprojects.
func (a *Aggregator) RefreshAll(ctx context.Context) {
	a.Refresh(ctx, store.ChangeOrders)
	a.Refresh(ctx, store.ChangeMasters)
	a.Refresh(ctx, store.ChangeTimings)
}

// Refresh reloads the snapshot named by the change notification, then
// reprojects. A failed read leaves the previous snapshot in place; the queue
// keeps serving the last-known-good projection.
func (a *Aggregator) Refresh(ctx context.Context, change store.Change) {
	switch change {
	case store.ChangeOrders:
		orders, err := a.sources.ListOrdersByDate(ctx, a.businessDate())
		if err != nil {
			log.Printf("ERROR: refresh orders: %v", err)
			return
		}
		a.mu.Lock()
		a.orders = orders
		a.mu.Unlock()

	case store.ChangeMasters:
		masters, err := a.sources.ListDishMasters(ctx)
		if err != nil {
			log.Printf("ERROR: refresh dish masters: %v", err)
			return
		}
		byID := make(map[uuid.UUID]model.DishMaster, len(masters))
		for _, m := range masters {
			byID[m.ID] = m
		}
		a.mu.Lock()
		a.masters = byID
		a.mu.Unlock()

	case store.ChangeTimings:
		records, err := a.sources.ListTimingRecords(ctx)
		if err != nil {
			log.Printf("ERROR: refresh timing records: %v", err)
			return
		}
		a.mu.Lock()
		a.records = records
		a.mu.Unlock()
	}

	a.Reproject()
}

// Reproject re-runs the projector over the current snapshots and publishes
// the result. It only projects once all three snapshots are non-empty; until
// then consumers see an empty queue rather than a half-informed one.
// Scores decay with wall time, so the cron tick also lands here.
func (a *Aggregator) Reproject() {
	a.mu.Lock()
	if len(a.orders) == 0 || len(a.masters) == 0 || len(a.records) == 0 {
		a.mu.Unlock()
		return
	}
	queue := kitchen.Project(a.orders, a.masters, a.records, a.now())
	a.queue = queue
	a.mu.Unlock()

	a.publish(queue)
}

func (a *Aggregator) publish(queue []model.QueueUnit) {
	if a.pub == nil {
		return
	}
	a.publishView(ws.StationAll, queue)
	for _, station := range []string{enum.StationCook, enum.StationGrill} {
		a.publishView(station, filterStation(queue, station))
	}
}

func (a *Aggregator) publishView(room string, units []model.QueueUnit) {
	view := QueueView{Units: units, Stats: a.statsFor(units)}
	payload, err := json.Marshal(view)
	if err != nil {
		log.Printf("ERROR: marshal queue view: %v", err)
		return
	}
	a.pub.BroadcastToStation(room, ws.Event{Type: EventQueueUpdated, Payload: payload})
}

// Queue returns the current full projection, optionally narrowed by station
// and/or table. Station/table zero values mean no filtering.
func (a *Aggregator) Queue(station string, table int) []model.QueueUnit {
	a.mu.RLock()
	queue := a.queue
	a.mu.RUnlock()

	if station != "" && station != ws.StationAll {
		queue = filterStation(queue, station)
	}
	if table > 0 {
		filtered := make([]model.QueueUnit, 0, len(queue))
		for _, u := range queue {
			if u.TableNumber == table {
				filtered = append(filtered, u)
			}
		}
		queue = filtered
	}
	return queue
}

// Stats aggregates counts and the mean wait over the given view.
func (a *Aggregator) Stats(station string, table int) model.QueueStats {
	return a.statsFor(a.Queue(station, table))
}

func (a *Aggregator) statsFor(units []model.QueueUnit) model.QueueStats {
	stats := model.QueueStats{Total: len(units)}
	if len(units) == 0 {
		return stats
	}
	now := a.now()
	var totalWait float64
	for _, u := range units {
		switch u.Status {
		case enum.ItemStatusPending:
			stats.Pending++
		case enum.ItemStatusCooking:
			stats.Cooking++
		case enum.ItemStatusReady:
			stats.Ready++
		}
		totalWait += now.Sub(u.OrderCreatedAt).Minutes()
	}
	stats.AverageWaitMinutes = totalWait / float64(len(units))
	return stats
}

// Tables returns the distinct table numbers present in the queue, ascending.
func (a *Aggregator) Tables() []int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	seen := map[int]bool{}
	var tables []int
	for _, u := range a.queue {
		if !seen[u.TableNumber] {
			seen[u.TableNumber] = true
			tables = append(tables, u.TableNumber)
		}
	}
	sort.Ints(tables)
	return tables
}

func filterStation(queue []model.QueueUnit, station string) []model.QueueUnit {
	filtered := make([]model.QueueUnit, 0, len(queue))
	for _, u := range queue {
		if u.Timing.Station == station {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
