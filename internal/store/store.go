// Package store defines the contracts the scheduler has with the hosted
// order store. The scheduler packages depend only on these interfaces; the
// postgres subpackage is one adapter behind them.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kiwari-pos/kds/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Change identifies which input snapshot a store notification concerns.
type Change string

const (
	ChangeOrders  Change = "orders"
	ChangeMasters Change = "dish_masters"
	ChangeTimings Change = "timing_records"
)

// OrderStore reads the continuously updated set of orders for a business
// date and writes back an order's line items and overall status as one
// whole-document replace.
type OrderStore interface {
	ListOrdersByDate(ctx context.Context, businessDate string) ([]model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error)
	ReplaceOrderItems(ctx context.Context, id uuid.UUID, items []model.LineItem, status string) error
}

// MasterStore reads the named dish variants carrying kitchen metadata.
type MasterStore interface {
	ListDishMasters(ctx context.Context) ([]model.DishMaster, error)
}

// TimingStore reads the fallback kitchen metadata records. DeleteAll is an
// operational cleanup escape hatch for operators; the scheduler itself never
// calls it.
type TimingStore interface {
	ListTimingRecords(ctx context.Context) ([]model.TimingRecord, error)
	DeleteAllTimingRecords(ctx context.Context) error
}

// Watcher delivers change notifications from the store. Implementations
// call onChange once per notification until ctx is cancelled.
type Watcher interface {
	Watch(ctx context.Context, onChange func(Change)) error
}
