package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/kds/internal/enum"
)

// Order is one table's open tab for a business date. The billing subsystem
// owns it; the scheduler reads it and writes back only the items list and
// the overall status.
type Order struct {
	ID           uuid.UUID  `json:"id"`
	BusinessDate string     `json:"business_date"` // YYYY-MM-DD in the restaurant's zone
	TableNumber  int        `json:"table_number"`
	Status       string     `json:"status"`
	Items        []LineItem `json:"items"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LineItem is one ordered dish row inside an Order. It references either a
// dish master or, for legacy rows, a raw menu item.
type LineItem struct {
	MasterID       *uuid.UUID      `json:"master_id,omitempty"`
	MenuItemID     *uuid.UUID      `json:"menu_item_id,omitempty"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Notes          string          `json:"notes,omitempty"`
	Status         string          `json:"status,omitempty"`
	CompletedCount int             `json:"completed_count"`
	StartedAt      *time.Time      `json:"started_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// Ref is the item's stable reference for transition commands and queue-unit
// identity: the dish master id when linked, else the raw menu item id.
func (li LineItem) Ref() string {
	if li.MasterID != nil {
		return li.MasterID.String()
	}
	if li.MenuItemID != nil {
		return li.MenuItemID.String()
	}
	return ""
}

// KitchenStatus returns the item's effective kitchen state, reconciling the
// stored status with the completed counter.
func (li LineItem) KitchenStatus() string {
	return enum.DerivedItemStatus(li.Quantity, li.CompletedCount, li.Status)
}

// Subtotal is the line's price contribution. Money fields are owned by the
// billing side; the scheduler only round-trips them.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// DishMaster is a named dish variant carrying kitchen metadata. Created by
// menu management, long-lived.
type DishMaster struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Speed       string     `json:"speed"`
	Station     string     `json:"station"`
	Priority    int        `json:"priority"`
	BaseMinutes int        `json:"base_minutes"`
	MenuItemID  *uuid.UUID `json:"menu_item_id,omitempty"` // parent menu item, if any
	CreatedAt   time.Time  `json:"created_at"`
}

// TimingRecord is the legacy fallback source of kitchen metadata, keyed by
// either a dish master id or a menu item id.
type TimingRecord struct {
	ID          uuid.UUID  `json:"id"`
	MasterID    *uuid.UUID `json:"master_id,omitempty"`
	MenuItemID  *uuid.UUID `json:"menu_item_id,omitempty"`
	Name        string     `json:"name"`
	Speed       string     `json:"speed"`
	Station     string     `json:"station"`
	Priority    int        `json:"priority"`
	BaseMinutes int        `json:"base_minutes"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Timing is the normalized kitchen-timing result of resolution.
type Timing struct {
	Name     string `json:"name"`
	Speed    string `json:"speed"`
	Station  string `json:"station"`
	Priority int    `json:"priority"`
}

// QueueUnit is one physical cook/grill unit of a line item's quantity.
// Materialized fresh on every projection, never persisted. UI identity is
// (OrderID, Ref, BatchOrder).
type QueueUnit struct {
	OrderID          uuid.UUID `json:"order_id"`
	Ref              string    `json:"ref"`
	Name             string    `json:"name"`
	TableNumber      int       `json:"table_number"`
	OrderCreatedAt   time.Time `json:"order_created_at"`
	OrderSeq         int       `json:"order_seq"`
	Timing           Timing    `json:"timing"`
	Status           string    `json:"status"`
	BatchOrder       int       `json:"batch_order"` // 1-based index within the batch
	BatchTotal       int       `json:"batch_total"`
	Score            int       `json:"score"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	IsCompleted      bool      `json:"is_completed"`
}

// QueueStats aggregates a queue view for the dashboards.
type QueueStats struct {
	Total              int     `json:"total"`
	Pending            int     `json:"pending"`
	Cooking            int     `json:"cooking"`
	Ready              int     `json:"ready"`
	AverageWaitMinutes float64 `json:"average_wait_minutes"`
}
