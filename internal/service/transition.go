package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kiwari-pos/kds/internal/enum"
	"github.com/kiwari-pos/kds/internal/model"
	"github.com/kiwari-pos/kds/internal/store"
)

// Errors returned by the transition service.
var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("line item not found in order")
	ErrBadBatchOrder = errors.New("batch position out of range")
)

// TransitionStore defines the store methods transitions need.
// Satisfied by *postgres.Store; narrow interface for testability.
type TransitionStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error)
	ReplaceOrderItems(ctx context.Context, id uuid.UUID, items []model.LineItem, status string) error
}

// ErrorState is the single clearable textual error surfaced to the station
// UIs. Store failures land here; the queue keeps operating on the last
// known-good projection until an operator dismisses the banner.
type ErrorState struct {
	mu  sync.Mutex
	msg string
}

func (e *ErrorState) Set(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.msg = msg
}

func (e *ErrorState) Get() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.msg
}

func (e *ErrorState) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.msg = ""
}

// TransitionService applies start/complete/undo actions to an order's line
// items. Every transition is a read of the whole order, a recompute of the
// full items list, and a whole-document write back. Transitions against the
// same order are serialized through a per-order lock so two stations cannot
// silently discard each other's writes.
type TransitionService struct {
	store TransitionStore
	errs  *ErrorState
	now   func() time.Time

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewTransitionService creates a TransitionService reporting store failures
// to errs.
func NewTransitionService(st TransitionStore, errs *ErrorState) *TransitionService {
	return &TransitionService{
		store: st,
		errs:  errs,
		now:   time.Now,
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// StartCooking marks the matching line item as cooking, stamps its start
// time, and moves the order to in-progress.
func (s *TransitionService) StartCooking(ctx context.Context, orderID uuid.UUID, ref string) error {
	return s.apply(ctx, orderID, ref, func(li *model.LineItem) error {
		li.Status = enum.ItemStatusCooking
		started := s.now()
		li.StartedAt = &started
		return nil
	}, func(model.Order) string {
		return enum.OrderStatusInProgress
	})
}

// CompleteCooking marks one more unit of the line item's batch done.
// batchOrder is the UI's 1-based batch position; it is validated against
// the batch size but the progression is driven by the counter. When the
// whole batch is done the item flips to ready and gets a completion stamp.
func (s *TransitionService) CompleteCooking(ctx context.Context, orderID uuid.UUID, ref string, batchOrder int) error {
	return s.apply(ctx, orderID, ref, func(li *model.LineItem) error {
		if batchOrder < 1 || batchOrder > li.Quantity {
			return fmt.Errorf("%w: %d of %d", ErrBadBatchOrder, batchOrder, li.Quantity)
		}
		if li.CompletedCount < li.Quantity {
			li.CompletedCount++
		}
		if li.CompletedCount >= li.Quantity {
			li.Status = enum.ItemStatusReady
			done := s.now()
			li.CompletedAt = &done
		} else {
			li.Status = enum.ItemStatusCooking
		}
		return nil
	}, recomputeOrderStatus)
}

// UndoCompleted takes one completed unit back: the counter decrements
// (floored at zero), the item returns to cooking, the completion stamp is
// cleared, and the order is forced back to in-progress.
func (s *TransitionService) UndoCompleted(ctx context.Context, orderID uuid.UUID, ref string) error {
	return s.apply(ctx, orderID, ref, func(li *model.LineItem) error {
		if li.CompletedCount > 0 {
			li.CompletedCount--
		}
		li.Status = enum.ItemStatusCooking
		li.CompletedAt = nil
		return nil
	}, func(model.Order) string {
		return enum.OrderStatusInProgress
	})
}

// apply runs one read-modify-write round trip under the order's lock.
func (s *TransitionService) apply(ctx context.Context, orderID uuid.UUID, ref string, mutate func(*model.LineItem) error, orderStatus func(model.Order) string) error {
	lock := s.lockFor(orderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrderNotFound
		}
		s.errs.Set(fmt.Sprintf("read order %s: %v", orderID, err))
		return fmt.Errorf("read order: %w", err)
	}

	idx := -1
	for i := range order.Items {
		if order.Items[i].Ref() == ref {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}

	if err := mutate(&order.Items[idx]); err != nil {
		return err
	}

	status := orderStatus(order)
	if err := s.store.ReplaceOrderItems(ctx, orderID, order.Items, status); err != nil {
		s.errs.Set(fmt.Sprintf("write order %s: %v", orderID, err))
		return fmt.Errorf("write order: %w", err)
	}
	return nil
}

func (s *TransitionService) lockFor(orderID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[orderID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[orderID] = l
	}
	return l
}

// recomputeOrderStatus derives the order-level status after a completion:
// completed only when every line item reads ready, else in-progress.
func recomputeOrderStatus(order model.Order) string {
	for _, li := range order.Items {
		if li.KitchenStatus() != enum.ItemStatusReady {
			return enum.OrderStatusInProgress
		}
	}
	return enum.OrderStatusCompleted
}
