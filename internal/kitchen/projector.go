package kitchen

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kiwari-pos/kds/internal/enum"
	"github.com/kiwari-pos/kds/internal/model"
)

// Project flattens all orders for the day into one globally prioritized
// queue of individual cook/grill units. It is a pure function of its inputs
// and the passed instant; calling it twice with identical arguments yields
// identical output.
//
// No date or status filtering happens here: completed orders stay visible so
// finished work remains on the boards. A fault while expanding one order is
// contained to that order; it contributes zero units and the rest of the
// queue still projects.
func Project(orders []model.Order, masters map[uuid.UUID]model.DishMaster, records []model.TimingRecord, now time.Time) []model.QueueUnit {
	// Stable order sequence: creation time within the business date.
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var units []model.QueueUnit
	for seq, order := range sorted {
		ou, err := expandOrder(order, seq+1, masters, records, now)
		if err != nil {
			log.Printf("ERROR: project order %s: %v", order.ID, err)
			continue
		}
		units = append(units, ou...)
	}

	sortQueue(units)
	return units
}

// expandOrder materializes one queue unit per physical unit of each line
// item's quantity. Malformed item data surfaces as an error instead of
// taking the whole projection down.
func expandOrder(order model.Order, seq int, masters map[uuid.UUID]model.DishMaster, records []model.TimingRecord, now time.Time) (units []model.QueueUnit, err error) {
	defer func() {
		if r := recover(); r != nil {
			units = nil
			err = fmt.Errorf("expand items: %v", r)
		}
	}()

	for _, li := range order.Items {
		quantity := li.Quantity
		if quantity < 1 {
			quantity = 1
		}
		completed := li.CompletedCount
		if completed < 0 {
			completed = 0
		}
		if completed > quantity {
			completed = quantity
		}

		timing := ResolveTiming(li, masters, records)
		remainingStatus := li.KitchenStatus()

		for batch := 1; batch <= quantity; batch++ {
			u := model.QueueUnit{
				OrderID:        order.ID,
				Ref:            li.Ref(),
				Name:           timing.Name,
				TableNumber:    order.TableNumber,
				OrderCreatedAt: order.CreatedAt,
				OrderSeq:       seq,
				Timing:         timing,
				BatchOrder:     batch,
				BatchTotal:     quantity,
			}
			if batch <= completed {
				u.IsCompleted = true
				u.Status = enum.ItemStatusReady
			} else {
				u.Status = remainingStatus
			}
			u.Score = Score(u, now)
			u.EstimatedMinutes = EstimatedMinutes(1, timing)
			units = append(units, u)
		}
	}
	return units, nil
}

// sortQueue applies the dispatch comparator in place:
//  1. incomplete units strictly before completed ones, whatever the scores;
//  2. within a completion class, higher score first when the gap exceeds
//     the equality band (score jitter inside the band must not reorder);
//  3. otherwise earlier order creation first.
func sortQueue(units []model.QueueUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if a.IsCompleted != b.IsCompleted {
			return !a.IsCompleted
		}
		diff := a.Score - b.Score
		if diff > scoreEqualityGap || diff < -scoreEqualityGap {
			return a.Score > b.Score
		}
		return a.OrderCreatedAt.Before(b.OrderCreatedAt)
	})
}
