package kitchen

import (
	"time"

	"github.com/kiwari-pos/kds/internal/enum"
	"github.com/kiwari-pos/kds/internal/model"
)

// Score weights. Waiting time dominates so no order starves; priority adds a
// bounded bonus that cannot override a large wait-time gap; batch size gives
// a small nudge toward finishing larger batches.
const (
	scoreBase        = 1000
	waitWeight       = 50
	orderAgeWeight   = 10
	batchSizeWeight  = 2
	priorityWeight   = 50
	scoreFloor       = 1
	scoreEqualityGap = 10
)

// Score computes the dispatch priority of one queue unit at instant now.
// Scores never drop below 1 so ordering comparisons stay meaningful.
//
// The ported formula deliberately subtracts per waiting minute: a much older
// unit scores lower, and outside the equality gap the comparator puts it
// later. Inside the gap the creation-time fallback still favors older orders.
func Score(u model.QueueUnit, now time.Time) int {
	waitingMinutes := minutesSince(u.OrderCreatedAt, now)
	// Redundant with waitingMinutes in the current data model; kept as a
	// separately weighted secondary bias toward order age.
	orderAgeMinutes := waitingMinutes

	s := scoreBase -
		waitingMinutes*waitWeight -
		orderAgeMinutes*orderAgeWeight +
		u.BatchTotal*batchSizeWeight +
		(enum.PriorityLowest-u.Timing.Priority)*priorityWeight
	if s < scoreFloor {
		return scoreFloor
	}
	return s
}

// Per-speed base cook time in minutes.
var speedBaseMinutes = map[string]int{
	enum.SpeedFast:   2,
	enum.SpeedMedium: 5,
	enum.SpeedSlow:   10,
}

// EstimatedMinutes returns the cook-time estimate for unitQuantity units of
// a dish with the given timing. Queue units are projected one at a time, so
// callers pass quantity 1 today; the quantity parameter is kept for
// batch-level estimation.
func EstimatedMinutes(unitQuantity int, t model.Timing) int {
	base, ok := speedBaseMinutes[t.Speed]
	if !ok {
		base = speedBaseMinutes[enum.SpeedMedium]
	}
	return base * unitQuantity
}

func minutesSince(t, now time.Time) int {
	m := int(now.Sub(t).Minutes())
	if m < 0 {
		return 0
	}
	return m
}
