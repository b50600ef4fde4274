package enum

// ── Order lifecycle ──

const (
	OrderStatusPending    = "PENDING"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusPaid       = "PAID"
)

// ── Per-item kitchen state ──

const (
	ItemStatusPending = "PENDING"
	ItemStatusCooking = "COOKING"
	ItemStatusReady   = "READY"
)

// ── Kitchen metadata ──

const (
	SpeedFast   = "FAST"
	SpeedMedium = "MEDIUM"
	SpeedSlow   = "SLOW"
)

const (
	StationCook  = "COOK"
	StationGrill = "GRILL"
)

// Priorities run 1 (highest) to 4 (lowest).
const (
	PriorityHighest = 1
	PriorityLowest  = 4
)

// ── Access roles ──

const (
	RoleKitchen = "KITCHEN"
	RoleAdmin   = "ADMIN"
)

// IsValidSpeed reports whether s is a known cooking speed.
func IsValidSpeed(s string) bool {
	switch s {
	case SpeedFast, SpeedMedium, SpeedSlow:
		return true
	}
	return false
}

// IsValidStation reports whether s is a known kitchen station.
func IsValidStation(s string) bool {
	switch s {
	case StationCook, StationGrill:
		return true
	}
	return false
}

// ClampPriority forces p into the 1..4 range, defaulting out-of-range
// values to the highest priority.
func ClampPriority(p int) int {
	if p < PriorityHighest || p > PriorityLowest {
		return PriorityHighest
	}
	return p
}

// DerivedItemStatus is the single source of truth for a line item's kitchen
// state. The stored status and the completed counter can disagree in legacy
// data; the counter wins when the batch is fully done.
func DerivedItemStatus(quantity, completed int, stored string) string {
	if quantity > 0 && completed >= quantity {
		return ItemStatusReady
	}
	if completed > 0 {
		// A partially completed batch is being worked on whatever the
		// stored field claims.
		return ItemStatusCooking
	}
	switch stored {
	case ItemStatusCooking, ItemStatusReady:
		return stored
	}
	return ItemStatusPending
}
