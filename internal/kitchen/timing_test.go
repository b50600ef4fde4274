package kitchen

import (
	"testing"

	"github.com/google/uuid"

	"github.com/kiwari-pos/kds/internal/enum"
	"github.com/kiwari-pos/kds/internal/model"
)

func TestResolveTimingPrefersMasterByID(t *testing.T) {
	masterID := uuid.New()
	menuItemID := uuid.New()
	masters := map[uuid.UUID]model.DishMaster{
		masterID: {
			ID:       masterID,
			Name:     "Ayam Bakar",
			Speed:    enum.SpeedSlow,
			Station:  enum.StationGrill,
			Priority: 2,
		},
	}
	records := []model.TimingRecord{
		{MasterID: &masterID, Name: "stale fallback", Speed: enum.SpeedFast, Station: enum.StationCook, Priority: 4},
	}

	li := model.LineItem{MasterID: &masterID, MenuItemID: &menuItemID, Name: "raw name", Quantity: 1}
	got := ResolveTiming(li, masters, records)

	if got.Name != "Ayam Bakar" {
		t.Errorf("name = %q, want master's name", got.Name)
	}
	if got.Speed != enum.SpeedSlow || got.Station != enum.StationGrill || got.Priority != 2 {
		t.Errorf("timing = %+v, want the master's metadata", got)
	}
}

func TestResolveTimingMatchesMasterByMenuItem(t *testing.T) {
	menuItemID := uuid.New()
	masterID := uuid.New()
	masters := map[uuid.UUID]model.DishMaster{
		masterID: {
			ID:         masterID,
			Name:       "Es Teh",
			Speed:      enum.SpeedFast,
			Station:    enum.StationCook,
			Priority:   3,
			MenuItemID: &menuItemID,
		},
	}

	// Legacy item: points at the menu item directly, no master link.
	li := model.LineItem{MenuItemID: &menuItemID, Name: "Es Teh Manis", Quantity: 2}
	got := ResolveTiming(li, masters, nil)

	if got.Name != "Es Teh" || got.Speed != enum.SpeedFast || got.Priority != 3 {
		t.Errorf("timing = %+v, want master resolved via parent menu item", got)
	}
}

func TestResolveTimingSharedMenuItemIsDeterministic(t *testing.T) {
	menuItemID := uuid.New()
	// Two named variants of the same menu item; the lower master id must
	// win on every resolution, not whichever the map yields first.
	lowID := uuid.MustParse("11111111-1111-4111-8111-111111111111")
	highID := uuid.MustParse("99999999-9999-4999-8999-999999999999")
	masters := map[uuid.UUID]model.DishMaster{
		highID: {
			ID:         highID,
			Name:       "Nasi Bakar Cumi",
			Speed:      enum.SpeedSlow,
			Station:    enum.StationGrill,
			Priority:   1,
			MenuItemID: &menuItemID,
		},
		lowID: {
			ID:         lowID,
			Name:       "Nasi Bakar Ayam",
			Speed:      enum.SpeedMedium,
			Station:    enum.StationCook,
			Priority:   2,
			MenuItemID: &menuItemID,
		},
	}

	li := model.LineItem{MenuItemID: &menuItemID, Name: "Nasi Bakar", Quantity: 1}
	for i := 0; i < 200; i++ {
		got := ResolveTiming(li, masters, nil)
		if got.Name != "Nasi Bakar Ayam" {
			t.Fatalf("resolution %d picked %q, want the lowest master id every time", i, got.Name)
		}
		if got.Station != enum.StationCook || got.Speed != enum.SpeedMedium {
			t.Fatalf("resolution %d timing = %+v, want the low-id master's metadata", i, got)
		}
	}
}

func TestResolveTimingFallsBackToRecord(t *testing.T) {
	menuItemID := uuid.New()
	records := []model.TimingRecord{
		{MenuItemID: &menuItemID, Name: "Sate Kambing", Speed: enum.SpeedSlow, Station: enum.StationGrill, Priority: 1},
	}

	li := model.LineItem{MenuItemID: &menuItemID, Quantity: 1}
	got := ResolveTiming(li, nil, records)

	if got.Name != "Sate Kambing" || got.Speed != enum.SpeedSlow || got.Station != enum.StationGrill {
		t.Errorf("timing = %+v, want fallback record metadata", got)
	}
}

func TestResolveTimingDefaults(t *testing.T) {
	tests := []struct {
		name string
		item model.LineItem
	}{
		{"no references at all", model.LineItem{Name: "Mystery Dish", Quantity: 1}},
		{"dangling master reference", model.LineItem{MasterID: ptrUUID(uuid.New()), Name: "Gone Dish", Quantity: 1}},
		{"dangling menu item reference", model.LineItem{MenuItemID: ptrUUID(uuid.New()), Name: "Old Dish", Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTiming(tt.item, map[uuid.UUID]model.DishMaster{}, nil)
			if got.Speed != enum.SpeedMedium {
				t.Errorf("speed = %q, want default medium", got.Speed)
			}
			if got.Station != enum.StationCook {
				t.Errorf("station = %q, want default cook", got.Station)
			}
			if got.Priority != enum.PriorityHighest {
				t.Errorf("priority = %d, want default 1", got.Priority)
			}
			if got.Name != tt.item.Name {
				t.Errorf("name = %q, want the line item's own name", got.Name)
			}
		})
	}
}

func TestResolveTimingNormalizesBadMetadata(t *testing.T) {
	masterID := uuid.New()
	masters := map[uuid.UUID]model.DishMaster{
		masterID: {
			ID:       masterID,
			Name:     "Broken Master",
			Speed:    "LUDICROUS",
			Station:  "BAR",
			Priority: 99,
		},
	}

	li := model.LineItem{MasterID: &masterID, Quantity: 1}
	got := ResolveTiming(li, masters, nil)

	if got.Speed != enum.SpeedMedium {
		t.Errorf("speed = %q, want unknown speed normalized to medium", got.Speed)
	}
	if got.Station != enum.StationCook {
		t.Errorf("station = %q, want unknown station normalized to cook", got.Station)
	}
	if got.Priority != enum.PriorityHighest {
		t.Errorf("priority = %d, want out-of-range priority clamped", got.Priority)
	}
}

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }
