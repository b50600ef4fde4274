package kitchen

import (
	"bytes"

	"github.com/google/uuid"

	"github.com/kiwari-pos/kds/internal/enum"
	"github.com/kiwari-pos/kds/internal/model"
)

// Default timing applied when no master or fallback record resolves.
var defaultTiming = model.Timing{
	Speed:    enum.SpeedMedium,
	Station:  enum.StationCook,
	Priority: enum.PriorityHighest,
}

// Each resolver tries one source of kitchen metadata for a line item.
// Resolvers are tried in order; the first hit wins.
var timingResolvers = []func(li model.LineItem, masters map[uuid.UUID]model.DishMaster, records []model.TimingRecord) (model.Timing, bool){
	resolveMasterByID,
	resolveMasterByMenuItem,
	resolveTimingRecord,
}

// ResolveTiming determines a line item's kitchen timing attributes.
// Preference order: linked dish master, master matched through the item's
// raw menu-item reference, fallback timing record. Missing data is never an
// error; it degrades to defaults.
func ResolveTiming(li model.LineItem, masters map[uuid.UUID]model.DishMaster, records []model.TimingRecord) model.Timing {
	for _, resolve := range timingResolvers {
		if t, ok := resolve(li, masters, records); ok {
			return normalizeTiming(t, li)
		}
	}
	return normalizeTiming(defaultTiming, li)
}

func resolveMasterByID(li model.LineItem, masters map[uuid.UUID]model.DishMaster, _ []model.TimingRecord) (model.Timing, bool) {
	if li.MasterID == nil {
		return model.Timing{}, false
	}
	m, ok := masters[*li.MasterID]
	if !ok {
		return model.Timing{}, false
	}
	return masterTiming(m), true
}

// resolveMasterByMenuItem handles legacy line items that point at a menu
// item directly. Several named variants can share one parent menu item; the
// lowest master id wins so repeated projections of the same data agree.
func resolveMasterByMenuItem(li model.LineItem, masters map[uuid.UUID]model.DishMaster, _ []model.TimingRecord) (model.Timing, bool) {
	if li.MenuItemID == nil {
		return model.Timing{}, false
	}
	var best model.DishMaster
	found := false
	for _, m := range masters {
		if m.MenuItemID == nil || *m.MenuItemID != *li.MenuItemID {
			continue
		}
		if !found || bytes.Compare(m.ID[:], best.ID[:]) < 0 {
			best = m
			found = true
		}
	}
	if !found {
		return model.Timing{}, false
	}
	return masterTiming(best), true
}

func resolveTimingRecord(li model.LineItem, _ map[uuid.UUID]model.DishMaster, records []model.TimingRecord) (model.Timing, bool) {
	for _, rec := range records {
		if li.MasterID != nil && rec.MasterID != nil && *rec.MasterID == *li.MasterID {
			return recordTiming(rec), true
		}
		if li.MenuItemID != nil && rec.MenuItemID != nil && *rec.MenuItemID == *li.MenuItemID {
			return recordTiming(rec), true
		}
	}
	return model.Timing{}, false
}

func masterTiming(m model.DishMaster) model.Timing {
	return model.Timing{
		Name:     m.Name,
		Speed:    m.Speed,
		Station:  m.Station,
		Priority: m.Priority,
	}
}

func recordTiming(r model.TimingRecord) model.Timing {
	return model.Timing{
		Name:     r.Name,
		Speed:    r.Speed,
		Station:  r.Station,
		Priority: r.Priority,
	}
}

// normalizeTiming sanitizes resolved metadata: unknown speeds and stations
// fall back to the defaults, priority is clamped to 1..4, and the name falls
// back to the line item's own.
func normalizeTiming(t model.Timing, li model.LineItem) model.Timing {
	if !enum.IsValidSpeed(t.Speed) {
		t.Speed = enum.SpeedMedium
	}
	if !enum.IsValidStation(t.Station) {
		t.Station = enum.StationCook
	}
	t.Priority = enum.ClampPriority(t.Priority)
	if t.Name == "" {
		t.Name = li.Name
	}
	return t
}
