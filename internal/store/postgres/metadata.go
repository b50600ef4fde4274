package postgres

import (
	"context"
	"fmt"

	"github.com/kiwari-pos/kds/internal/model"
)

// ListDishMasters returns every dish variant with kitchen metadata.
func (s *Store) ListDishMasters(ctx context.Context) ([]model.DishMaster, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, speed, station, priority, base_minutes, menu_item_id, created_at
		FROM dish_masters
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list dish masters: %w", err)
	}
	defer rows.Close()

	var masters []model.DishMaster
	for rows.Next() {
		var m model.DishMaster
		if err := rows.Scan(&m.ID, &m.Name, &m.Speed, &m.Station, &m.Priority, &m.BaseMinutes, &m.MenuItemID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dish master: %w", err)
		}
		masters = append(masters, m)
	}
	return masters, rows.Err()
}

// ListTimingRecords returns the fallback kitchen metadata records.
func (s *Store) ListTimingRecords(ctx context.Context) ([]model.TimingRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, master_id, menu_item_id, name, speed, station, priority, base_minutes, created_at
		FROM timing_records
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list timing records: %w", err)
	}
	defer rows.Close()

	var records []model.TimingRecord
	for rows.Next() {
		var r model.TimingRecord
		if err := rows.Scan(&r.ID, &r.MasterID, &r.MenuItemID, &r.Name, &r.Speed, &r.Station, &r.Priority, &r.BaseMinutes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan timing record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteAllTimingRecords is the operator cleanup action. The scheduler never
// calls this.
func (s *Store) DeleteAllTimingRecords(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM timing_records`); err != nil {
		return fmt.Errorf("delete timing records: %w", err)
	}
	return nil
}
