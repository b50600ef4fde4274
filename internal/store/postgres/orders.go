package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kiwari-pos/kds/internal/model"
	"github.com/kiwari-pos/kds/internal/store"
)

// ListOrdersByDate returns every order created on the given business date,
// oldest first, with its items document unmarshalled.
func (s *Store) ListOrdersByDate(ctx context.Context, businessDate string) ([]model.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, business_date::text, table_number, status, items, created_at, updated_at
		FROM orders
		WHERE business_date = $1::date
		ORDER BY created_at`, businessDate)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetOrder fetches one order by id.
func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, business_date::text, table_number, status, items, created_at, updated_at
		FROM orders
		WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, store.ErrNotFound
		}
		return model.Order{}, err
	}
	return o, nil
}

// ReplaceOrderItems writes back the full items document and overall status
// in one statement. Last write observed wins; callers serialize per order.
func (s *Store) ReplaceOrderItems(ctx context.Context, id uuid.UUID, items []model.LineItem, status string) error {
	doc, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders
		SET items = $2, status = $3, updated_at = now()
		WHERE id = $1`, id, doc, status)
	if err != nil {
		return fmt.Errorf("replace order items: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o        model.Order
		itemsDoc []byte
	)
	if err := row.Scan(&o.ID, &o.BusinessDate, &o.TableNumber, &o.Status, &itemsDoc, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return model.Order{}, err
	}
	if len(itemsDoc) > 0 {
		if err := json.Unmarshal(itemsDoc, &o.Items); err != nil {
			return model.Order{}, fmt.Errorf("unmarshal items for order %s: %w", o.ID, err)
		}
	}
	return o, nil
}
