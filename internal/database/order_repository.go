package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pizzeria/internal/models"
)

// ErrOrderNotFound is returned when no order carries the requested number
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository records confirmation events in PostgreSQL
type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// RecordOrder stores a finalized order and its lines. A message id that was
// already recorded is skipped and reported as false.
func (r *OrderRepository) RecordOrder(ctx context.Context, messageID string, order models.FinalizedOrder) (bool, error) {
	inserted := false
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, InsertOrderSQL,
			order.ID, messageID, order.Number, order.Subtotal, order.DeliveryFee, order.Total, order.FinalizedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		inserted = true

		for i, line := range order.Lines {
			if _, err := tx.Exec(ctx, InsertOrderItemSQL,
				order.ID, i+1, line.ItemID, line.Name, line.Quantity, line.Price,
			); err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// RecordReservation stores a confirmed reservation, skipping duplicates
func (r *OrderRepository) RecordReservation(ctx context.Context, messageID string, res models.Reservation) (bool, error) {
	tag, err := r.db.Exec(ctx, InsertReservationSQL, res.ID, messageID, res.Day, res.Slot, res.ConfirmedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetOrderByNumber returns the most recently recorded order with number
func (r *OrderRepository) GetOrderByNumber(ctx context.Context, number string) (*models.FinalizedOrder, error) {
	var order models.FinalizedOrder
	err := r.db.QueryRow(ctx, GetOrderByNumberSQL, number).Scan(
		&order.ID, &order.Number, &order.Subtotal, &order.DeliveryFee, &order.Total, &order.FinalizedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := r.db.Query(ctx, GetOrderItemsSQL, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.ItemID, &line.Name, &line.Quantity, &line.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

// Ping checks the underlying pool
func (r *OrderRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
