package pickup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("pickup not found")

func Create(ctx context.Context, db sqlx.ExtContext, pck Pickup) error {
	const q = `
	INSERT INTO pickups (pickup_id, order_id, status, scheduled_at, location, handler_id, payment_id, created_at, updated_at)
	VALUES (:pickup_id, :order_id, :status, :scheduled_at, :location, :handler_id, :payment_id, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, pck); err != nil {
		return fmt.Errorf("inserting pickup: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Pickup, error) {
	const q = `SELECT * FROM pickups WHERE pickup_id = $1`

	var pck Pickup
	if err := sqlx.GetContext(ctx, db, &pck, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Pickup{}, ErrNotFound
		}
		return Pickup{}, fmt.Errorf("selecting pickup[%s]: %w", id, err)
	}

	return pck, nil
}

func FetchByOrder(ctx context.Context, db sqlx.ExtContext, orderID string) (Pickup, error) {
	const q = `SELECT * FROM pickups WHERE order_id = $1`

	var pck Pickup
	if err := sqlx.GetContext(ctx, db, &pck, q, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Pickup{}, ErrNotFound
		}
		return Pickup{}, fmt.Errorf("selecting pickup of order[%s]: %w", orderID, err)
	}

	return pck, nil
}

func ListByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Pickup, error) {
	const q = `
	SELECT p.* FROM pickups AS p
	JOIN orders AS o ON o.order_id = p.order_id
	WHERE o.user_id = $1
	ORDER BY p.created_at DESC`

	pickups := []Pickup{}
	if err := sqlx.SelectContext(ctx, db, &pickups, q, userID); err != nil {
		return nil, fmt.Errorf("selecting pickups of user[%s]: %w", userID, err)
	}

	return pickups, nil
}

func Reschedule(ctx context.Context, db sqlx.ExtContext, pck Pickup) error {
	const q = `
	UPDATE pickups SET
		scheduled_at = :scheduled_at,
		location = :location,
		handler_id = :handler_id,
		updated_at = :updated_at
	WHERE order_id = :order_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, pck); err != nil {
		return fmt.Errorf("rescheduling pickup of order[%s]: %w", pck.OrderID, err)
	}

	return nil
}

func UpdateStatus(ctx context.Context, db sqlx.ExtContext, id string, status Status) error {
	const q = `UPDATE pickups SET status = $2, updated_at = $3 WHERE pickup_id = $1`

	res, err := db.ExecContext(ctx, q, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("updating status of pickup[%s]: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

// AttachPayment links the payment that settled the pickup's order.
func AttachPayment(ctx context.Context, db sqlx.ExtContext, orderID string, paymentID string) error {
	const q = `UPDATE pickups SET payment_id = $2, updated_at = $3 WHERE order_id = $1`

	if _, err := db.ExecContext(ctx, q, orderID, paymentID, time.Now().UTC()); err != nil {
		return fmt.Errorf("attaching payment to pickup of order[%s]: %w", orderID, err)
	}

	return nil
}
