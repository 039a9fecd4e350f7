package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("payment not found")

func Create(ctx context.Context, db sqlx.ExtContext, pay Payment) error {
	const q = `
	INSERT INTO payments (payment_id, order_id, method, status, amount, reference, card_last4, card_brand, created_at)
	VALUES (:payment_id, :order_id, :method, :status, :amount, :reference, :card_last4, :card_brand, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, pay); err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Payment, error) {
	const q = `SELECT * FROM payments WHERE payment_id = $1`

	var pay Payment
	if err := sqlx.GetContext(ctx, db, &pay, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, fmt.Errorf("selecting payment[%s]: %w", id, err)
	}

	return pay, nil
}

// FetchCompletedByOrder returns the completed payment of an order, if any.
func FetchCompletedByOrder(ctx context.Context, db sqlx.ExtContext, orderID string) (Payment, error) {
	const q = `SELECT * FROM payments WHERE order_id = $1 AND status = 'completed' LIMIT 1`

	var pay Payment
	if err := sqlx.GetContext(ctx, db, &pay, q, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, fmt.Errorf("selecting completed payment of order[%s]: %w", orderID, err)
	}

	return pay, nil
}

func CreateHistory(ctx context.Context, db sqlx.ExtContext, h History) error {
	const q = `
	INSERT INTO payment_status_history (payment_id, status, note, created_at)
	VALUES (:payment_id, :status, :note, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, h); err != nil {
		return fmt.Errorf("inserting payment history: %w", err)
	}

	return nil
}

func CreateSavedMethod(ctx context.Context, db sqlx.ExtContext, sm SavedMethod) error {
	const q = `
	INSERT INTO payment_methods (payment_method_id, user_id, method, card_last4, card_brand, created_at)
	VALUES (:payment_method_id, :user_id, :method, :card_last4, :card_brand, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, sm); err != nil {
		return fmt.Errorf("inserting payment method: %w", err)
	}

	return nil
}

// MonthlyRevenue sums completed payment amounts per month.
func MonthlyRevenue(ctx context.Context, db sqlx.ExtContext) (map[string]float64, error) {
	const q = `
	SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, SUM(amount) AS total
	FROM payments
	WHERE status = 'completed'
	GROUP BY 1
	ORDER BY 1`

	rows, err := db.QueryxContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("summing monthly revenue: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var month string
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("scanning monthly revenue: %w", err)
		}
		out[month] = total
	}

	return out, nil
}

func TotalRevenue(ctx context.Context, db sqlx.ExtContext) (float64, error) {
	const q = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'completed'`

	var total float64
	if err := sqlx.GetContext(ctx, db, &total, q); err != nil {
		return 0, fmt.Errorf("summing revenue: %w", err)
	}

	return total, nil
}
