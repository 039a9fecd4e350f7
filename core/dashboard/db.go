package dashboard

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type row struct {
	Label string  `db:"label"`
	Value float64 `db:"value"`
}

func query(ctx context.Context, db sqlx.ExtContext, q string) (Chart, error) {
	rows := []row{}
	if err := sqlx.SelectContext(ctx, db, &rows, q); err != nil {
		return Chart{}, fmt.Errorf("running dashboard query: %w", err)
	}

	ch := Chart{Labels: []string{}, Values: []float64{}}
	for _, r := range rows {
		ch.Labels = append(ch.Labels, r.Label)
		ch.Values = append(ch.Values, r.Value)
	}

	return ch, nil
}

func OrdersByStatus(ctx context.Context, db sqlx.ExtContext) (Chart, error) {
	const q = `
	SELECT status AS label, COUNT(*) AS value
	FROM orders
	GROUP BY status
	ORDER BY status`

	return query(ctx, db, q)
}

func PickupsByStatus(ctx context.Context, db sqlx.ExtContext) (Chart, error) {
	const q = `
	SELECT status AS label, COUNT(*) AS value
	FROM pickups
	GROUP BY status
	ORDER BY status`

	return query(ctx, db, q)
}

func StockByBarangay(ctx context.Context, db sqlx.ExtContext) (Chart, error) {
	const q = `
	SELECT b.name AS label, COALESCE(SUM(p.stock), 0) AS value
	FROM products AS p
	JOIN barangays AS b ON b.barangay_id = p.barangay_id
	GROUP BY b.name
	ORDER BY b.name`

	return query(ctx, db, q)
}

func StockByCategory(ctx context.Context, db sqlx.ExtContext) (Chart, error) {
	const q = `
	SELECT c.name AS label, COALESCE(SUM(p.stock), 0) AS value
	FROM products AS p
	JOIN categories AS c ON c.category_id = p.category_id
	GROUP BY c.name
	ORDER BY c.name`

	return query(ctx, db, q)
}

func StockBySeason(ctx context.Context, db sqlx.ExtContext) (Chart, error) {
	const q = `
	SELECT season AS label, COALESCE(SUM(stock), 0) AS value
	FROM products
	GROUP BY season
	ORDER BY season`

	return query(ctx, db, q)
}
