package barangay

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func List(ctx context.Context, db sqlx.ExtContext) ([]Barangay, error) {
	const q = `SELECT * FROM barangays ORDER BY municipality, name`

	barangays := []Barangay{}
	if err := sqlx.SelectContext(ctx, db, &barangays, q); err != nil {
		return nil, fmt.Errorf("selecting barangays: %w", err)
	}

	return barangays, nil
}
