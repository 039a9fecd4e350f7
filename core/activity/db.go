package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/jbalanon/anihan-market/validate"
	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, lg Log) error {
	const q = `
	INSERT INTO activity_logs (activity_id, user_id, action, detail, created_at)
	VALUES (:activity_id, :user_id, :action, :detail, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, lg); err != nil {
		return fmt.Errorf("inserting activity log: %w", err)
	}

	return nil
}

// Record builds a task suitable for the background runner.
func Record(db *sqlx.DB, userID string, action string, detail string) func() error {
	lg := Log{
		ID:        validate.GenerateID(),
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if userID != "" {
		lg.UserID = &userID
	}

	return func() error {
		return Create(context.Background(), db, lg)
	}
}
