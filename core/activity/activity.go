package activity

import "time"

// Log is an audit trail row. Writes are best effort: they run detached from
// the request and a failed insert never fails the primary operation.
type Log struct {
	ID        string    `db:"activity_id"`
	UserID    *string   `db:"user_id"`
	Action    string    `db:"action"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}
