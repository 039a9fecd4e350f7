package pickup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jbalanon/anihan-market/api/background"
	"github.com/jbalanon/anihan-market/api/web"
	"github.com/jbalanon/anihan-market/api/weberr"
	"github.com/jbalanon/anihan-market/core/activity"
	"github.com/jbalanon/anihan-market/core/claims"
	"github.com/jbalanon/anihan-market/validate"
	"github.com/jmoiron/sqlx"
)

// HandleSchedule creates or updates the pickup of an order. The operation is
// an upsert keyed on the order: scheduling twice moves the same row.
func HandleSchedule(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		orderID := web.Param(r, "order_id")
		if err := validate.CheckID(orderID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		owner, err := fetchOrderOwner(ctx, db, orderID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if owner != clm.UserID && !claims.IsStaff(ctx) {
			return weberr.Forbidden(errors.New("pickup belongs to another user"))
		}

		var sch Schedule
		if err := web.Decode(w, r, &sch); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding schedule: %w", err))
		}

		if err := validate.Check(sch); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		now := time.Now().UTC()
		at := sch.ScheduledAt.UTC()

		pck, err := FetchByOrder(ctx, db, orderID)
		switch {
		case errors.Is(err, ErrNotFound):
			pck = Pickup{
				ID:          validate.GenerateID(),
				OrderID:     orderID,
				Status:      Pending,
				ScheduledAt: &at,
				Location:    sch.Location,
				HandlerID:   sch.HandlerID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := Create(ctx, db, pck); err != nil {
				return err
			}

		case err != nil:
			return err

		default:
			pck.ScheduledAt = &at
			pck.Location = sch.Location
			pck.HandlerID = sch.HandlerID
			pck.UpdatedAt = now
			if err := Reschedule(ctx, db, pck); err != nil {
				return err
			}
		}

		return web.Respond(ctx, w, pck, http.StatusOK)
	}
}

// HandleList returns the current user's pickups. A user with no orders gets
// an empty list, not an error.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		pickups, err := ListByUser(ctx, db, clm.UserID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, pickups, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		pck, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		owner, err := fetchOrderOwner(ctx, db, pck.OrderID)
		if err != nil {
			return err
		}

		if !claims.IsUser(ctx, owner) && !claims.IsStaff(ctx) {
			return weberr.Forbidden(errors.New("pickup belongs to another user"))
		}

		return web.Respond(ctx, w, pck, http.StatusOK)
	}
}

// HandleUpdateStatus moves a pickup along its lifecycle. Transitions outside
// the table (a canceled pickup marked completed, say) are rejected.
func HandleUpdateStatus(db *sqlx.DB, bg *background.Background) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var up StatusUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding status update: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		pck, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if !CanTransition(pck.Status, up.Status) {
			return weberr.Unprocessable(fmt.Errorf("pickup cannot move from %s to %s", pck.Status, up.Status))
		}

		if err := UpdateStatus(ctx, db, id, up.Status); err != nil {
			return err
		}

		if clm, err := claims.Get(ctx); err == nil {
			bg.Go("activity", activity.Record(db, clm.UserID, "pickup_status_changed", id+" -> "+string(up.Status)))
		}

		pck.Status = up.Status
		return web.Respond(ctx, w, pck, http.StatusOK)
	}
}

func fetchOrderOwner(ctx context.Context, db sqlx.ExtContext, orderID string) (string, error) {
	const q = `SELECT user_id FROM orders WHERE order_id = $1`

	var owner string
	if err := sqlx.GetContext(ctx, db, &owner, q, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("selecting owner of order[%s]: %w", orderID, err)
	}

	return owner, nil
}
