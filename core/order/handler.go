package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jbalanon/anihan-market/api/background"
	"github.com/jbalanon/anihan-market/api/web"
	"github.com/jbalanon/anihan-market/api/weberr"
	"github.com/jbalanon/anihan-market/core/activity"
	"github.com/jbalanon/anihan-market/core/claims"
	"github.com/jbalanon/anihan-market/core/pickup"
	"github.com/jbalanon/anihan-market/core/product"
	"github.com/jbalanon/anihan-market/database"
	"github.com/jbalanon/anihan-market/validate"
	"github.com/jmoiron/sqlx"
)

type created struct {
	OrderID string  `json:"orderId"`
	Total   float64 `json:"total"`
}

// HandleCreate checks out a cart payload. Order, items, stock decrements and
// the pickup placeholder land in one transaction; any failure rolls the whole
// thing back. Item prices are read from storage, never from the client.
func HandleCreate(db *sqlx.DB, bg *background.Background) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var on OrderNew
		if err := web.Decode(w, r, &on); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding order: %w", err))
		}

		if err := validate.Check(on); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		now := time.Now().UTC()
		ord := Order{
			ID:            validate.GenerateID(),
			UserID:        clm.UserID,
			Status:        Pending,
			PickupDetails: on.PickupDetails,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		var unknown bool
		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := Create(ctx, tx, ord); err != nil {
				return fmt.Errorf("creating order: %w", err)
			}

			for _, in := range on.Items {
				prd, err := product.Fetch(ctx, tx, in.ProductID)
				if err != nil {
					if errors.Is(err, product.ErrNotFound) {
						unknown = true
					}
					return fmt.Errorf("fetching product[%s]: %w", in.ProductID, err)
				}

				it := Item{
					OrderID:   ord.ID,
					ProductID: prd.ID,
					Quantity:  in.Quantity,
					Price:     prd.Price,
					CreatedAt: now,
				}

				if err := CreateItem(ctx, tx, it); err != nil {
					return fmt.Errorf("creating item: %w", err)
				}

				if err := product.DecrementStock(ctx, tx, prd.ID, in.Quantity); err != nil {
					return fmt.Errorf("decrementing stock: %w", err)
				}

				ord.Items = append(ord.Items, it)
			}

			pck := pickup.Pickup{
				ID:        validate.GenerateID(),
				OrderID:   ord.ID,
				Status:    pickup.Pending,
				Location:  pickup.DefaultLocation,
				CreatedAt: now,
				UpdatedAt: now,
			}

			if err := pickup.Create(ctx, tx, pck); err != nil {
				return fmt.Errorf("creating pickup placeholder: %w", err)
			}

			return nil
		})

		if err != nil {
			if unknown {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("creating order for user[%s]: %w", clm.UserID, err)
		}

		bg.Go("activity", activity.Record(db, clm.UserID, "order_created", ord.ID))

		return web.Respond(ctx, w, created{OrderID: ord.ID, Total: Total(ord.Items)}, http.StatusCreated)
	}
}

// HandleList returns the caller's orders, or every order for staff.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var orders []Order
		if claims.IsStaff(ctx) {
			orders, err = List(ctx, db)
		} else {
			orders, err = ListByUser(ctx, db, clm.UserID)
		}
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, orders, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		ord, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if !claims.IsUser(ctx, ord.UserID) && !claims.IsStaff(ctx) {
			return weberr.Forbidden(errors.New("order belongs to another user"))
		}

		if ord.Items, err = FetchItems(ctx, db, id); err != nil {
			return err
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}

// HandleUpdateStatus moves an order along its lifecycle. Canceling restocks
// the ordered quantities.
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

		ord, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if !CanTransition(ord.Status, up.Status) {
			return weberr.Unprocessable(fmt.Errorf("order cannot move from %s to %s", ord.Status, up.Status))
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := UpdateStatus(ctx, tx, id, up.Status); err != nil {
				return err
			}

			if up.Status != Canceled {
				return nil
			}

			items, err := FetchItems(ctx, tx, id)
			if err != nil {
				return err
			}

			for _, it := range items {
				if err := product.RestoreStock(ctx, tx, it.ProductID, it.Quantity); err != nil {
					return err
				}
			}

			return nil
		})

		if err != nil {
			return fmt.Errorf("updating status of order[%s]: %w", id, err)
		}

		clm, _ := claims.Get(ctx)
		bg.Go("activity", activity.Record(db, clm.UserID, "order_status_changed", fmt.Sprintf("%s -> %s", id, up.Status)))

		ord.Status = up.Status
		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}
