package payment

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
	"github.com/jbalanon/anihan-market/core/order"
	"github.com/jbalanon/anihan-market/core/pickup"
	"github.com/jbalanon/anihan-market/database"
	"github.com/jbalanon/anihan-market/validate"
	"github.com/jmoiron/sqlx"
)

// HandleCreate processes a payment for an order.
//
// The payment row and the order/pickup updates are one hard transaction.
// Card metadata, status history and the activity log are a soft boundary:
// they run detached after commit and their failures are logged, never
// surfaced.
func HandleCreate(db *sqlx.DB, bg *background.Background) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var pn PaymentNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding payment: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		ord, err := order.Fetch(ctx, db, pn.OrderID)
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if ord.UserID != clm.UserID && !claims.IsStaff(ctx) {
			return weberr.Forbidden(errors.New("order belongs to another user"))
		}

		if _, err := FetchCompletedByOrder(ctx, db, ord.ID); err == nil {
			return weberr.Unprocessable(errors.New("order is already paid"))
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		// An explicit amount is an admin override; everyone else pays the
		// sum of the order's items.
		amount := pn.Amount
		if amount <= 0 || !claims.IsStaff(ctx) {
			items, err := order.FetchItems(ctx, db, ord.ID)
			if err != nil {
				return err
			}
			amount = order.Total(items)
		}

		now := time.Now().UTC()

		ref := pn.Reference
		if ref == "" {
			ref = Reference(pn.Method, ord.ID, now)
		}

		pay := Payment{
			ID:        validate.GenerateID(),
			OrderID:   ord.ID,
			Method:    pn.Method,
			Status:    StatusFor(pn.Method),
			Amount:    amount,
			Reference: ref,
			CreatedAt: now,
		}

		if pn.CardNumber != "" {
			last4 := pn.CardNumber[len(pn.CardNumber)-4:]
			pay.CardLast4 = &last4
		}
		if pn.CardBrand != "" {
			brand := pn.CardBrand
			pay.CardBrand = &brand
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := Create(ctx, tx, pay); err != nil {
				return err
			}

			if pay.Status == Completed {
				if err := order.UpdateStatus(ctx, tx, ord.ID, order.Completed); err != nil {
					return fmt.Errorf("completing order: %w", err)
				}
			}

			if err := pickup.AttachPayment(ctx, tx, ord.ID, pay.ID); err != nil {
				return err
			}

			return nil
		})

		if err != nil {
			return fmt.Errorf("recording payment for order[%s]: %w", ord.ID, err)
		}

		bg.Go("payment-history", func() error {
			h := History{
				PaymentID: pay.ID,
				Status:    pay.Status,
				Note:      "payment recorded via " + string(pay.Method),
				CreatedAt: time.Now().UTC(),
			}
			return CreateHistory(context.Background(), db, h)
		})

		if pay.CardLast4 != nil {
			bg.Go("saved-method", func() error {
				sm := SavedMethod{
					ID:        validate.GenerateID(),
					UserID:    ord.UserID,
					Method:    pay.Method,
					CardLast4: pay.CardLast4,
					CardBrand: pay.CardBrand,
					CreatedAt: time.Now().UTC(),
				}
				return CreateSavedMethod(context.Background(), db, sm)
			})
		}

		bg.Go("activity", activity.Record(db, clm.UserID, "payment_recorded", pay.Reference))

		return web.Respond(ctx, w, pay, http.StatusCreated)
	}
}

// HandlePing reports liveness, including the state of the db connection.
func HandlePing(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		status := "ok"
		code := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			status = "db unreachable"
			code = http.StatusInternalServerError
		}

		body := struct {
			Status string `json:"status"`
		}{status}

		return web.Respond(ctx, w, body, code)
	}
}
