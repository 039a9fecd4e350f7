package dashboard

import (
	"context"
	"net/http"
	"sort"

	"github.com/jbalanon/anihan-market/api/web"
	"github.com/jbalanon/anihan-market/cache"
	"github.com/jbalanon/anihan-market/core/order"
	"github.com/jbalanon/anihan-market/core/payment"
	"github.com/jbalanon/anihan-market/core/product"
	"github.com/jbalanon/anihan-market/core/user"
	"github.com/jmoiron/sqlx"
)

type queryFn func(context.Context, sqlx.ExtContext) (Chart, error)

func handleChart(db *sqlx.DB, fn queryFn) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ch, err := fn(ctx, db)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, ch, http.StatusOK)
	}
}

func HandleOrdersByStatus(db *sqlx.DB) web.Handler { return handleChart(db, OrdersByStatus) }

func HandlePickupsByStatus(db *sqlx.DB) web.Handler { return handleChart(db, PickupsByStatus) }

func HandleStockByBarangay(db *sqlx.DB) web.Handler { return handleChart(db, StockByBarangay) }

func HandleStockByCategory(db *sqlx.DB) web.Handler { return handleChart(db, StockByCategory) }

func HandleStockBySeason(db *sqlx.DB) web.Handler { return handleChart(db, StockBySeason) }

func HandleMonthlySales(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		byMonth, err := payment.MonthlyRevenue(ctx, db)
		if err != nil {
			return err
		}

		months := make([]string, 0, len(byMonth))
		for m := range byMonth {
			months = append(months, m)
		}
		sort.Strings(months)

		ch := Chart{Labels: []string{}, Values: []float64{}}
		for _, m := range months {
			ch.Labels = append(ch.Labels, m)
			ch.Values = append(ch.Values, byMonth[m])
		}

		return web.Respond(ctx, w, ch, http.StatusOK)
	}
}

const summaryKey = "dashboard:summary"

// HandleSummary serves the totals card. The result is cached for the
// configured TTL since it backs the admin landing table.
func HandleSummary(db *sqlx.DB, c *cache.Cache) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if v, ok := c.Get(summaryKey); ok {
			return web.Respond(ctx, w, v.(Summary), http.StatusOK)
		}

		var s Summary
		var err error

		if s.Users, err = user.Count(ctx, db); err != nil {
			return err
		}
		if s.Products, err = product.Count(ctx, db); err != nil {
			return err
		}
		if s.Orders, err = order.Count(ctx, db); err != nil {
			return err
		}
		if s.Revenue, err = payment.TotalRevenue(ctx, db); err != nil {
			return err
		}

		c.Set(summaryKey, s)
		return web.Respond(ctx, w, s, http.StatusOK)
	}
}
