package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/jbalanon/anihan-market/api/background"
	"github.com/jbalanon/anihan-market/api/middleware"
	"github.com/jbalanon/anihan-market/api/web"
	"github.com/jbalanon/anihan-market/cache"
	"github.com/jbalanon/anihan-market/core/auth"
	"github.com/jbalanon/anihan-market/core/barangay"
	"github.com/jbalanon/anihan-market/core/dashboard"
	"github.com/jbalanon/anihan-market/core/order"
	"github.com/jbalanon/anihan-market/core/payment"
	"github.com/jbalanon/anihan-market/core/pickup"
	"github.com/jbalanon/anihan-market/core/product"
	"github.com/jbalanon/anihan-market/core/user"
	"github.com/jbalanon/anihan-market/rate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Session    *scs.SessionManager
	Background *background.Background
	Limiter    *rate.Limiter
	DashCache  *cache.Cache
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session)
	staff := auth.Staff(cfg.Session)
	reporter := auth.Reporter(cfg.Session)

	a.Handle(http.MethodPost, "/auth/register", auth.HandleRegister(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)

	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.DB), staff)
	a.Handle(http.MethodPut, "/products/{id}", product.HandleUpdate(cfg.DB), staff)

	a.Handle(http.MethodGet, "/categories", product.HandleListCategories(cfg.DB))
	a.Handle(http.MethodGet, "/barangays", barangay.HandleList(cfg.DB))

	a.Handle(http.MethodPost, "/orders", order.HandleCreate(cfg.DB, cfg.Background), authen)
	a.Handle(http.MethodGet, "/orders", order.HandleList(cfg.DB), authen)
	a.Handle(http.MethodGet, "/orders/{id}", order.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodPut, "/orders/{id}/status", order.HandleUpdateStatus(cfg.DB, cfg.Background), staff)
	a.Handle(http.MethodPut, "/orders/{order_id}/pickup", pickup.HandleSchedule(cfg.DB), authen)

	a.Handle(http.MethodGet, "/pickups", pickup.HandleList(cfg.DB), authen)
	a.Handle(http.MethodGet, "/pickups/{id}", pickup.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodPut, "/pickups/{id}/status", pickup.HandleUpdateStatus(cfg.DB, cfg.Background), staff)

	a.Handle(http.MethodPost, "/payments", payment.HandleCreate(cfg.DB, cfg.Background), authen)
	a.Handle(http.MethodGet, "/health", payment.HandlePing(cfg.DB))

	a.Handle(http.MethodGet, "/dashboard/orders/status", dashboard.HandleOrdersByStatus(cfg.DB), reporter)
	a.Handle(http.MethodGet, "/dashboard/pickups/status", dashboard.HandlePickupsByStatus(cfg.DB), reporter)
	a.Handle(http.MethodGet, "/dashboard/products/barangay", dashboard.HandleStockByBarangay(cfg.DB), reporter)
	a.Handle(http.MethodGet, "/dashboard/products/category", dashboard.HandleStockByCategory(cfg.DB), reporter)
	a.Handle(http.MethodGet, "/dashboard/products/season", dashboard.HandleStockBySeason(cfg.DB), reporter)
	a.Handle(http.MethodGet, "/dashboard/sales/monthly", dashboard.HandleMonthlySales(cfg.DB), reporter)
	a.Handle(http.MethodGet, "/dashboard/summary", dashboard.HandleSummary(cfg.DB, cfg.DashCache), reporter)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
