package barangay

import (
	"context"
	"net/http"

	"github.com/jbalanon/anihan-market/api/web"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		barangays, err := List(ctx, db)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, barangays, http.StatusOK)
	}
}
