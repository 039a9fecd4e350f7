package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jbalanon/anihan-market/api/web"
	"github.com/jbalanon/anihan-market/api/weberr"
	"github.com/jbalanon/anihan-market/validate"
	"github.com/jmoiron/sqlx"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// HandleList serves the paginated market listing with optional category,
// search and availability filters.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		page := web.QueryInt(r, "page", 1)
		if page < 1 {
			page = 1
		}

		perPage := web.QueryInt(r, "per_page", defaultPerPage)
		if perPage < 1 || perPage > maxPerPage {
			perPage = defaultPerPage
		}

		f := Filter{
			CategoryID: web.Query(r, "category"),
			Search:     web.Query(r, "search"),
		}

		if s := web.Query(r, "available"); s != "" {
			avail, err := strconv.ParseBool(s)
			if err != nil {
				return weberr.BadRequest(fmt.Errorf("parsing available flag: %w", err))
			}
			f.Available = avail
		}

		if f.CategoryID != "" {
			if err := validate.CheckID(f.CategoryID); err != nil {
				return weberr.NewError(err, err.Error(), http.StatusBadRequest)
			}
		}

		pg, err := List(ctx, db, f, page, perPage)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, pg, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, prd, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn ProductNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding product: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		now := time.Now().UTC()
		prd := Product{
			ID:          validate.GenerateID(),
			Name:        pn.Name,
			Description: pn.Description,
			CategoryID:  pn.CategoryID,
			BarangayID:  pn.BarangayID,
			Season:      pn.Season,
			Farmer:      pn.Farmer,
			Price:       pn.Price,
			Stock:       pn.Stock,
			CreatedAt:   now,
			UpdatedAt:   now,
			Version:     1,
		}

		if err := Create(ctx, db, prd); err != nil {
			return err
		}

		return web.Respond(ctx, w, prd, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var up ProductUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding product update: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if up.Name != nil {
			prd.Name = *up.Name
		}
		if up.Description != nil {
			prd.Description = *up.Description
		}
		if up.CategoryID != nil {
			prd.CategoryID = *up.CategoryID
		}
		if up.BarangayID != nil {
			prd.BarangayID = *up.BarangayID
		}
		if up.Season != nil {
			prd.Season = *up.Season
		}
		if up.Farmer != nil {
			prd.Farmer = *up.Farmer
		}
		if up.Price != nil {
			prd.Price = *up.Price
		}
		if up.Stock != nil {
			prd.Stock = *up.Stock
		}
		prd.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, prd); err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		prd.Version++
		return web.Respond(ctx, w, prd, http.StatusOK)
	}
}

func HandleListCategories(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		categories, err := ListCategories(ctx, db)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, categories, http.StatusOK)
	}
}
