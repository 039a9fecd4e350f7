package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("product not found")

func Create(ctx context.Context, db sqlx.ExtContext, prd Product) error {
	const q = `
	INSERT INTO products (product_id, name, description, category_id, barangay_id, season, farmer, price, stock, created_at, updated_at, version)
	VALUES (:product_id, :name, :description, :category_id, :barangay_id, :season, :farmer, :price, :stock, :created_at, :updated_at, :version)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prd); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func Update(ctx context.Context, db sqlx.ExtContext, prd Product) error {
	const q = `
	UPDATE products SET
		name = :name,
		description = :description,
		category_id = :category_id,
		barangay_id = :barangay_id,
		season = :season,
		farmer = :farmer,
		price = :price,
		stock = :stock,
		updated_at = :updated_at,
		version = :version + 1
	WHERE product_id = :product_id AND version = :version`

	res, err := sqlx.NamedExecContext(ctx, db, q, prd)
	if err != nil {
		return fmt.Errorf("updating product[%s]: %w", prd.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`

	var prd Product
	if err := sqlx.GetContext(ctx, db, &prd, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("selecting product[%s]: %w", id, err)
	}

	return prd, nil
}

// DecrementStock subtracts qty from the product's stock in a single atomic
// statement. Stock is allowed to go negative.
func DecrementStock(ctx context.Context, db sqlx.ExtContext, id string, qty int) error {
	const q = `UPDATE products SET stock = stock - $2, updated_at = $3 WHERE product_id = $1`

	res, err := db.ExecContext(ctx, q, id, qty, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("decrementing stock of product[%s]: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

// RestoreStock adds qty back, used when an order is canceled.
func RestoreStock(ctx context.Context, db sqlx.ExtContext, id string, qty int) error {
	const q = `UPDATE products SET stock = stock + $2, updated_at = $3 WHERE product_id = $1`

	if _, err := db.ExecContext(ctx, q, id, qty, time.Now().UTC()); err != nil {
		return fmt.Errorf("restoring stock of product[%s]: %w", id, err)
	}

	return nil
}

func List(ctx context.Context, db sqlx.ExtContext, f Filter, page int, perPage int) (Page, error) {
	where := []string{"TRUE"}
	args := map[string]interface{}{
		"limit":  perPage,
		"offset": (page - 1) * perPage,
	}

	if f.CategoryID != "" {
		where = append(where, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}

	if f.Search != "" {
		where = append(where, "name ILIKE :search")
		args["search"] = "%" + f.Search + "%"
	}

	if f.Available {
		where = append(where, "stock > 0")
	}

	cond := strings.Join(where, " AND ")

	count := `SELECT COUNT(*) FROM products WHERE ` + cond

	rows, err := sqlx.NamedQueryContext(ctx, db, count, args)
	if err != nil {
		return Page{}, fmt.Errorf("counting products: %w", err)
	}
	defer rows.Close()

	var total int
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return Page{}, fmt.Errorf("scanning product count: %w", err)
		}
	}

	sel := `SELECT * FROM products WHERE ` + cond + ` ORDER BY name LIMIT :limit OFFSET :offset`

	prows, err := sqlx.NamedQueryContext(ctx, db, sel, args)
	if err != nil {
		return Page{}, fmt.Errorf("selecting products: %w", err)
	}
	defer prows.Close()

	items := []Product{}
	for prows.Next() {
		var prd Product
		if err := prows.StructScan(&prd); err != nil {
			return Page{}, fmt.Errorf("scanning product: %w", err)
		}
		items = append(items, prd)
	}

	return Page{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

func ListCategories(ctx context.Context, db sqlx.ExtContext) ([]Category, error) {
	const q = `SELECT * FROM categories ORDER BY name`

	categories := []Category{}
	if err := sqlx.SelectContext(ctx, db, &categories, q); err != nil {
		return nil, fmt.Errorf("selecting categories: %w", err)
	}

	return categories, nil
}

func Count(ctx context.Context, db sqlx.ExtContext) (int, error) {
	const q = `SELECT COUNT(*) FROM products`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}

	return n, nil
}
