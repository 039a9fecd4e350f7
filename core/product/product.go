package product

import "time"

type Season string

const (
	SeasonDry       Season = "dry"
	SeasonWet       Season = "wet"
	SeasonYearRound Season = "year_round"
)

type Product struct {
	ID          string    `json:"id" db:"product_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CategoryID  string    `json:"categoryId" db:"category_id"`
	BarangayID  string    `json:"barangayId" db:"barangay_id"`
	Season      Season    `json:"season" db:"season"`
	Farmer      string    `json:"farmer" db:"farmer"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	Version     int       `json:"-" db:"version"`
}

type ProductNew struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	CategoryID  string  `json:"categoryId" validate:"required,uuid4"`
	BarangayID  string  `json:"barangayId" validate:"required,uuid4"`
	Season      Season  `json:"season" validate:"required,oneof=dry wet year_round"`
	Farmer      string  `json:"farmer"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type ProductUp struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"categoryId" validate:"omitempty,uuid4"`
	BarangayID  *string  `json:"barangayId" validate:"omitempty,uuid4"`
	Season      *Season  `json:"season" validate:"omitempty,oneof=dry wet year_round"`
	Farmer      *string  `json:"farmer"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock"`
}

type Category struct {
	ID   string `json:"id" db:"category_id"`
	Name string `json:"name" db:"name"`
}

// Filter narrows the market listing.
type Filter struct {
	CategoryID string
	Search     string
	Available  bool
}

type Page struct {
	Items   []Product `json:"items"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"perPage"`
}
