package user

import (
	"time"

	"github.com/jbalanon/anihan-market/core/claims"
)

type User struct {
	ID           string      `json:"id" db:"user_id"`
	FirstName    string      `json:"firstName" db:"first_name"`
	LastName     string      `json:"lastName" db:"last_name"`
	Email        string      `json:"email" db:"email"`
	Role         claims.Role `json:"role" db:"role"`
	BarangayID   *string     `json:"barangayId" db:"barangay_id"`
	PasswordHash []byte      `json:"-" db:"password_hash"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}

type UserNew struct {
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	BarangayID *string `json:"barangayId" validate:"omitempty,uuid4"`
}
