package payment

import "time"

type Method string

const (
	CreditCard   Method = "credit_card"
	Paypal       Method = "paypal"
	BankTransfer Method = "bank_transfer"
	CashOnPickup Method = "cash_on_pickup"
)

type Status string

const (
	Pending   Status = "pending"
	Completed Status = "completed"
)

type Payment struct {
	ID        string    `json:"id" db:"payment_id"`
	OrderID   string    `json:"orderId" db:"order_id"`
	Method    Method    `json:"method" db:"method"`
	Status    Status    `json:"status" db:"status"`
	Amount    float64   `json:"amount" db:"amount"`
	Reference string    `json:"reference" db:"reference"`
	CardLast4 *string   `json:"cardLast4,omitempty" db:"card_last4"`
	CardBrand *string   `json:"cardBrand,omitempty" db:"card_brand"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type PaymentNew struct {
	OrderID    string  `json:"orderId" validate:"required,uuid4"`
	Method     Method  `json:"method" validate:"required,oneof=credit_card paypal bank_transfer cash_on_pickup"`
	Amount     float64 `json:"amount" validate:"omitempty,gte=0"`
	Reference  string  `json:"reference"`
	CardNumber string  `json:"cardNumber" validate:"omitempty,min=12,max=19,numeric"`
	CardBrand  string  `json:"cardBrand"`
}

// SavedMethod is the card metadata kept for later checkouts. Only the last
// four digits ever reach storage.
type SavedMethod struct {
	ID        string    `json:"id" db:"payment_method_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Method    Method    `json:"method" db:"method"`
	CardLast4 *string   `json:"cardLast4" db:"card_last4"`
	CardBrand *string   `json:"cardBrand" db:"card_brand"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type History struct {
	PaymentID string    `db:"payment_id"`
	Status    Status    `db:"status"`
	Note      string    `db:"note"`
	CreatedAt time.Time `db:"created_at"`
}
