package order

import "time"

type Order struct {
	ID            string    `json:"id" db:"order_id"`
	UserID        string    `json:"userId" db:"user_id"`
	Status        Status    `json:"status" db:"status"`
	PickupDetails string    `json:"pickupDetails" db:"pickup_details"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	Items         []Item    `json:"items,omitempty" db:"-"`
}

// Item is a line of an order. The price is a snapshot of the product's price
// at order time and never changes afterwards.
type Item struct {
	OrderID   string    `json:"orderId" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type OrderNew struct {
	Items         []ItemNew `json:"items" validate:"required,min=1,dive"`
	PickupDetails string    `json:"pickupDetails"`
}

type ItemNew struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type StatusUp struct {
	Status Status `json:"status" validate:"required,oneof=pending completed canceled"`
}

// Total sums price times quantity over the order's items.
func Total(items []Item) float64 {
	var tot float64
	for _, it := range items {
		tot += it.Price * float64(it.Quantity)
	}
	return tot
}
