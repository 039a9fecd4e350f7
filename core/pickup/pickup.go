package pickup

import "time"

// DefaultLocation is where an order waits when the consumer has not picked a
// spot yet.
const DefaultLocation = "Market pickup point"

type Pickup struct {
	ID          string     `json:"id" db:"pickup_id"`
	OrderID     string     `json:"orderId" db:"order_id"`
	Status      Status     `json:"status" db:"status"`
	ScheduledAt *time.Time `json:"scheduledAt" db:"scheduled_at"`
	Location    string     `json:"location" db:"location"`
	HandlerID   *string    `json:"handlerId" db:"handler_id"`
	PaymentID   *string    `json:"paymentId" db:"payment_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Schedule is the create-or-update payload keyed on the order.
type Schedule struct {
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	HandlerID   *string   `json:"handlerId" validate:"omitempty,uuid4"`
}

type StatusUp struct {
	Status Status `json:"status" validate:"required,oneof=pending assigned ready in_transit completed canceled"`
}
