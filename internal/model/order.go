package model

import "time"

// OrderStatusPending is the status every order starts in. Orders are never
// mutated after checkout.
const OrderStatusPending = "pending"

// Order is a persisted purchase record under the "orders" key. Items is an
// immutable snapshot of the cart at checkout time, not a live join.
type Order struct {
	ID        int64          `json:"id"`
	UserID    int            `json:"userId"`
	Items     []CartLineView `json:"items"`
	Total     float64        `json:"total"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"date"`
}
