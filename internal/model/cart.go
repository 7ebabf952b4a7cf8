package model

import "time"

// CartLine is a stored pending-purchase line, persisted under the "cart"
// key. ProductID references a catalog entry; quantity accumulates on
// repeated adds of the same product.
type CartLine struct {
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartLineView is a cart line joined against the current catalog. Subtotal
// is product price times quantity. Lines whose product no longer exists are
// not materialized into views.
type CartLineView struct {
	CartLine
	Product  Product `json:"product"`
	Subtotal float64 `json:"subtotal"`
}
