// Package events names the domain events the application emits and the
// payloads they carry. Listeners are registered at boot in internal/server.
package events

// Event names.
const (
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status_changed"
	UserRegistered     = "user.registered"
)

// OrderPlacedPayload is emitted after a checkout commits.
type OrderPlacedPayload struct {
	OrderID    uint    `json:"order_id"`
	CustomerID uint    `json:"customer_id"`
	Email      string  `json:"email"`
	Total      float64 `json:"total"`
	Items      int     `json:"items"`
}

// UserRegisteredPayload is emitted after a new account is created.
type UserRegisteredPayload struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
