package models

// CartItem is one line of the session cart, keyed by product ID. Price, name
// and image are display snapshots only; checkout always re-reads the live
// product record and charges the current price.
type CartItem struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Name     string  `json:"name"`
	Image    string  `json:"image,omitempty"`
}

// Cart maps product ID to its line.
type Cart map[uint]CartItem

// Subtotal sums quantity × snapshot price across all lines.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

// TotalQuantity sums the quantities across all lines.
func (c Cart) TotalQuantity() int {
	var n int
	for _, item := range c {
		n += item.Quantity
	}
	return n
}

// Delivery is the address block captured before checkout. It lives in the
// session until the order is placed and is never synced to the user profile.
type Delivery struct {
	UserName string `json:"user_name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone_number" validate:"required,max=20"`
	Country  string `json:"country" validate:"required,max=255"`
	City     string `json:"city" validate:"required,max=255"`
	District string `json:"district" validate:"required,max=255"`
	Ward     string `json:"ward" validate:"nullable"`
}
