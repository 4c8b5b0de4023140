package services

import (
	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
)

// cartProductStore is the slice of ProductRepository the cart needs.
type cartProductStore interface {
	Find(id uint) (*models.Product, error)
}

// CartSummary is the cart plus its shipping quote, ready for rendering.
type CartSummary struct {
	Items        models.Cart `json:"items"`
	Quantity     int         `json:"quantity"`
	Subtotal     float64     `json:"subtotal"`
	ShippingFee  float64     `json:"shipping_fee"`
	Total        float64     `json:"total"`
	Tier         string      `json:"tier"`
	AmountToFree *float64    `json:"amount_to_free_shipping"`
}

// CartService mutates the session cart. The cart itself lives in the session
// store; this service only validates lines against the live catalog and
// returns the updated value for the caller to persist.
type CartService struct {
	products cartProductStore
	shipping *ShippingService
}

// NewCartService wires the cart to the catalog.
func NewCartService(products cartProductStore, shipping *ShippingService) *CartService {
	return &CartService{products: products, shipping: shipping}
}

// Add puts qty units of productID into cart, stacking onto an existing line.
func (s *CartService) Add(cart models.Cart, productID uint, qty int) (models.Cart, error) {
	if qty <= 0 {
		return cart, apperr.ValidationField("quantity", "Quantity must be at least 1.")
	}

	product, err := s.products.Find(productID)
	if err != nil {
		return cart, err
	}

	line := cart[productID]
	line.Quantity += qty
	line.Price = product.Price
	line.Name = product.Name
	line.Image = product.Image

	if product.TracksStock() && *product.Stock < line.Quantity {
		return cart, apperr.BusinessRule("Not enough stock for %s: %d left.", product.Name, *product.Stock)
	}

	cart[productID] = line
	return cart, nil
}

// Update sets a line's quantity outright. Zero or less removes the line.
func (s *CartService) Update(cart models.Cart, productID uint, qty int) (models.Cart, error) {
	if _, ok := cart[productID]; !ok {
		return cart, apperr.NotFound("cart item")
	}
	if qty <= 0 {
		delete(cart, productID)
		return cart, nil
	}

	product, err := s.products.Find(productID)
	if err != nil {
		return cart, err
	}
	if product.TracksStock() && *product.Stock < qty {
		return cart, apperr.BusinessRule("Not enough stock for %s: %d left.", product.Name, *product.Stock)
	}

	line := cart[productID]
	line.Quantity = qty
	line.Price = product.Price
	cart[productID] = line
	return cart, nil
}

// Remove drops a line from the cart. Removing an absent line is a no-op.
func (s *CartService) Remove(cart models.Cart, productID uint) models.Cart {
	delete(cart, productID)
	return cart
}

// Summarize prices the cart at its snapshot prices and attaches the
// shipping quote.
func (s *CartService) Summarize(cart models.Cart) CartSummary {
	subtotal := cart.Subtotal()
	info := s.shipping.Info(subtotal)
	return CartSummary{
		Items:        cart,
		Quantity:     cart.TotalQuantity(),
		Subtotal:     subtotal,
		ShippingFee:  info.Fee,
		Total:        info.Total,
		Tier:         info.Tier,
		AmountToFree: s.shipping.AmountToFreeShipping(subtotal),
	}
}
