package controllers

import (
	"net/http"

	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
	"github.com/thanhvudev/furnimart/pkg/session"
)

// CartController manages the session cart and the checkout flow. The cart
// and the captured delivery block live in the session until checkout
// commits, at which point both are cleared.
type CartController struct {
	cart     *services.CartService
	checkout *services.CheckoutService
	users    *services.UserService
}

// NewCartController wires the cart endpoints.
func NewCartController(cart *services.CartService, checkout *services.CheckoutService, users *services.UserService) *CartController {
	return &CartController{cart: cart, checkout: checkout, users: users}
}

// Show returns the cart with its shipping quote.
func (cc *CartController) Show(c *ctx.Context) {
	sess := session.FromCtx(c.R)
	c.Success(cc.cart.Summarize(sessionCart(sess)))
}

// Add puts a product into the cart.
func (cc *CartController) Add(c *ctx.Context) {
	var in struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity" validate:"required,min=1"`
	}
	if !c.BindJSON(&in) {
		return
	}

	sess := session.FromCtx(c.R)
	cart, err := cc.cart.Add(sessionCart(sess), in.ProductID, in.Quantity)
	if err != nil {
		fail(c, err)
		return
	}

	saveCart(c, sess, cart)
	c.Success(cc.cart.Summarize(cart))
}

// Update sets a cart line's quantity; zero removes the line.
func (cc *CartController) Update(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var in struct {
		Quantity int `json:"quantity"`
	}
	if !c.BindJSON(&in) {
		return
	}

	sess := session.FromCtx(c.R)
	cart, err := cc.cart.Update(sessionCart(sess), id, in.Quantity)
	if err != nil {
		fail(c, err)
		return
	}

	saveCart(c, sess, cart)
	c.Success(cc.cart.Summarize(cart))
}

// Remove drops a line from the cart.
func (cc *CartController) Remove(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	sess := session.FromCtx(c.R)
	cart := cc.cart.Remove(sessionCart(sess), id)

	saveCart(c, sess, cart)
	c.Success(cc.cart.Summarize(cart))
}

// SetDelivery captures the delivery block ahead of checkout.
func (cc *CartController) SetDelivery(c *ctx.Context) {
	var in models.Delivery
	if !c.BindJSON(&in) {
		return
	}

	sess := session.FromCtx(c.R)
	sess.Set(sessionDeliveryKey, in)
	sess.Save(c.W) //nolint:errcheck

	c.Success(map[string]string{"message": "Delivery details saved."})
}

// Checkout places the order from the session cart. Requires the delivery
// step to have run first. On success both cart and delivery state are
// cleared from the session.
func (cc *CartController) Checkout(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := cc.users.Get(userID)
	if err != nil {
		fail(c, err)
		return
	}

	sess := session.FromCtx(c.R)
	cart := sessionCart(sess)
	delivery, ok := sessionDelivery(sess)
	if !ok {
		c.Error(http.StatusBadRequest, "Please provide delivery details before checking out.")
		return
	}

	order, err := cc.checkout.PlaceOrder(user, cart, delivery)
	if err != nil {
		fail(c, err)
		return
	}

	sess.Delete(sessionCartKey)
	sess.Delete(sessionDeliveryKey)
	sess.Save(c.W) //nolint:errcheck

	c.Created(map[string]interface{}{"order_id": order.OrderID, "order": order})
}
