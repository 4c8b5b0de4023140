package controllers

import (
	"github.com/thanhvudev/furnimart/app/repositories"
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
)

// OrderController serves a customer's own orders.
type OrderController struct {
	orders *repositories.OrderRepository
	status *services.OrderStatusService
}

// NewOrderController wires the customer order endpoints.
func NewOrderController(orders *repositories.OrderRepository, status *services.OrderStatusService) *OrderController {
	return &OrderController{orders: orders, status: status}
}

// Index lists the authenticated customer's orders.
func (oc *OrderController) Index(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := oc.orders.ForCustomer(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// Show returns one of the customer's orders. Someone else's order is a 404,
// never a 403, so order IDs cannot be probed.
func (oc *OrderController) Show(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	order, err := oc.orders.Find(id)
	if err != nil {
		fail(c, err)
		return
	}
	if order.CustomerID != userID {
		c.NotFound("order not found")
		return
	}
	c.Success(order)
}

// Cancel is the customer path to the cancelled state.
func (oc *OrderController) Cancel(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	order, err := oc.status.Cancel(id, userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}
