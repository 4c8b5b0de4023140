package controllers

import (
	"time"

	"github.com/thanhvudev/furnimart/app/repositories"
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
)

// AdminOrderController is the back-office order surface: listing, detail
// with the audit trail, and status transitions.
type AdminOrderController struct {
	orders *repositories.OrderRepository
	status *services.OrderStatusService
	users  *services.UserService
}

// NewAdminOrderController wires the admin order endpoints.
func NewAdminOrderController(orders *repositories.OrderRepository, status *services.OrderStatusService, users *services.UserService) *AdminOrderController {
	return &AdminOrderController{orders: orders, status: status, users: users}
}

// Index lists orders, optionally filtered by ?status= and an order-date
// range ?from=YYYY-MM-DD&to=YYYY-MM-DD (inclusive).
func (oc *AdminOrderController) Index(c *ctx.Context) {
	page, perPage := pageQuery(c)
	filter := repositories.OrderFilter{Status: c.Query("status")}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		filter.From = from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		filter.To = to
	}

	orders, pagination, err := oc.orders.Paginate(filter, page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]interface{}{"items": orders, "pagination": pagination})
}

// Show returns one order including its status history.
func (oc *AdminOrderController) Show(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	order, err := oc.orders.FindWithLog(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// UpdateStatus moves an order through the state machine as the signed-in
// admin.
func (oc *AdminOrderController) UpdateStatus(c *ctx.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.status.Transition(id, in.Status, adminID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}
