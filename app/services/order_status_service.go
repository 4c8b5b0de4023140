package services

import (
	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/events"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/event"
	"github.com/thanhvudev/furnimart/pkg/orm"
)

// orderStatusStore is the slice of OrderRepository the status machine needs.
type orderStatusStore interface {
	Find(id uint) (*models.Order, error)
	UpdateStatus(tx *orm.Query, orderID uint, status string) (int64, error)
	AppendStatusLog(tx *orm.Query, orderID, adminID uint, action string) error
}

// transitions is the admin-side state machine. Absent states are terminal.
var transitions = map[string][]string{
	models.StatusPending:    {models.StatusApproved, models.StatusRejected},
	models.StatusApproved:   {models.StatusDelivering},
	models.StatusDelivering: {models.StatusDelivered},
}

// transitionHints explains, per current state, what an admin may do next.
var transitionHints = map[string]string{
	models.StatusPending:    "From Pending status, you can only approve or reject the order.",
	models.StatusApproved:   "From Approved status, you can only move the order to delivering.",
	models.StatusDelivering: "From Delivering status, you can only mark the order as delivered.",
	models.StatusRejected:   "A rejected order cannot change status.",
	models.StatusDelivered:  "A delivered order cannot change status.",
	models.StatusCancelled:  "A cancelled order cannot change status.",
}

// OrderStatusService moves orders through their lifecycle on behalf of an
// admin, recording every real transition in the audit log.
type OrderStatusService struct {
	orders  orderStatusStore
	uow     orm.UnitOfWork
	publish func(name string, payload interface{})
}

// NewOrderStatusService wires the status machine to its store.
func NewOrderStatusService(orders orderStatusStore, uow orm.UnitOfWork) *OrderStatusService {
	return &OrderStatusService{orders: orders, uow: uow, publish: event.FireAsync}
}

// Transition moves order orderID to status as adminID. Requesting the order's
// current status is an accepted no-op: no audit row, no error. A real move
// updates the row and appends one audit entry in a single transaction.
func (s *OrderStatusService) Transition(orderID uint, status string, adminID uint) (*models.Order, error) {
	if !isAdminStatus(status) {
		return nil, apperr.ValidationField("status", "Unknown order status.")
	}

	order, err := s.orders.Find(orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == status {
		return order, nil
	}

	if !canTransition(order.Status, status) {
		return nil, apperr.BusinessRule("%s", hintFor(order.Status))
	}

	err = s.uow.Transaction(func(tx *orm.Query) error {
		if _, err := s.orders.UpdateStatus(tx, orderID, status); err != nil {
			return err
		}
		return s.orders.AppendStatusLog(tx, orderID, adminID, status)
	})
	if err != nil {
		return nil, err
	}

	order.Status = status
	if s.publish != nil {
		s.publish(events.OrderStatusChanged, map[string]interface{}{
			"order_id": orderID,
			"status":   status,
			"admin_id": adminID,
		})
	}
	return order, nil
}

// Cancel is the customer-initiated path to the cancelled state. Only the
// order's owner may cancel, and only while the order is still pending. No
// audit row is written; the audit trail tracks admin actions.
func (s *OrderStatusService) Cancel(orderID, customerID uint) (*models.Order, error) {
	order, err := s.orders.Find(orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, apperr.NotFound("order")
	}
	if order.Status == models.StatusCancelled {
		return order, nil
	}
	if order.Status != models.StatusPending {
		return nil, apperr.BusinessRule("Only pending orders can be cancelled.")
	}

	err = s.uow.Transaction(func(tx *orm.Query) error {
		_, err := s.orders.UpdateStatus(tx, orderID, models.StatusCancelled)
		return err
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.StatusCancelled
	if s.publish != nil {
		s.publish(events.OrderStatusChanged, map[string]interface{}{
			"order_id": orderID,
			"status":   models.StatusCancelled,
		})
	}
	return order, nil
}

func isAdminStatus(status string) bool {
	for _, s := range models.AdminStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func canTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func hintFor(status string) string {
	if hint, ok := transitionHints[status]; ok {
		return hint
	}
	return "The order's current status does not allow this change."
}
