package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
)

func statusFixture(status string) (*OrderStatusService, *fakeOrderStore, *fakeUnitOfWork) {
	orders := newFakeOrderStore()
	orders.orders[1] = &models.Order{OrderID: 1, CustomerID: 42, Status: status}
	uow := &fakeUnitOfWork{}

	svc := NewOrderStatusService(orders, uow)
	svc.publish = nil
	return svc, orders, uow
}

func TestTransitionPendingToApproved(t *testing.T) {
	svc, orders, _ := statusFixture(models.StatusPending)

	order, err := svc.Transition(1, models.StatusApproved, 5)
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, order.Status)
	assert.Equal(t, []string{models.StatusApproved}, orders.statusUpdates)

	require.Len(t, orders.auditLog, 1)
	entry := orders.auditLog[0]
	assert.Equal(t, uint(1), entry.OrderID)
	assert.Equal(t, uint(5), entry.AdminID)
	assert.Equal(t, models.StatusApproved, entry.ActionType)
}

func TestTransitionSkippingAStateIsRejected(t *testing.T) {
	svc, orders, uow := statusFixture(models.StatusPending)

	_, err := svc.Transition(1, models.StatusDelivering, 5)

	require.Error(t, err)
	assert.True(t, apperr.IsBusinessRule(err))
	assert.Contains(t, err.Error(), "Pending")
	assert.Empty(t, orders.statusUpdates)
	assert.Zero(t, uow.began)
}

func TestTransitionFromTerminalStates(t *testing.T) {
	for _, terminal := range []string{models.StatusDelivered, models.StatusRejected, models.StatusCancelled} {
		svc, orders, _ := statusFixture(terminal)

		for _, target := range models.AdminStatuses {
			if target == terminal {
				continue
			}
			_, err := svc.Transition(1, target, 5)
			assert.True(t, apperr.IsBusinessRule(err), "%s -> %s must be rejected", terminal, target)
		}
		assert.Empty(t, orders.auditLog)
	}
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	svc, orders, uow := statusFixture(models.StatusApproved)

	order, err := svc.Transition(1, models.StatusApproved, 5)
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, order.Status)
	assert.Empty(t, orders.auditLog)
	assert.Empty(t, orders.statusUpdates)
	assert.Zero(t, uow.began)
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc, _, _ := statusFixture(models.StatusPending)

	_, err := svc.Transition(1, "shipped", 5)
	_, ok := apperr.AsValidation(err)
	assert.True(t, ok)
}

func TestTransitionFullLifecycle(t *testing.T) {
	svc, orders, _ := statusFixture(models.StatusPending)

	for _, next := range []string{models.StatusApproved, models.StatusDelivering, models.StatusDelivered} {
		_, err := svc.Transition(1, next, 5)
		require.NoError(t, err, "to %s", next)
	}

	assert.Equal(t, []string{
		models.StatusApproved, models.StatusDelivering, models.StatusDelivered,
	}, orders.statusUpdates)
	assert.Len(t, orders.auditLog, 3)
}

func TestCancelOwnPendingOrder(t *testing.T) {
	svc, orders, _ := statusFixture(models.StatusPending)

	order, err := svc.Cancel(1, 42)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, order.Status)
	// Customer cancellations do not show up in the admin audit trail.
	assert.Empty(t, orders.auditLog)
}

func TestCancelSomeoneElsesOrder(t *testing.T) {
	svc, _, _ := statusFixture(models.StatusPending)

	_, err := svc.Cancel(1, 99)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCancelAfterApproval(t *testing.T) {
	svc, _, _ := statusFixture(models.StatusApproved)

	_, err := svc.Cancel(1, 42)
	assert.True(t, apperr.IsBusinessRule(err))
}
