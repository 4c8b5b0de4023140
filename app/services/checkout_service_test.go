package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/events"
	"github.com/thanhvudev/furnimart/app/models"
)

func checkoutFixture() (*CheckoutService, *fakeProductStore, *fakeOrderStore, *fakeUnitOfWork) {
	products := &fakeProductStore{
		products: map[uint]models.Product{
			1: {ProductID: 1, Name: "Oak Dining Table", Price: 4_000_000, Stock: intp(3)},
			2: {ProductID: 2, Name: "Walnut Chair", Price: 900_000, Stock: intp(10)},
			3: {ProductID: 3, Name: "Gift Wrapping", Price: 50_000}, // untracked stock
		},
		decrementRows: map[uint]int64{},
	}
	orders := newFakeOrderStore()
	uow := &fakeUnitOfWork{}

	svc := NewCheckoutService(products, orders, NewShippingService(), uow)
	svc.publish = nil
	return svc, products, orders, uow
}

func testDelivery() models.Delivery {
	return models.Delivery{
		UserName: "Lan Pham",
		Email:    "lan@example.com",
		Phone:    "0901234567",
		Country:  "Vietnam",
		City:     "Da Nang",
		District: "Hai Chau",
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, _, orders, _ := checkoutFixture()

	_, err := svc.PlaceOrder(&models.User{ID: 7}, models.Cart{}, testDelivery())

	assert.True(t, apperr.IsBusinessRule(err))
	assert.Empty(t, orders.createdOrders)
}

func TestPlaceOrderMissingProduct(t *testing.T) {
	svc, _, orders, uow := checkoutFixture()
	cart := models.Cart{99: {Quantity: 1, Price: 100}}

	_, err := svc.PlaceOrder(&models.User{ID: 7}, cart, testDelivery())

	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, orders.createdOrders)
	assert.Zero(t, uow.began)
}

func TestPlaceOrderInvalidQuantity(t *testing.T) {
	svc, _, orders, _ := checkoutFixture()
	cart := models.Cart{1: {Quantity: 0}}

	_, err := svc.PlaceOrder(&models.User{ID: 7}, cart, testDelivery())

	_, ok := apperr.AsValidation(err)
	assert.True(t, ok)
	assert.Empty(t, orders.createdOrders)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	svc, _, orders, uow := checkoutFixture()
	cart := models.Cart{1: {Quantity: 5}}

	_, err := svc.PlaceOrder(&models.User{ID: 7}, cart, testDelivery())

	require.Error(t, err)
	assert.True(t, apperr.IsBusinessRule(err))
	assert.Contains(t, err.Error(), "Oak Dining Table")

	// Nothing was written: the pre-check fails before the transaction opens.
	assert.Zero(t, uow.began)
	assert.Empty(t, orders.createdOrders)
	assert.Empty(t, orders.createdItems)
	assert.Empty(t, orders.createdDelivery)
}

func TestPlaceOrderChargesCurrentPrices(t *testing.T) {
	svc, products, orders, _ := checkoutFixture()

	// Session snapshot claims an old, cheaper price; the catalog price wins.
	cart := models.Cart{
		1: {Quantity: 2, Price: 1_000},
		3: {Quantity: 1, Price: 10},
	}

	order, err := svc.PlaceOrder(&models.User{ID: 7, Email: "lan@example.com"}, cart, testDelivery())
	require.NoError(t, err)

	subtotal := 2*4_000_000.0 + 50_000.0
	assert.Equal(t, subtotal+feeStandard, order.TotalCost)
	assert.Equal(t, float64(feeStandard), order.ShippingFee)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, uint(7), order.CustomerID)

	require.Len(t, orders.createdItems, 1)
	for _, item := range orders.createdItems[0] {
		assert.Equal(t, order.OrderID, item.OrderID)
		assert.Equal(t, products.products[item.ProductID].Price, item.Price)
	}

	require.Len(t, orders.createdDelivery, 1)
	assert.Equal(t, order.OrderID, orders.createdDelivery[0].OrderID)
	assert.Equal(t, "Lan Pham", orders.createdDelivery[0].UserName)

	// Untracked products never touch stock.
	assert.Equal(t, []uint{1}, products.decremented)
}

func TestPlaceOrderStockRaceLost(t *testing.T) {
	svc, products, _, uow := checkoutFixture()

	// The pre-check read still sees one unit, but the guarded write loses.
	products.decrementRows[2] = 0
	cart := models.Cart{2: {Quantity: 1}}

	_, err := svc.PlaceOrder(&models.User{ID: 7}, cart, testDelivery())

	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Contains(t, err.Error(), "Walnut Chair")
	assert.True(t, uow.rolledBack)
}

func TestPlaceOrderPublishesEvent(t *testing.T) {
	svc, _, _, _ := checkoutFixture()

	var got events.OrderPlacedPayload
	svc.publish = func(name string, payload interface{}) {
		if name == events.OrderPlaced {
			got = payload.(events.OrderPlacedPayload)
		}
	}

	cart := models.Cart{2: {Quantity: 2}}
	order, err := svc.PlaceOrder(&models.User{ID: 9, Email: "minh@example.com"}, cart, testDelivery())
	require.NoError(t, err)

	assert.Equal(t, order.OrderID, got.OrderID)
	assert.Equal(t, uint(9), got.CustomerID)
	assert.Equal(t, "minh@example.com", got.Email)
	assert.Equal(t, 1, got.Items)
}
