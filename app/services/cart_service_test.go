package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
)

func cartFixture() (*CartService, *fakeProductStore) {
	products := &fakeProductStore{products: map[uint]models.Product{
		1: {ProductID: 1, Name: "Oak Desk", Price: 2000000, Stock: intp(3)},
		2: {ProductID: 2, Name: "Desk Lamp", Price: 150000, Stock: nil},
	}}
	return NewCartService(products, NewShippingService()), products
}

func TestCartAddStacksOntoExistingLine(t *testing.T) {
	svc, _ := cartFixture()
	cart := models.Cart{}

	cart, err := svc.Add(cart, 1, 1)
	require.NoError(t, err)
	cart, err = svc.Add(cart, 1, 2)
	require.NoError(t, err)

	line := cart[1]
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 2000000.0, line.Price)
	assert.Equal(t, "Oak Desk", line.Name)
}

func TestCartAddRejectsOverStock(t *testing.T) {
	svc, _ := cartFixture()
	cart := models.Cart{}

	_, err := svc.Add(cart, 1, 4)
	assert.True(t, apperr.IsBusinessRule(err))
	assert.NotContains(t, cart, uint(1))
}

func TestCartAddUntrackedStockIsUnlimited(t *testing.T) {
	svc, _ := cartFixture()
	cart := models.Cart{}

	cart, err := svc.Add(cart, 2, 500)
	require.NoError(t, err)
	assert.Equal(t, 500, cart[2].Quantity)
}

func TestCartAddValidation(t *testing.T) {
	svc, _ := cartFixture()
	cart := models.Cart{}

	_, err := svc.Add(cart, 1, 0)
	_, ok := apperr.AsValidation(err)
	assert.True(t, ok, "zero quantity must be rejected")

	_, err = svc.Add(cart, 99, 1)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCartUpdateSetsQuantityOutright(t *testing.T) {
	svc, _ := cartFixture()
	cart := models.Cart{1: {Quantity: 1, Price: 2000000}}

	cart, err := svc.Update(cart, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cart[1].Quantity)

	// Zero removes the line.
	cart, err = svc.Update(cart, 1, 0)
	require.NoError(t, err)
	assert.NotContains(t, cart, uint(1))

	_, err = svc.Update(cart, 1, 1)
	assert.True(t, apperr.IsNotFound(err), "updating an absent line is not found")
}

func TestCartRemoveAbsentLineIsNoop(t *testing.T) {
	svc, _ := cartFixture()
	cart := models.Cart{1: {Quantity: 1}}

	cart = svc.Remove(cart, 99)
	assert.Contains(t, cart, uint(1))

	cart = svc.Remove(cart, 1)
	assert.Empty(t, cart)
}

func TestCartSummarizeAttachesShippingQuote(t *testing.T) {
	svc, _ := cartFixture()
	cart := models.Cart{
		1: {Quantity: 2, Price: 2000000},
		2: {Quantity: 1, Price: 150000},
	}

	sum := svc.Summarize(cart)

	assert.Equal(t, 4150000.0, sum.Subtotal)
	assert.Equal(t, 3, sum.Quantity)
	assert.Equal(t, sum.Subtotal+sum.ShippingFee, sum.Total)
	require.NotNil(t, sum.AmountToFree)
	assert.Equal(t, 850000.0, *sum.AmountToFree)
}

func TestCartSummarizeFreeShipping(t *testing.T) {
	svc, _ := cartFixture()
	cart := models.Cart{1: {Quantity: 3, Price: 2000000}}

	sum := svc.Summarize(cart)

	assert.Equal(t, 0.0, sum.ShippingFee)
	assert.True(t, sum.Subtotal >= 5000000)
	assert.Nil(t, sum.AmountToFree)
}
