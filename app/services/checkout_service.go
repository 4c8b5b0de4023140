package services

import (
	"sort"
	"time"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/events"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/event"
	"github.com/thanhvudev/furnimart/pkg/orm"
)

// checkoutProductStore is the slice of ProductRepository checkout needs.
type checkoutProductStore interface {
	ByIDs(ids []uint) (map[uint]models.Product, error)
	DecrementStock(tx *orm.Query, productID uint, qty int) (int64, error)
}

// checkoutOrderStore is the slice of OrderRepository checkout needs.
type checkoutOrderStore interface {
	Create(tx *orm.Query, o *models.Order) error
	CreateItems(tx *orm.Query, items []models.OrderItem) error
	CreateDeliveryInfo(tx *orm.Query, d *models.DeliveryInfo) error
}

// CheckoutService turns a session cart plus captured delivery details into a
// committed order. Every write happens inside one unit of work; any failure,
// including a lost stock race, rolls the whole order back.
type CheckoutService struct {
	products checkoutProductStore
	orders   checkoutOrderStore
	shipping *ShippingService
	uow      orm.UnitOfWork
	publish  func(name string, payload interface{})
}

// NewCheckoutService wires the checkout workflow to its stores.
func NewCheckoutService(products checkoutProductStore, orders checkoutOrderStore, shipping *ShippingService, uow orm.UnitOfWork) *CheckoutService {
	return &CheckoutService{
		products: products,
		orders:   orders,
		shipping: shipping,
		uow:      uow,
		publish:  event.FireAsync,
	}
}

// PlaceOrder validates the cart against current catalog state, prices it at
// current prices, and commits the order atomically. Returns the committed
// order; on any error no rows have been written and no stock has moved.
func (s *CheckoutService) PlaceOrder(customer *models.User, cart models.Cart, delivery models.Delivery) (*models.Order, error) {
	if len(cart) == 0 {
		return nil, apperr.BusinessRule("Your cart is empty.")
	}

	ids := make([]uint, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	// Stable order keeps decrements deterministic across concurrent checkouts.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	catalog, err := s.products.ByIDs(ids)
	if err != nil {
		return nil, err
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(ids))
	for _, id := range ids {
		line := cart[id]
		product, ok := catalog[id]
		if !ok {
			return nil, apperr.NotFound("product")
		}
		if line.Quantity <= 0 {
			return nil, apperr.ValidationField("quantity", "Quantity for "+product.Name+" must be at least 1.")
		}
		if product.TracksStock() && *product.Stock < line.Quantity {
			return nil, apperr.BusinessRule("Not enough stock for %s: %d left.", product.Name, *product.Stock)
		}

		// Current catalog price wins over whatever the session cached.
		subtotal += float64(line.Quantity) * product.Price
		items = append(items, models.OrderItem{
			ProductID: id,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	fee := s.shipping.Fee(subtotal)

	order := &models.Order{
		CustomerID:  customer.ID,
		OrderDate:   time.Now(),
		TotalCost:   subtotal + fee,
		ShippingFee: fee,
		Status:      models.StatusPending,
	}

	err = s.uow.Transaction(func(tx *orm.Query) error {
		if err := s.orders.Create(tx, order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.OrderID
		}
		if err := s.orders.CreateItems(tx, items); err != nil {
			return err
		}

		info := deliveryRecord(order.OrderID, delivery)
		if err := s.orders.CreateDeliveryInfo(tx, &info); err != nil {
			return err
		}

		for _, id := range ids {
			product := catalog[id]
			if !product.TracksStock() {
				continue
			}
			affected, err := s.products.DecrementStock(tx, id, cart[id].Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apperr.Conflict("Someone else just bought the last of %s. Please try again.", product.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publish != nil {
		s.publish(events.OrderPlaced, events.OrderPlacedPayload{
			OrderID:    order.OrderID,
			CustomerID: customer.ID,
			Email:      customer.Email,
			Total:      order.TotalCost,
			Items:      len(items),
		})
	}
	return order, nil
}

func deliveryRecord(orderID uint, d models.Delivery) models.DeliveryInfo {
	return models.DeliveryInfo{
		OrderID:  orderID,
		UserName: d.UserName,
		Email:    d.Email,
		Phone:    d.Phone,
		Country:  d.Country,
		City:     d.City,
		District: d.District,
		Ward:     d.Ward,
	}
}
