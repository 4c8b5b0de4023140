package repositories

import (
	"errors"
	"time"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/collection"
	"github.com/thanhvudev/furnimart/pkg/orm"
)

// OrderFilter narrows back-office order listings. From and To bound the
// order date; zero values mean unbounded.
type OrderFilter struct {
	Status     string
	CustomerID uint
	From       time.Time
	To         time.Time
}

// OrderRepository owns order persistence: the order header, its line items,
// the delivery snapshot and the status audit trail.
type OrderRepository struct{}

// NewOrderRepository builds an OrderRepository.
func NewOrderRepository() *OrderRepository { return &OrderRepository{} }

// Create inserts the order header inside tx.
func (r *OrderRepository) Create(tx *orm.Query, o *models.Order) error {
	return tx.Create(o)
}

// CreateItems inserts the order's line items inside tx.
func (r *OrderRepository) CreateItems(tx *orm.Query, items []models.OrderItem) error {
	return tx.Create(&items)
}

// CreateDeliveryInfo inserts the order's delivery snapshot inside tx.
func (r *OrderRepository) CreateDeliveryInfo(tx *orm.Query, d *models.DeliveryInfo) error {
	return tx.Create(d)
}

// Find loads one order with customer, items and delivery info.
func (r *OrderRepository) Find(id uint) (*models.Order, error) {
	var o models.Order
	err := orm.DB().
		Preload("Customer").
		Preload("Items.Product").
		Preload("DeliveryInfo").
		Where("order_id = ?", id).
		First(&o)
	if err != nil {
		if errors.Is(err, orm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order")
		}
		return nil, err
	}
	return &o, nil
}

// FindWithLog loads one order including its status audit trail.
func (r *OrderRepository) FindWithLog(id uint) (*models.Order, error) {
	var o models.Order
	err := orm.DB().
		Preload("Customer").
		Preload("Items.Product").
		Preload("DeliveryInfo").
		Preload("StatusLog").
		Where("order_id = ?", id).
		First(&o)
	if err != nil {
		if errors.Is(err, orm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order")
		}
		return nil, err
	}
	return &o, nil
}

// Paginate returns one page of orders matching filter, newest first.
func (r *OrderRepository) Paginate(filter OrderFilter, page, perPage int) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{}).Preload("Customer").Order("order_id desc")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != 0 {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if !filter.From.IsZero() {
		q = q.Where("order_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("order_date < ?", filter.To.AddDate(0, 0, 1))
	}

	var orders []models.Order
	p, err := q.GetWithPagination(&orders, page, perPage)
	return orders, p, err
}

// ForCustomer returns a customer's own orders, newest first.
func (r *OrderRepository) ForCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("order_id desc").
		Get(&orders)
	return orders, err
}

// UpdateStatus writes the new status inside tx and returns rows affected.
func (r *OrderRepository) UpdateStatus(tx *orm.Query, orderID uint, status string) (int64, error) {
	return tx.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{"status": status})
}

// AppendStatusLog records who moved the order and to what, inside tx.
func (r *OrderRepository) AppendStatusLog(tx *orm.Query, orderID, adminID uint, action string) error {
	return tx.Create(&models.StatusOrder{
		OrderID:    orderID,
		AdminID:    adminID,
		ActionType: action,
		Date:       time.Now(),
	})
}

// StatusLog returns an order's audit trail, oldest first.
func (r *OrderRepository) StatusLog(orderID uint) ([]models.StatusOrder, error) {
	var log []models.StatusOrder
	err := orm.DB().Where("order_id = ?", orderID).Order("id asc").Get(&log)
	return log, err
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	return orm.DB().Model(&models.Order{}).Count()
}

// CountByStatus returns the number of orders currently in status.
func (r *OrderRepository) CountByStatus(status string) (int64, error) {
	return orm.DB().Model(&models.Order{}).Where("status = ?", status).Count()
}

// Revenue sums the total cost of delivered orders.
func (r *OrderRepository) Revenue() (float64, error) {
	var orders []models.Order
	if err := orm.DB().Where("status = ?", models.StatusDelivered).Get(&orders); err != nil {
		return 0, err
	}
	return collection.Sum(orders, func(o models.Order) float64 { return o.TotalCost }), nil
}
