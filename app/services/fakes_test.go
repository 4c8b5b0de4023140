package services

import (
	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/orm"
)

// fakeUnitOfWork runs the function directly and records whether the last
// transaction rolled back, so tests can assert atomicity without a database.
type fakeUnitOfWork struct {
	began      int
	rolledBack bool
}

func (f *fakeUnitOfWork) Transaction(fn func(tx *orm.Query) error) error {
	f.began++
	f.rolledBack = false
	if err := fn(nil); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

// fakeProductStore serves a fixed catalog and scripts the guarded decrement.
type fakeProductStore struct {
	products map[uint]models.Product

	// decrementRows overrides the rows-affected result per product. Absent
	// entries succeed with one row.
	decrementRows map[uint]int64
	decrementErr  error
	decremented   []uint
}

func (f *fakeProductStore) Find(id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperr.NotFound("product")
	}
	return &p, nil
}

func (f *fakeProductStore) ByIDs(ids []uint) (map[uint]models.Product, error) {
	out := map[uint]models.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProductStore) DecrementStock(tx *orm.Query, productID uint, qty int) (int64, error) {
	if f.decrementErr != nil {
		return 0, f.decrementErr
	}
	if rows, ok := f.decrementRows[productID]; ok {
		return rows, nil
	}
	f.decremented = append(f.decremented, productID)
	return 1, nil
}

// fakeOrderStore records every write the checkout and status machine make.
type fakeOrderStore struct {
	orders map[uint]*models.Order
	nextID uint

	createdOrders   []*models.Order
	createdItems    [][]models.OrderItem
	createdDelivery []*models.DeliveryInfo
	statusUpdates   []string
	auditLog        []models.StatusOrder
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[uint]*models.Order{}, nextID: 1}
}

func (f *fakeOrderStore) Find(id uint) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.NotFound("order")
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) Create(tx *orm.Query, o *models.Order) error {
	o.OrderID = f.nextID
	f.nextID++
	f.createdOrders = append(f.createdOrders, o)
	return nil
}

func (f *fakeOrderStore) CreateItems(tx *orm.Query, items []models.OrderItem) error {
	f.createdItems = append(f.createdItems, items)
	return nil
}

func (f *fakeOrderStore) CreateDeliveryInfo(tx *orm.Query, d *models.DeliveryInfo) error {
	f.createdDelivery = append(f.createdDelivery, d)
	return nil
}

func (f *fakeOrderStore) UpdateStatus(tx *orm.Query, orderID uint, status string) (int64, error) {
	f.statusUpdates = append(f.statusUpdates, status)
	if o, ok := f.orders[orderID]; ok {
		o.Status = status
	}
	return 1, nil
}

func (f *fakeOrderStore) AppendStatusLog(tx *orm.Query, orderID, adminID uint, action string) error {
	f.auditLog = append(f.auditLog, models.StatusOrder{OrderID: orderID, AdminID: adminID, ActionType: action})
	return nil
}

func intp(n int) *int { return &n }
