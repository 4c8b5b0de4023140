package migrations

import (
	"gorm.io/gorm"

	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/migration"
)

func init() {
	migration.Register("20260115000000_create_accounts_tables", &CreateAccountsTables{})
	migration.Register("20260115000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260115000002_create_order_tables", &CreateOrderTables{})
	migration.Register("20260115000003_create_feedbacks_table", &CreateFeedbacksTable{})
}

// -------- 0001: roles + users --------

type CreateAccountsTables struct{}

func (m *CreateAccountsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Role{}, &models.User{})
}

func (m *CreateAccountsTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users", "roles")
}

// -------- 0002: categories + products --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Product{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products", "categories")
}

// -------- 0003: orders, items, delivery, status audit --------

type CreateOrderTables struct{}

func (m *CreateOrderTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryInfo{},
		&models.StatusOrder{},
	)
}

func (m *CreateOrderTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("status_orders", "delivery_info", "order_items", "orders")
}

// -------- 0004: feedbacks --------

type CreateFeedbacksTable struct{}

func (m *CreateFeedbacksTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Feedback{})
}

func (m *CreateFeedbacksTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("feedbacks")
}
