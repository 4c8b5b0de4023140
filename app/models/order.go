package models

import "time"

// Order statuses. delivered and cancelled are terminal; cancelled is only
// reachable through the customer path, never through an admin transition.
const (
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusDelivering = "delivering"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// AdminStatuses are the values an admin may submit on a status update.
var AdminStatuses = []string{
	StatusPending, StatusApproved, StatusRejected, StatusDelivering, StatusDelivered,
}

// Order is created only by the checkout workflow and its status is mutated
// only by the order status service. TotalCost already includes ShippingFee.
type Order struct {
	OrderID     uint      `gorm:"primaryKey;column:order_id" json:"order_id"`
	CustomerID  uint      `gorm:"not null;index" json:"customer_id"`
	OrderDate   time.Time `gorm:"not null" json:"order_date"`
	TotalCost   float64   `gorm:"not null" json:"total_cost"`
	ShippingFee float64   `gorm:"not null;default:0" json:"shipping_fee"`
	Status      string    `gorm:"size:50;not null;default:pending;index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Customer     *User         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items        []OrderItem   `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	DeliveryInfo *DeliveryInfo `gorm:"foreignKey:OrderID;references:OrderID" json:"delivery_info,omitempty"`
	StatusLog    []StatusOrder `gorm:"foreignKey:OrderID" json:"-"`
}

// OrderItem snapshots the unit price at purchase time; it is written once at
// order creation and never mutated afterwards.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
}

// DeliveryInfo is the address captured in the session during checkout.
// It belongs to exactly one order and is independent of the user profile.
type DeliveryInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	UserName  string    `gorm:"size:255;not null" json:"user_name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     string    `gorm:"size:20;not null" json:"phone_number"`
	Country   string    `gorm:"size:255;not null" json:"country"`
	City      string    `gorm:"size:255;not null" json:"city"`
	District  string    `gorm:"size:255;not null" json:"district"`
	Ward      string    `gorm:"type:text" json:"ward,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DeliveryInfo) TableName() string { return "delivery_info" }

// StatusOrder is the append-only audit trail: one row per accepted status
// transition, recording who moved the order and to what.
type StatusOrder struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	AdminID    uint      `gorm:"not null;index" json:"admin_id"`
	ActionType string    `gorm:"size:50;not null" json:"action_type"`
	Date       time.Time `gorm:"not null" json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (StatusOrder) TableName() string { return "status_orders" }
