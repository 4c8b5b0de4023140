package models

import "time"

// Category is a product grouping. It cannot be deleted while products still
// reference it; the associated image file lives on a storage disk.
type Category struct {
	CategoryID uint      `gorm:"primaryKey;column:category_id" json:"category_id"`
	Name       string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Image      string    `gorm:"size:255" json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// Product is a catalogue item. Stock is nullable: nil means the product is
// untracked (unlimited); a non-nil value is decremented at checkout through
// the guarded update in the order repository; no other code path writes it.
type Product struct {
	ProductID   uint      `gorm:"primaryKey;column:product_id" json:"product_id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	Stock       *int      `json:"stock"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Image       string    `gorm:"size:255" json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
}

// TracksStock reports whether checkout must guard this product's stock.
func (p Product) TracksStock() bool { return p.Stock != nil }
