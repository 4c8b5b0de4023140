package models

import "time"

// Feedback is a product review left by a customer. Plain CRUD; admins can
// only inspect and delete it.
type Feedback struct {
	FeedbackID uint      `gorm:"primaryKey;column:feedback_id" json:"feedback_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
}
