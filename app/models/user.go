package models

import "time"

// Role IDs are fixed by the seeder; the super admin is identified by email,
// not by role, mirroring how the back office actually gates user management.
const (
	RoleAdmin    uint = 1
	RoleCustomer uint = 2
)

// SuperAdminEmail is the single account allowed to manage other users.
const SuperAdminEmail = "admin1@gmail.com"

// Role groups users by privilege level.
type Role struct {
	RoleID    uint      `gorm:"primaryKey;column:role_id" json:"role_id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Users []User `gorm:"foreignKey:RoleID" json:"-"`
}

// User is both the storefront customer and the back-office admin account.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	RoleID     uint      `gorm:"not null;index;default:2" json:"role_id"`
	IsActivate bool      `gorm:"not null;default:true" json:"is_activate"`
	Phone      string    `gorm:"size:20" json:"phone_number"`
	Country    string    `gorm:"size:255" json:"country"`
	City       string    `gorm:"size:255" json:"city"`
	District   string    `gorm:"size:255" json:"district"`
	Ward       string    `gorm:"type:text" json:"ward"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Role      *Role      `gorm:"foreignKey:RoleID;references:RoleID" json:"role,omitempty"`
	Orders    []Order    `gorm:"foreignKey:CustomerID" json:"-"`
	Feedbacks []Feedback `gorm:"foreignKey:UserID" json:"-"`
}

// IsSuperAdmin reports whether this account is the designated super admin.
func (u User) IsSuperAdmin() bool { return u.Email == SuperAdminEmail }

// IsAdmin reports whether this account may use the back office.
func (u User) IsAdmin() bool { return u.RoleID == RoleAdmin }

// RoleName is the role string carried in session tokens.
func (u User) RoleName() string {
	if u.RoleID == RoleAdmin {
		return "admin"
	}
	return "customer"
}
