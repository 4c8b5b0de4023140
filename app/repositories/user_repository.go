package repositories

import (
	"errors"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/orm"
)

// UserRepository owns user and role persistence.
type UserRepository struct{}

// NewUserRepository builds a UserRepository.
func NewUserRepository() *UserRepository { return &UserRepository{} }

// Find loads one user with their role.
func (r *UserRepository) Find(id uint) (*models.User, error) {
	var u models.User
	if err := orm.DB().Preload("Role").Where("id = ?", id).First(&u); err != nil {
		if errors.Is(err, orm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail loads one user by email address.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := orm.DB().Preload("Role").Where("email = ?", email).First(&u); err != nil {
		if errors.Is(err, orm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return &u, nil
}

// EmailTaken reports whether another user already owns email. selfID skips
// the user's own row on profile updates.
func (r *UserRepository) EmailTaken(email string, selfID uint) (bool, error) {
	q := orm.DB().Model(&models.User{}).Where("email = ?", email)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	n, err := q.Count()
	return n > 0, err
}

// Paginate returns one page of users matching search, filtered by role when
// roleID is non-zero.
func (r *UserRepository) Paginate(search string, roleID uint, page, perPage int) ([]models.User, orm.Pagination, error) {
	q := orm.DB().Model(&models.User{}).Preload("Role").Order("id asc")
	if search != "" {
		q = q.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if roleID != 0 {
		q = q.Where("role_id = ?", roleID)
	}

	var users []models.User
	p, err := q.GetWithPagination(&users, page, perPage)
	return users, p, err
}

// Create inserts a user.
func (r *UserRepository) Create(u *models.User) error {
	return orm.DB().Create(u)
}

// Save persists changed user fields.
func (r *UserRepository) Save(u *models.User) error {
	return orm.DB().Save(u)
}

// Delete removes a user row.
func (r *UserRepository) Delete(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.User{})
}

// SetActivation flips a user's active flag and returns rows affected.
func (r *UserRepository) SetActivation(id uint, active bool) (int64, error) {
	return orm.DB().Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_activate": active})
}

// CountCustomers returns the number of customer accounts.
func (r *UserRepository) CountCustomers() (int64, error) {
	return orm.DB().Model(&models.User{}).Where("role_id = ?", models.RoleCustomer).Count()
}
