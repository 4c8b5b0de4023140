package services

import (
	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/auth"
	"github.com/thanhvudev/furnimart/pkg/orm"
)

// userStore is the slice of UserRepository the admin user manager needs.
type userStore interface {
	Find(id uint) (*models.User, error)
	EmailTaken(email string, selfID uint) (bool, error)
	Paginate(search string, roleID uint, page, perPage int) ([]models.User, orm.Pagination, error)
	Create(u *models.User) error
	Save(u *models.User) error
	Delete(id uint) error
	SetActivation(id uint, active bool) (int64, error)
}

// UserInput is the admin-facing create/update payload.
type UserInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"nullable,min=6"`
	RoleID   uint   `json:"role_id" validate:"required"`
	Phone    string `json:"phone_number" validate:"nullable,max=20"`
	Country  string `json:"country" validate:"nullable,max=255"`
	City     string `json:"city" validate:"nullable,max=255"`
	District string `json:"district" validate:"nullable,max=255"`
	Ward     string `json:"ward" validate:"nullable"`
}

// UserService implements back-office account management. The destructive
// operations (delete, activate, deactivate) are reserved for the super admin,
// and no actor may point them at their own account.
type UserService struct {
	users userStore
}

// NewUserService wires the user manager to its store.
func NewUserService(users userStore) *UserService {
	return &UserService{users: users}
}

// List returns one page of accounts matching search and role filters.
func (s *UserService) List(search string, roleID uint, page, perPage int) ([]models.User, orm.Pagination, error) {
	return s.users.Paginate(search, roleID, page, perPage)
}

// Get loads one account.
func (s *UserService) Get(id uint) (*models.User, error) {
	return s.users.Find(id)
}

// Create adds an account on behalf of actor. Admin accounts can only be
// minted by the super admin.
func (s *UserService) Create(actor *models.User, in UserInput) (*models.User, error) {
	if in.RoleID == models.RoleAdmin && !actor.IsSuperAdmin() {
		return nil, apperr.BusinessRule("Only the super admin can create admin accounts.")
	}
	if in.Password == "" {
		return nil, apperr.ValidationField("password", "A password is required.")
	}

	taken, err := s.users.EmailTaken(in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ValidationField("email", "This email is already registered.")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:       in.Name,
		Email:      in.Email,
		Password:   hash,
		RoleID:     in.RoleID,
		IsActivate: true,
		Phone:      in.Phone,
		Country:    in.Country,
		City:       in.City,
		District:   in.District,
		Ward:       in.Ward,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update edits another account. Actors never edit themselves through the
// back office; the profile endpoints exist for that.
func (s *UserService) Update(actor *models.User, id uint, in UserInput) (*models.User, error) {
	if actor.ID == id {
		return nil, apperr.BusinessRule("You cannot edit your own account from user management.")
	}

	u, err := s.users.Find(id)
	if err != nil {
		return nil, err
	}
	if u.IsSuperAdmin() {
		return nil, apperr.BusinessRule("The super admin account cannot be modified.")
	}
	if in.RoleID == models.RoleAdmin && !actor.IsSuperAdmin() {
		return nil, apperr.BusinessRule("Only the super admin can grant the admin role.")
	}

	taken, err := s.users.EmailTaken(in.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ValidationField("email", "This email is already registered.")
	}

	u.Name = in.Name
	u.Email = in.Email
	u.RoleID = in.RoleID
	u.Phone = in.Phone
	u.Country = in.Country
	u.City = in.City
	u.District = in.District
	u.Ward = in.Ward
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	if err := s.users.Save(u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetActivation flips an account's active flag. Super admin only, and never
// against the actor's own account.
func (s *UserService) SetActivation(actor *models.User, id uint, active bool) error {
	if !actor.IsSuperAdmin() {
		return apperr.BusinessRule("Only the super admin can activate or deactivate accounts.")
	}
	if actor.ID == id {
		return apperr.BusinessRule("You cannot deactivate your own account.")
	}

	u, err := s.users.Find(id)
	if err != nil {
		return err
	}
	if u.IsSuperAdmin() {
		return apperr.BusinessRule("The super admin account cannot be deactivated.")
	}

	_, err = s.users.SetActivation(id, active)
	return err
}

// Delete removes an account. Super admin only, never the actor's own account,
// and only after the account has been deactivated.
func (s *UserService) Delete(actor *models.User, id uint) error {
	if !actor.IsSuperAdmin() {
		return apperr.BusinessRule("Only the super admin can delete accounts.")
	}
	if actor.ID == id {
		return apperr.BusinessRule("You cannot delete your own account.")
	}

	u, err := s.users.Find(id)
	if err != nil {
		return err
	}
	if u.IsSuperAdmin() {
		return apperr.BusinessRule("The super admin account cannot be deleted.")
	}
	if u.IsActivate {
		return apperr.BusinessRule("Deactivate the account before deleting it.")
	}

	return s.users.Delete(id)
}

// UpdateProfile lets a signed-in user edit their own contact details.
func (s *UserService) UpdateProfile(userID uint, name, phone, country, city, district, ward string) (*models.User, error) {
	u, err := s.users.Find(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		u.Name = name
	}
	u.Phone = phone
	u.Country = country
	u.City = city
	u.District = district
	u.Ward = ward

	if err := s.users.Save(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *UserService) ChangePassword(userID uint, current, next string) error {
	u, err := s.users.Find(userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.Password, current) {
		return apperr.ValidationField("current_password", "The current password is incorrect.")
	}
	if len(next) < 6 {
		return apperr.ValidationField("password", "The new password must be at least 6 characters.")
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.users.Save(u)
}
