package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/auth"
	"github.com/thanhvudev/furnimart/pkg/orm"
)

// fakeUserStore keeps accounts in a map.
type fakeUserStore struct {
	users   map[uint]*models.User
	deleted []uint
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[uint]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) Find(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserStore) EmailTaken(email string, selfID uint) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != selfID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Paginate(search string, roleID uint, page, perPage int) ([]models.User, orm.Pagination, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, orm.Pagination{Page: page, PerPage: perPage, Total: int64(len(out))}, nil
}

func (f *fakeUserStore) Create(u *models.User) error {
	u.ID = uint(len(f.users) + 1)
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) Save(u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) Delete(id uint) error {
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserStore) SetActivation(id uint, active bool) (int64, error) {
	u, ok := f.users[id]
	if !ok {
		return 0, nil
	}
	u.IsActivate = active
	return 1, nil
}

func userFixture() (*UserService, *fakeUserStore, *models.User, *models.User, *models.User) {
	super := &models.User{ID: 1, Name: "Root", Email: models.SuperAdminEmail, RoleID: models.RoleAdmin, IsActivate: true}
	admin := &models.User{ID: 2, Name: "Staff", Email: "staff@example.com", RoleID: models.RoleAdmin, IsActivate: true}
	customer := &models.User{ID: 3, Name: "Lan", Email: "lan@example.com", RoleID: models.RoleCustomer, IsActivate: true}

	store := newFakeUserStore(super, admin, customer)
	return NewUserService(store), store, super, admin, customer
}

func TestOnlySuperAdminDeletesUsers(t *testing.T) {
	svc, _, _, admin, customer := userFixture()

	err := svc.Delete(admin, customer.ID)
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestOnlySuperAdminTogglesActivation(t *testing.T) {
	svc, _, _, admin, customer := userFixture()

	err := svc.SetActivation(admin, customer.ID, false)
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestSuperAdminCannotTargetThemselves(t *testing.T) {
	svc, _, super, _, _ := userFixture()

	assert.True(t, apperr.IsBusinessRule(svc.Delete(super, super.ID)))
	assert.True(t, apperr.IsBusinessRule(svc.SetActivation(super, super.ID, false)))
	_, err := svc.Update(super, super.ID, UserInput{})
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestDeleteRequiresDeactivation(t *testing.T) {
	svc, store, super, _, customer := userFixture()

	err := svc.Delete(super, customer.ID)
	assert.True(t, apperr.IsBusinessRule(err))

	require.NoError(t, svc.SetActivation(super, customer.ID, false))
	require.NoError(t, svc.Delete(super, customer.ID))
	assert.Equal(t, []uint{customer.ID}, store.deleted)
}

func TestSuperAdminAccountIsUntouchable(t *testing.T) {
	svc, _, super, admin, _ := userFixture()
	_ = admin

	assert.True(t, apperr.IsBusinessRule(svc.SetActivation(super, super.ID, false)))

	// Even another admin cannot edit the super admin account.
	other := &models.User{ID: 5, Email: "other@example.com", RoleID: models.RoleAdmin}
	_, err := svc.Update(other, super.ID, UserInput{Name: "X", Email: "x@example.com", RoleID: models.RoleCustomer})
	assert.True(t, apperr.IsBusinessRule(err))
}

func TestCreateAdminRequiresSuperAdmin(t *testing.T) {
	svc, _, super, admin, _ := userFixture()

	_, err := svc.Create(admin, UserInput{
		Name: "New Admin", Email: "new@example.com", Password: "secret1", RoleID: models.RoleAdmin,
	})
	assert.True(t, apperr.IsBusinessRule(err))

	u, err := svc.Create(super, UserInput{
		Name: "New Admin", Email: "new@example.com", Password: "secret1", RoleID: models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.RoleID)
	assert.True(t, auth.CheckPassword(u.Password, "secret1"))
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _, super, _, _ := userFixture()

	_, err := svc.Create(super, UserInput{
		Name: "Dup", Email: "lan@example.com", Password: "secret1", RoleID: models.RoleCustomer,
	})
	_, ok := apperr.AsValidation(err)
	assert.True(t, ok)
}

func TestChangePasswordChecksCurrent(t *testing.T) {
	svc, store, _, _, customer := userFixture()

	hash, err := auth.HashPassword("oldpass")
	require.NoError(t, err)
	store.users[customer.ID].Password = hash

	err = svc.ChangePassword(customer.ID, "wrong", "newpass1")
	_, ok := apperr.AsValidation(err)
	assert.True(t, ok)

	require.NoError(t, svc.ChangePassword(customer.ID, "oldpass", "newpass1"))
	assert.True(t, auth.CheckPassword(store.users[customer.ID].Password, "newpass1"))
}
