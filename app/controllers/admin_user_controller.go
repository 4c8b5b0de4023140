package controllers

import (
	"strconv"

	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
)

// AdminUserController manages accounts from the back office. The service
// layer enforces the super-admin rules; this controller only resolves the
// acting admin and binds input.
type AdminUserController struct {
	users *services.UserService
}

// NewAdminUserController wires the account management endpoints.
func NewAdminUserController(users *services.UserService) *AdminUserController {
	return &AdminUserController{users: users}
}

// actor loads the signed-in admin account.
func (uc *AdminUserController) actor(c *ctx.Context) (*models.User, bool) {
	id, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	actor, err := uc.users.Get(id)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return actor, true
}

// Index lists accounts with ?search= and ?role= filters.
func (uc *AdminUserController) Index(c *ctx.Context) {
	page, perPage := pageQuery(c)
	roleID, _ := strconv.ParseUint(c.Query("role"), 10, 32)

	users, pagination, err := uc.users.List(c.Query("search"), uint(roleID), page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]interface{}{"items": users, "pagination": pagination})
}

// Show returns one account.
func (uc *AdminUserController) Show(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	user, err := uc.users.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

// Store creates an account.
func (uc *AdminUserController) Store(c *ctx.Context) {
	actor, ok := uc.actor(c)
	if !ok {
		return
	}

	var in services.UserInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := uc.users.Create(actor, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(user)
}

// Update edits another account.
func (uc *AdminUserController) Update(c *ctx.Context) {
	actor, ok := uc.actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var in services.UserInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := uc.users.Update(actor, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

// Activate re-enables an account.
func (uc *AdminUserController) Activate(c *ctx.Context) {
	uc.setActivation(c, true)
}

// Deactivate disables an account, a prerequisite for deleting it.
func (uc *AdminUserController) Deactivate(c *ctx.Context) {
	uc.setActivation(c, false)
}

func (uc *AdminUserController) setActivation(c *ctx.Context, active bool) {
	actor, ok := uc.actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := uc.users.SetActivation(actor, id, active); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"is_activate": active})
}

// Destroy deletes a deactivated account.
func (uc *AdminUserController) Destroy(c *ctx.Context) {
	actor, ok := uc.actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := uc.users.Delete(actor, id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Account deleted."})
}
