package controllers

import (
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
	"github.com/thanhvudev/furnimart/pkg/logger"
	"github.com/thanhvudev/furnimart/pkg/mail"
)

// AuthController serves registration, login and password recovery.
type AuthController struct {
	auth  *services.AuthService
	users *services.UserService
}

// NewAuthController wires the controller to its services.
func NewAuthController(auth *services.AuthService, users *services.UserService) *AuthController {
	return &AuthController{auth: auth, users: users}
}

// Register creates a customer account and returns the signed-in session.
func (a *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}

	user, tokens, err := a.auth.Register(in)
	if err != nil {
		fail(c, err)
		return
	}

	c.Created(map[string]interface{}{"user": user, "tokens": tokens})
}

// Login authenticates by email and password.
func (a *AuthController) Login(c *ctx.Context) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	user, tokens, err := a.auth.Login(in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.Success(map[string]interface{}{"user": user, "tokens": tokens})
}

// Refresh exchanges a refresh token for a new pair.
func (a *AuthController) Refresh(c *ctx.Context) {
	var in struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	tokens, err := a.auth.Refresh(in.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(tokens)
}

// Me returns the authenticated user's profile.
func (a *AuthController) Me(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := a.users.Get(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

// UpdateProfile edits the authenticated user's contact details.
func (a *AuthController) UpdateProfile(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in struct {
		Name     string `json:"name" validate:"nullable,max=255"`
		Phone    string `json:"phone_number" validate:"nullable,max=20"`
		Country  string `json:"country" validate:"nullable,max=255"`
		City     string `json:"city" validate:"nullable,max=255"`
		District string `json:"district" validate:"nullable,max=255"`
		Ward     string `json:"ward" validate:"nullable"`
	}
	if !c.BindJSON(&in) {
		return
	}

	user, err := a.users.UpdateProfile(userID, in.Name, in.Phone, in.Country, in.City, in.District, in.Ward)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

// ChangePassword rotates the authenticated user's password.
func (a *AuthController) ChangePassword(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		Password        string `json:"password" validate:"required,min=6"`
	}
	if !c.BindJSON(&in) {
		return
	}

	if err := a.users.ChangePassword(userID, in.CurrentPassword, in.Password); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Password updated."})
}

// ForgotPassword mails a reset link. The response never reveals whether the
// email exists.
func (a *AuthController) ForgotPassword(c *ctx.Context) {
	var in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !c.BindJSON(&in) {
		return
	}

	token, err := a.auth.RequestPasswordReset(in.Email)
	if err != nil {
		fail(c, err)
		return
	}

	if token != "" {
		go func(email, token string) {
			err := mail.To(email).
				Subject("Reset your Furnimart password").
				Text("Use this token to reset your password. It expires in one hour.\n\n" + token).
				Send()
			if err != nil {
				logger.Warn("password reset mail failed", "error", err)
			}
		}(in.Email, token)
	}

	c.Success(map[string]string{"message": "If that email exists, a reset link is on its way."})
}

// ResetPassword completes the recovery flow.
func (a *AuthController) ResetPassword(c *ctx.Context) {
	var in struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}
	if !c.BindJSON(&in) {
		return
	}

	if err := a.auth.ResetPassword(in.Token, in.Password); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Password updated. You can sign in now."})
}
