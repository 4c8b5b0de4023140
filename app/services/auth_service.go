package services

import (
	"time"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/events"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/auth"
	"github.com/thanhvudev/furnimart/pkg/crypt"
	"github.com/thanhvudev/furnimart/pkg/event"
)

// authUserStore is the slice of UserRepository authentication needs.
type authUserStore interface {
	Find(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	EmailTaken(email string, selfID uint) (bool, error)
	Create(u *models.User) error
	Save(u *models.User) error
}

// RegisterInput is the storefront sign-up payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone_number" validate:"nullable,max=20"`
}

// TokenPair is the issued credential set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// resetClaim is the encrypted password-reset token payload.
type resetClaim struct {
	UserID  uint  `json:"user_id"`
	Expires int64 `json:"expires"`
}

// resetTokenTTL bounds how long a password-reset link stays valid.
const resetTokenTTL = time.Hour

// AuthService handles registration, login and password recovery.
type AuthService struct {
	users   authUserStore
	publish func(name string, payload interface{})
}

// NewAuthService wires authentication to the user store.
func NewAuthService(users authUserStore) *AuthService {
	return &AuthService{users: users, publish: event.FireAsync}
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(in RegisterInput) (*models.User, *TokenPair, error) {
	taken, err := s.users.EmailTaken(in.Email, 0)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, apperr.ValidationField("email", "This email is already registered.")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	u := &models.User{
		Name:       in.Name,
		Email:      in.Email,
		Password:   hash,
		RoleID:     models.RoleCustomer,
		IsActivate: true,
		Phone:      in.Phone,
	}
	if err := s.users.Create(u); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}

	if s.publish != nil {
		s.publish(events.UserRegistered, events.UserRegisteredPayload{
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
		})
	}
	return u, tokens, nil
}

// Login checks credentials and account state, then issues tokens. The error
// is the same for a wrong email and a wrong password.
func (s *AuthService) Login(email, password string) (*models.User, *TokenPair, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil, apperr.ValidationField("email", "Invalid email or password.")
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, nil, apperr.ValidationField("email", "Invalid email or password.")
	}
	if !u.IsActivate {
		return nil, nil, apperr.BusinessRule("This account has been deactivated.")
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return nil, apperr.ValidationField("refresh_token", "The refresh token is invalid or expired.")
	}

	u, err := s.users.Find(claims.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActivate {
		return nil, apperr.BusinessRule("This account has been deactivated.")
	}
	return s.issueTokens(u)
}

// RequestPasswordReset mints an encrypted single-purpose token for email.
// The caller mails it; an unknown email reports success with no token so the
// endpoint cannot be used to probe for accounts.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}

	return crypt.EncryptJSON(resetClaim{
		UserID:  u.ID,
		Expires: time.Now().Add(resetTokenTTL).Unix(),
	})
}

// ResetPassword validates the token and sets the new password.
func (s *AuthService) ResetPassword(token, password string) error {
	var claim resetClaim
	if err := crypt.DecryptJSON(token, &claim); err != nil {
		return apperr.ValidationField("token", "The reset link is invalid.")
	}
	if time.Now().Unix() > claim.Expires {
		return apperr.ValidationField("token", "The reset link has expired.")
	}
	if len(password) < 6 {
		return apperr.ValidationField("password", "The password must be at least 6 characters.")
	}

	u, err := s.users.Find(claim.UserID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.users.Save(u)
}

func (s *AuthService) issueTokens(u *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(u.ID, u.RoleName())
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(u.ID, u.RoleName())
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
