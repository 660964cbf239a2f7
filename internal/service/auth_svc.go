package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/supplykingmv/vcard/internal/domain"
	"github.com/supplykingmv/vcard/pkg/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Mailer delivers password-reset messages. The console implementation
// stands in for a real mail gateway.
type Mailer interface {
	SendPasswordReset(email, token string) error
}

type AuthSvc struct {
	users  UserStore
	mailer Mailer

	accessTTL  time.Duration
	refreshTTL time.Duration // remember-me sessions
	sessionTTL time.Duration // session-only sign-ins
	resetTTL   time.Duration
}

func NewAuthSvc(users UserStore, mailer Mailer, accessTTL, refreshTTL, sessionTTL, resetTTL time.Duration) *AuthSvc {
	return &AuthSvc{
		users:      users,
		mailer:     mailer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

func (s *AuthSvc) Register(ctx context.Context, email, password, name string, role domain.Role, active bool) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleViewer
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		IsActive:     active,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// rememberMe picks the long refresh TTL; otherwise the refresh token
// only outlives the browser session window.
func (s *AuthSvc) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.User, string, string, error) {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, "", "", ErrInactiveAccount
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	access, err := auth.CreateAccessToken(u.ID, string(u.Role), u.Email, s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	ttl := s.sessionTTL
	if rememberMe {
		ttl = s.refreshTTL
	}
	refresh, err := auth.CreateToken(auth.KindRefresh, u.ID, string(u.Role), u.Email, ttl)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthSvc) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := auth.ParseValidate(refreshToken, auth.KindRefresh)
	if err != nil {
		return "", err
	}
	u, err := s.users.ByID(ctx, claims.Sub)
	if err != nil || !u.IsActive {
		return "", ErrInvalidCredentials
	}
	return auth.CreateAccessToken(u.ID, string(u.Role), u.Email, s.accessTTL)
}

// RequestPasswordReset issues a single-purpose reset token and hands
// it to the mailer. The token is the whole state; nothing is stored.
func (s *AuthSvc) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return err
	}
	token, err := auth.CreateToken(auth.KindReset, u.ID, string(u.Role), u.Email, s.resetTTL)
	if err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(u.Email, token)
}

// ConfirmPasswordReset sets a new password from a valid reset token.
func (s *AuthSvc) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	claims, err := auth.ParseValidate(token, auth.KindReset)
	if err != nil {
		return err
	}
	if newPassword == "" {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.users.UpdateFields(ctx, claims.Sub, map[string]any{"password_hash": string(hash)})
	return err
}

// ChangePassword re-authenticates with the current password before
// accepting the new one.
func (s *AuthSvc) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrWrongPassword
	}
	if next == "" {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.users.UpdateFields(ctx, userID, map[string]any{"password_hash": string(hash)})
	return err
}
