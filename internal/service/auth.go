package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"movie-app/internal/apperr"
	"movie-app/internal/auth"
	"movie-app/internal/domain/users"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	providerLocal  = "local"
	providerGoogle = "google"

	minPasswordLength = 6
)

type UserStore interface {
	Create(ctx context.Context, u *users.User) error
	Save(ctx context.Context, u *users.User) error
	GetByID(ctx context.Context, id uint) (*users.User, error)
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*users.User, error)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Session is what every successful sign-in returns.
type Session struct {
	User users.User `json:"user"`
	auth.Tokens
}

// GoogleIdentity holds the verified claims of a Google ID token.
type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

type AuthService struct {
	users  UserStore
	issuer *auth.Issuer
	log    *zap.Logger
}

func NewAuthService(store UserStore, issuer *auth.Issuer, log *zap.Logger) *AuthService {
	return &AuthService{users: store, issuer: issuer, log: log}
}

func (s *AuthService) Register(ctx context.Context, in Credentials) (*Session, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", apperr.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, apperr.ErrValidation)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("user with this email is already in the system: %w", apperr.ErrValidation)
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	pw := string(hashed)

	user := &users.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Password:     &pw,
		AuthProvider: providerLocal,
		Role:         users.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("user with this email is already in the system: %w", apperr.ErrValidation)
		}
		return nil, err
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, in Credentials) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user.Password == nil || *user.Password == "" {
		return nil, fmt.Errorf("this account uses Google sign-in: %w", apperr.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("invalid password: %w", apperr.ErrUnauthorized)
	}
	return s.session(user)
}

// Refresh exchanges a valid refresh token for a new token pair. The user is
// reloaded so role changes take effect.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("please sign in: %w", apperr.ErrUnauthorized)
	}
	claims, err := s.issuer.Parse(refreshToken, auth.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperr.ErrUnauthorized)
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

// GoogleSignIn finds the user by Google subject, then by email (linking the
// account), and creates one otherwise.
func (s *AuthService) GoogleSignIn(ctx context.Context, id GoogleIdentity) (*Session, error) {
	if id.Sub == "" || id.Email == "" {
		return nil, fmt.Errorf("google token missing required claims: %w", apperr.ErrUnauthorized)
	}

	user, err := s.users.GetByGoogleSub(ctx, id.Sub)
	if err == nil {
		return s.session(user)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	sub := id.Sub
	user, err = s.users.GetByEmail(ctx, normalizeEmail(id.Email))
	switch {
	case err == nil:
		user.GoogleSub = &sub
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info("google account linked", zap.Uint("user_id", user.ID))
	case errors.Is(err, apperr.ErrNotFound):
		user = &users.User{
			Name:         id.Name,
			Email:        normalizeEmail(id.Email),
			AuthProvider: providerGoogle,
			GoogleSub:    &sub,
			Role:         users.RoleUser,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info("user registered with google", zap.Uint("user_id", user.ID))
	default:
		return nil, err
	}

	return s.session(user)
}

func (s *AuthService) session(user *users.User) (*Session, error) {
	tokens, err := s.issuer.Issue(*user)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &Session{User: *user, Tokens: tokens}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
