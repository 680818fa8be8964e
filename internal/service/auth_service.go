package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/DavidRprt/deskflow/internal/auth"
	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

// The same message covers unknown email and wrong password so callers cannot
// probe which one failed.
var ErrInvalidCredentials = domain.AuthError("invalid credentials")

const passwordHashCost = 12

const minPasswordLength = 6

// AuthService turns credentials into a verifiable, time-bounded identity and
// gates everything else.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*domain.AccountSummary, string, error)
	Login(ctx context.Context, email, password string) (*domain.AccountSummary, string, error)
	ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword string) error
	// GetSession resolves a session token to the identity it names. It
	// returns (nil, nil) for an absent, malformed, tampered or expired token
	// and for inactive accounts: an invalid session is anonymous, not an
	// error.
	GetSession(ctx context.Context, token string) (*domain.Session, error)
}

type authService struct {
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(accounts repository.AccountRepository, profiles repository.ProfileRepository, secret []byte, tokenTTL time.Duration) AuthService {
	return &authService{
		accounts: accounts,
		profiles: profiles,
		secret:   secret,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, email, password, displayName string) (*domain.AccountSummary, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)

	if email == "" || password == "" || displayName == "" {
		return nil, "", domain.ValidationError("email, password and name are required")
	}
	if len(password) < minPasswordLength {
		return nil, "", domain.ValidationError("password must be at least 6 characters")
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ConflictError("email is already registered")
	} else if domain.CategoryOf(err) != domain.CategoryNotFound {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	profile := &domain.Profile{
		DisplayName: displayName,
		Locale:      "en",
	}
	account := &domain.Account{
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
	}
	// One transaction: a duplicate email slipping past the pre-check must
	// not leave an orphaned profile row behind.
	if err := s.accounts.CreateWithProfile(ctx, profile, account); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(account.ID, profile.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}

	return &domain.AccountSummary{
		ID:          account.ID,
		Email:       account.Email,
		DisplayName: profile.DisplayName,
		ProfileID:   profile.ID,
	}, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AccountSummary, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if domain.CategoryOf(err) == domain.CategoryNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !account.Active {
		return nil, "", domain.AuthError("account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.accounts.UpdateLastLogin(ctx, account.ID, s.now()); err != nil {
		return nil, "", err
	}

	profile, err := s.profiles.GetByID(ctx, account.ProfileID)
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(account.ID, account.ProfileID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}

	return &domain.AccountSummary{
		ID:          account.ID,
		Email:       account.Email,
		DisplayName: profile.DisplayName,
		ProfileID:   account.ProfileID,
	}, token, nil
}

func (s *authService) ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.ValidationError("both passwords are required")
	}
	if len(newPassword) < minPasswordLength {
		return domain.ValidationError("new password must be at least 6 characters")
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)) != nil {
		return domain.AuthError("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordHashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.accounts.UpdatePasswordHash(ctx, accountID, string(hash))
}

func (s *authService) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return nil, nil
		}
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if domain.CategoryOf(err) == domain.CategoryNotFound {
			return nil, nil
		}
		return nil, err
	}
	if !account.Active {
		return nil, nil
	}

	profile, err := s.profiles.GetByID(ctx, account.ProfileID)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Account: domain.AccountSummary{
			ID:          account.ID,
			Email:       account.Email,
			DisplayName: profile.DisplayName,
			ProfileID:   account.ProfileID,
		},
		Profile: *profile,
	}, nil
}
