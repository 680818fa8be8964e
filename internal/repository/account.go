package repository

import (
	"context"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
)

// AccountRepository defines persistence operations for account credentials.
// Emails are stored lowercased; lookups are exact matches on the stored form.
type AccountRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, account *domain.Account) (int64, error)
	// CreateWithProfile inserts the profile and its owning account in a
	// single transaction; a failure on either insert rolls back both.
	CreateWithProfile(ctx context.Context, profile *domain.Profile, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// ProfileRepository defines persistence operations for user profiles.
type ProfileRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, profile *domain.Profile) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}
