package repository

import (
	"context"

	"github.com/DavidRprt/deskflow/internal/domain"
)

// ClientRepository defines persistence operations for clients. Every read
// and write is scoped to the owning profile.
type ClientRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context, profileID int64, filter domain.ClientFilter) ([]domain.Client, error)
	GetByID(ctx context.Context, id, profileID int64) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (int64, error)
	Update(ctx context.Context, client *domain.Client) error
	SetActive(ctx context.Context, id, profileID int64, active bool) error
	Stats(ctx context.Context, profileID int64) (*domain.ClientStats, error)
}
