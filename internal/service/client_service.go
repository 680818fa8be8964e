package service

import (
	"context"
	"strings"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

// ClientInput carries the fields accepted when creating a client.
type ClientInput struct {
	Name   string
	Phone  string
	Email  string
	TypeID *int64
}

// ClientUpdate is a partial update; nil fields are left untouched.
type ClientUpdate struct {
	Name   *string
	Phone  *string
	Email  *string
	TypeID *int64
	Active *bool
}

// ClientService manages the freelancer's clients. Deleting a client is a
// soft delete: the record is deactivated, never removed.
type ClientService interface {
	List(ctx context.Context, profileID int64, filter domain.ClientFilter) ([]domain.Client, error)
	Get(ctx context.Context, id, profileID int64) (*domain.Client, error)
	Create(ctx context.Context, profileID int64, input ClientInput) (*domain.Client, error)
	Update(ctx context.Context, id, profileID int64, update ClientUpdate) (*domain.Client, error)
	Deactivate(ctx context.Context, id, profileID int64) error
	Reactivate(ctx context.Context, id, profileID int64) error
	Stats(ctx context.Context, profileID int64) (*domain.ClientStats, error)
}

type clientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) ClientService {
	return &clientService{clients: clients}
}

func (s *clientService) List(ctx context.Context, profileID int64, filter domain.ClientFilter) ([]domain.Client, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.clients.List(ctx, profileID, filter)
}

func (s *clientService) Get(ctx context.Context, id, profileID int64) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id, profileID)
}

func (s *clientService) Create(ctx context.Context, profileID int64, input ClientInput) (*domain.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ValidationError("client name is required")
	}

	client := &domain.Client{
		Name:      name,
		Phone:     strings.TrimSpace(input.Phone),
		Email:     strings.TrimSpace(input.Email),
		TypeID:    input.TypeID,
		Active:    true,
		SignedUp:  time.Now().UTC(),
		ProfileID: profileID,
	}
	if _, err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return s.clients.GetByID(ctx, client.ID, profileID)
}

func (s *clientService) Update(ctx context.Context, id, profileID int64, update ClientUpdate) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id, profileID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.ValidationError("client name cannot be empty")
		}
		client.Name = name
	}
	if update.Phone != nil {
		client.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Email != nil {
		client.Email = strings.TrimSpace(*update.Email)
	}
	if update.TypeID != nil {
		client.TypeID = update.TypeID
	}
	if update.Active != nil {
		client.Active = *update.Active
	}

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return s.clients.GetByID(ctx, id, profileID)
}

func (s *clientService) Deactivate(ctx context.Context, id, profileID int64) error {
	return s.clients.SetActive(ctx, id, profileID, false)
}

func (s *clientService) Reactivate(ctx context.Context, id, profileID int64) error {
	return s.clients.SetActive(ctx, id, profileID, true)
}

func (s *clientService) Stats(ctx context.Context, profileID int64) (*domain.ClientStats, error) {
	return s.clients.Stats(ctx, profileID)
}
