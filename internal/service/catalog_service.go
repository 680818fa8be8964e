package service

import (
	"context"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

// CatalogService exposes the shared reference tables forms pick from.
type CatalogService interface {
	Currencies(ctx context.Context) ([]domain.Currency, error)
	Statuses(ctx context.Context) ([]domain.Status, error)
	ClientTypes(ctx context.Context) ([]domain.ClientType, error)
	ProjectTypes(ctx context.Context) ([]domain.ProjectType, error)
}

type catalogService struct {
	catalogs repository.CatalogRepository
}

func NewCatalogService(catalogs repository.CatalogRepository) CatalogService {
	return &catalogService{catalogs: catalogs}
}

func (s *catalogService) Currencies(ctx context.Context) ([]domain.Currency, error) {
	return s.catalogs.Currencies(ctx)
}

func (s *catalogService) Statuses(ctx context.Context) ([]domain.Status, error) {
	return s.catalogs.Statuses(ctx)
}

func (s *catalogService) ClientTypes(ctx context.Context) ([]domain.ClientType, error) {
	return s.catalogs.ClientTypes(ctx)
}

func (s *catalogService) ProjectTypes(ctx context.Context) ([]domain.ProjectType, error) {
	return s.catalogs.ProjectTypes(ctx)
}
