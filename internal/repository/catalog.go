package repository

import (
	"context"

	"github.com/DavidRprt/deskflow/internal/domain"
)

// CatalogRepository serves the shared reference tables (currencies, task and
// project statuses, client/project types, professions, skills, themes).
// Init seeds the defaults on an empty database.
type CatalogRepository interface {
	Init(ctx context.Context) error
	Currencies(ctx context.Context) ([]domain.Currency, error)
	Statuses(ctx context.Context) ([]domain.Status, error)
	ClientTypes(ctx context.Context) ([]domain.ClientType, error)
	ProjectTypes(ctx context.Context) ([]domain.ProjectType, error)
	Professions(ctx context.Context) ([]domain.Profession, error)
	SkillsByProfession(ctx context.Context, professionID int64) ([]domain.Skill, error)
	Themes(ctx context.Context) ([]domain.Theme, error)
}
