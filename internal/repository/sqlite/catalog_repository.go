package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

const createCatalogTables = `
CREATE TABLE IF NOT EXISTS currencies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	symbol TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS statuses (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS client_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS project_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS professions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS skills (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS profession_skills (
	profession_id INTEGER NOT NULL REFERENCES professions(id),
	skill_id INTEGER NOT NULL REFERENCES skills(id),
	PRIMARY KEY (profession_id, skill_id)
);
CREATE TABLE IF NOT EXISTS themes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	primary_color TEXT NOT NULL DEFAULT '',
	secondary_color TEXT NOT NULL DEFAULT ''
);
`

// seedCatalogs fills the reference tables on first run. Status id 4 is the
// done status the task domain relies on.
const seedCatalogs = `
INSERT OR IGNORE INTO statuses (id, name, color) VALUES
	(1, 'To do', '#94a3b8'),
	(2, 'In progress', '#6366f1'),
	(3, 'Blocked', '#f59e0b'),
	(4, 'Done', '#22c55e'),
	(5, 'Cancelled', '#ef4444');
INSERT OR IGNORE INTO currencies (code, name, symbol) VALUES
	('ARS', 'Argentine peso', '$'),
	('EUR', 'Euro', '€'),
	('USD', 'US dollar', 'US$');
INSERT OR IGNORE INTO client_types (name, description) VALUES
	('Agency', 'Intermediary agency'),
	('Company', 'Established business'),
	('Individual', 'Direct individual client'),
	('Nonprofit', 'Nonprofit organization');
INSERT OR IGNORE INTO project_types (name) VALUES
	('Consulting'),
	('Design'),
	('Maintenance'),
	('Mobile app'),
	('Web development');
INSERT OR IGNORE INTO professions (name, description) VALUES
	('Designer', 'Visual and product design'),
	('Developer', 'Software development'),
	('Translator', 'Translation and localization'),
	('Writer', 'Copy and content writing');
INSERT OR IGNORE INTO skills (name) VALUES
	('Backend'),
	('Branding'),
	('Copywriting'),
	('Frontend'),
	('Illustration'),
	('Proofreading');
INSERT OR IGNORE INTO profession_skills (profession_id, skill_id)
SELECT p.id, s.id FROM professions p, skills s
WHERE (p.name = 'Developer' AND s.name IN ('Backend', 'Frontend'))
   OR (p.name = 'Designer' AND s.name IN ('Branding', 'Illustration'))
   OR (p.name = 'Writer' AND s.name IN ('Copywriting', 'Proofreading'));
INSERT OR IGNORE INTO themes (name, primary_color, secondary_color) VALUES
	('Emerald', '#10b981', '#064e3b'),
	('Indigo', '#6366f1', '#312e81'),
	('Rose', '#f43f5e', '#881337');
`

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCatalogTables); err != nil {
		return fmt.Errorf("create catalog tables: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, seedCatalogs); err != nil {
		return fmt.Errorf("seed catalogs: %w", err)
	}
	return nil
}

func (r *CatalogRepository) Currencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, name, symbol FROM currencies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

func (r *CatalogRepository) Statuses(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color FROM statuses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []domain.Status
	for rows.Next() {
		var s domain.Status
		if err := rows.Scan(&s.ID, &s.Name, &s.Color); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *CatalogRepository) ClientTypes(ctx context.Context) ([]domain.ClientType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM client_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list client types: %w", err)
	}
	defer rows.Close()

	var types []domain.ClientType
	for rows.Next() {
		var t domain.ClientType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("scan client type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *CatalogRepository) ProjectTypes(ctx context.Context) ([]domain.ProjectType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM project_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list project types: %w", err)
	}
	defer rows.Close()

	var types []domain.ProjectType
	for rows.Next() {
		var t domain.ProjectType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan project type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *CatalogRepository) Professions(ctx context.Context) ([]domain.Profession, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM professions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list professions: %w", err)
	}
	defer rows.Close()

	var professions []domain.Profession
	for rows.Next() {
		var p domain.Profession
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, fmt.Errorf("scan profession: %w", err)
		}
		professions = append(professions, p)
	}
	return professions, rows.Err()
}

func (r *CatalogRepository) SkillsByProfession(ctx context.Context, professionID int64) ([]domain.Skill, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT s.id, s.name
FROM skills s
JOIN profession_skills ps ON ps.skill_id = s.id
WHERE ps.profession_id = ?
ORDER BY s.name`,
		professionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list profession skills: %w", err)
	}
	defer rows.Close()

	var skills []domain.Skill
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *CatalogRepository) Themes(ctx context.Context) ([]domain.Theme, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, primary_color, secondary_color FROM themes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var themes []domain.Theme
	for rows.Next() {
		var t domain.Theme
		if err := rows.Scan(&t.ID, &t.Name, &t.PrimaryColor, &t.SecondaryColor); err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		themes = append(themes, t)
	}
	return themes, rows.Err()
}
