package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	display_name TEXT NOT NULL,
	avatar_key TEXT NOT NULL DEFAULT '',
	birth_date DATETIME,
	locale TEXT NOT NULL DEFAULT 'en',
	dark_mode INTEGER NOT NULL DEFAULT 0,
	theme_id INTEGER REFERENCES themes(id),
	profession_id INTEGER REFERENCES professions(id)
);
`

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (display_name, avatar_key, birth_date, locale, dark_mode, theme_id, profession_id)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile.DisplayName,
		profile.AvatarKey,
		nullTime(profile.BirthDate),
		profile.Locale,
		profile.DarkMode,
		nullInt(profile.ThemeID),
		nullInt(profile.ProfessionID),
	)
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("profile last insert id: %w", err)
	}
	profile.ID = id
	return id, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, display_name, avatar_key, birth_date, locale, dark_mode, theme_id, profession_id
FROM profiles
WHERE id = ?`,
		id,
	)

	var profile domain.Profile
	var birth sql.NullTime
	var themeID, professionID sql.NullInt64
	if err := row.Scan(
		&profile.ID,
		&profile.DisplayName,
		&profile.AvatarKey,
		&birth,
		&profile.Locale,
		&profile.DarkMode,
		&themeID,
		&professionID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("profile not found")
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	if birth.Valid {
		profile.BirthDate = &birth.Time
	}
	if themeID.Valid {
		profile.ThemeID = &themeID.Int64
	}
	if professionID.Valid {
		profile.ProfessionID = &professionID.Int64
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET display_name = ?, avatar_key = ?, birth_date = ?, locale = ?, dark_mode = ?, theme_id = ?, profession_id = ?
WHERE id = ?`,
		profile.DisplayName,
		profile.AvatarKey,
		nullTime(profile.BirthDate),
		profile.Locale,
		profile.DarkMode,
		nullInt(profile.ThemeID),
		nullInt(profile.ProfessionID),
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFoundError("profile not found")
	}
	return nil
}
