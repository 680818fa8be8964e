package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
)

const createAccountsTable = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE COLLATE NOCASE,
	password_hash TEXT NOT NULL,
	active INTEGER NOT NULL DEFAULT 1,
	profile_id INTEGER NOT NULL REFERENCES profiles(id),
	last_login_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAccountsTable); err != nil {
		return fmt.Errorf("create accounts table: %w", err)
	}
	return nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (int64, error) {
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO accounts (email, password_hash, active, profile_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		account.Email,
		account.PasswordHash,
		account.Active,
		account.ProfileID,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, domain.ConflictError("email is already registered")
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("account last insert id: %w", err)
	}
	account.ID = id
	return id, nil
}

func (r *AccountRepository) CreateWithProfile(ctx context.Context, profile *domain.Profile, account *domain.Account) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create account: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
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
		return fmt.Errorf("insert profile: %w", err)
	}
	profileID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("profile last insert id: %w", err)
	}

	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	account.ProfileID = profileID

	res, err = tx.ExecContext(ctx, `
INSERT INTO accounts (email, password_hash, active, profile_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		account.Email,
		account.PasswordHash,
		account.Active,
		account.ProfileID,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return domain.ConflictError("email is already registered")
		}
		return fmt.Errorf("insert account: %w", err)
	}
	accountID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("account last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create account: %w", err)
	}
	profile.ID = profileID
	account.ID = accountID
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, active, profile_id, last_login_at, created_at, updated_at
FROM accounts
WHERE email = ?`,
		email,
	)
	return scanAccount(row)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, active, profile_id, last_login_at, created_at, updated_at
FROM accounts
WHERE id = ?`,
		id,
	)
	return scanAccount(row)
}

func (r *AccountRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, `
UPDATE accounts SET last_login_at = ?, updated_at = ? WHERE id = ?`,
		at.UTC(), time.Now().UTC(), id,
	); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password hash rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFoundError("account not found")
	}
	return nil
}

func scanAccount(row interface {
	Scan(dest ...any) error
}) (*domain.Account, error) {
	var account domain.Account
	var lastLogin sql.NullTime
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Active,
		&account.ProfileID,
		&lastLogin,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("account not found")
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	if lastLogin.Valid {
		account.LastLoginAt = &lastLogin.Time
	}
	return &account, nil
}
