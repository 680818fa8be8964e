package domain

import "time"

// Account is the authentication credential: it owns exactly one Profile and
// every business entity in the system is ultimately scoped to it.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Active       bool
	ProfileID    int64
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds the user-facing personal data, distinct from the credential.
type Profile struct {
	ID           int64
	DisplayName  string
	AvatarKey    string
	BirthDate    *time.Time
	Locale       string
	DarkMode     bool
	ThemeID      *int64
	ProfessionID *int64
}

// AccountSummary is the credential view returned to callers, never carrying
// the password hash.
type AccountSummary struct {
	ID          int64
	Email       string
	DisplayName string
	ProfileID   int64
}

// Session is a verified identity, resolved from a session token.
type Session struct {
	Account AccountSummary
	Profile Profile
}
