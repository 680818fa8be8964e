package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DavidRprt/deskflow/internal/auth"
	"github.com/DavidRprt/deskflow/internal/domain"
)

type fakeAccountRepo struct {
	accounts map[int64]*domain.Account
	profiles *fakeProfileRepo
	nextID   int64
}

func newFakeAccountRepo(profiles *fakeProfileRepo) *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[int64]*domain.Account), profiles: profiles, nextID: 1}
}

func (r *fakeAccountRepo) Init(ctx context.Context) error { return nil }

func (r *fakeAccountRepo) Create(ctx context.Context, account *domain.Account) (int64, error) {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return 0, domain.ConflictError("email is already registered")
		}
	}
	account.ID = r.nextID
	r.nextID++
	copied := *account
	r.accounts[account.ID] = &copied
	return account.ID, nil
}

func (r *fakeAccountRepo) CreateWithProfile(ctx context.Context, profile *domain.Profile, account *domain.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return domain.ConflictError("email is already registered")
		}
	}
	if _, err := r.profiles.Create(ctx, profile); err != nil {
		return err
	}
	account.ProfileID = profile.ID
	if _, err := r.Create(ctx, account); err != nil {
		return err
	}
	return nil
}

func (r *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, domain.NotFoundError("account not found")
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.NotFoundError("account not found")
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	account, ok := r.accounts[id]
	if !ok {
		return domain.NotFoundError("account not found")
	}
	account.LastLoginAt = &at
	return nil
}

func (r *fakeAccountRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	account, ok := r.accounts[id]
	if !ok {
		return domain.NotFoundError("account not found")
	}
	account.PasswordHash = hash
	return nil
}

type fakeProfileRepo struct {
	profiles map[int64]*domain.Profile
	nextID   int64
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[int64]*domain.Profile), nextID: 1}
}

func (r *fakeProfileRepo) Init(ctx context.Context) error { return nil }

func (r *fakeProfileRepo) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	profile.ID = r.nextID
	r.nextID++
	copied := *profile
	r.profiles[profile.ID] = &copied
	return profile.ID, nil
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, domain.NotFoundError("profile not found")
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return domain.NotFoundError("profile not found")
	}
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

var testSecret = []byte("test-secret")

func newTestAuthService() (AuthService, *fakeAccountRepo, *fakeProfileRepo) {
	profiles := newFakeProfileRepo()
	accounts := newFakeAccountRepo(profiles)
	return NewAuthService(accounts, profiles, testSecret, time.Hour), accounts, profiles
}

func TestRegister(t *testing.T) {
	svc, accounts, _ := newTestAuthService()
	ctx := context.Background()

	account, token, err := svc.Register(ctx, "  Ana@Example.COM ", "hunter22", "Ana")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", account.Email)
	require.Equal(t, "Ana", account.DisplayName)
	require.NotZero(t, account.ProfileID)

	claims, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, account.ID, claims.AccountID)
	require.Equal(t, account.ProfileID, claims.ProfileID)

	stored, err := accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.True(t, stored.Active)
	require.NotEqual(t, "hunter22", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		name        string
		email       string
		password    string
		displayName string
	}{
		{"missing email", "", "hunter22", "Ana"},
		{"missing password", "ana@example.com", "", "Ana"},
		{"missing name", "ana@example.com", "hunter22", "  "},
		{"short password", "ana@example.com", "12345", "Ana"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tc.email, tc.password, tc.displayName)
			require.Equal(t, domain.CategoryValidation, domain.CategoryOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, profiles := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "ANA@example.com", "hunter23", "Other Ana")
	require.Equal(t, domain.CategoryConflict, domain.CategoryOf(err))

	// the rejected registration must not leave a profile behind
	require.Len(t, profiles.profiles, 1)
}

func TestLogin(t *testing.T) {
	svc, accounts, _ := newTestAuthService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	account, token, err := svc.Login(ctx, "ana@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, registered.ID, account.ID)
	require.NotEmpty(t, token)

	stored, err := accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLoginDoesNotRevealWhichFieldFailed(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(ctx, "nobody@example.com", "hunter22")
	_, _, wrongErr := svc.Login(ctx, "ana@example.com", "wrong-password")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
	require.Equal(t, domain.CategoryAuth, domain.CategoryOf(unknownErr))
	require.Equal(t, domain.CategoryAuth, domain.CategoryOf(wrongErr))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, accounts, _ := newTestAuthService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)
	accounts.accounts[registered.ID].Active = false

	_, _, err = svc.Login(ctx, "ana@example.com", "hunter22")
	require.Equal(t, domain.CategoryAuth, domain.CategoryOf(err))
	require.NotEqual(t, ErrInvalidCredentials.Error(), err.Error())
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, registered.ID, "wrong", "new-password")
	require.Equal(t, domain.CategoryAuth, domain.CategoryOf(err))

	err = svc.ChangePassword(ctx, registered.ID, "hunter22", "12345")
	require.Equal(t, domain.CategoryValidation, domain.CategoryOf(err))

	require.NoError(t, svc.ChangePassword(ctx, registered.ID, "hunter22", "new-password"))

	_, _, err = svc.Login(ctx, "ana@example.com", "hunter22")
	require.Error(t, err)
	_, _, err = svc.Login(ctx, "ana@example.com", "new-password")
	require.NoError(t, err)
}

func TestGetSession(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	registered, token, err := svc.Register(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	session, err := svc.GetSession(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, registered.ID, session.Account.ID)
	require.Equal(t, registered.ProfileID, session.Profile.ID)
	require.Equal(t, "Ana", session.Profile.DisplayName)
}

func TestGetSessionAnonymousCases(t *testing.T) {
	svc, accounts, _ := newTestAuthService()
	ctx := context.Background()

	registered, token, err := svc.Register(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		session, err := svc.GetSession(ctx, "")
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("malformed token", func(t *testing.T) {
		session, err := svc.GetSession(ctx, "not-a-token")
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := auth.GenerateToken(registered.ID, registered.ProfileID, []byte("other-secret"), time.Hour)
		require.NoError(t, err)
		session, err := svc.GetSession(ctx, forged)
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("deactivated account", func(t *testing.T) {
		accounts.accounts[registered.ID].Active = false
		defer func() { accounts.accounts[registered.ID].Active = true }()
		session, err := svc.GetSession(ctx, token)
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("deleted account", func(t *testing.T) {
		stale, err := auth.GenerateToken(registered.ID+100, registered.ProfileID, testSecret, time.Hour)
		require.NoError(t, err)
		session, err := svc.GetSession(ctx, stale)
		require.NoError(t, err)
		require.Nil(t, session)
	})
}
