package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/storage"
)

type fakeCatalogRepo struct{}

func (r *fakeCatalogRepo) Init(ctx context.Context) error { return nil }

func (r *fakeCatalogRepo) Currencies(ctx context.Context) ([]domain.Currency, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) Statuses(ctx context.Context) ([]domain.Status, error) { return nil, nil }

func (r *fakeCatalogRepo) ClientTypes(ctx context.Context) ([]domain.ClientType, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) ProjectTypes(ctx context.Context) ([]domain.ProjectType, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) Professions(ctx context.Context) ([]domain.Profession, error) {
	return []domain.Profession{{ID: 1, Name: "Developer"}}, nil
}

func (r *fakeCatalogRepo) SkillsByProfession(ctx context.Context, professionID int64) ([]domain.Skill, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) Themes(ctx context.Context) ([]domain.Theme, error) {
	return []domain.Theme{{ID: 1, Name: "Indigo"}}, nil
}

type fakeObjectStore struct {
	objects map[string]string
	deleted []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string]string)}
}

func (s *fakeObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = string(data)
	return nil
}

func (s *fakeObjectStore) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeObjectStore) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var objects []storage.ObjectInfo
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, storage.ObjectInfo{Key: key})
		}
	}
	return objects, nil
}

func (s *fakeObjectStore) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://cdn.test/" + key, nil
}

func newTestSettingsService(store storage.Service) (SettingsService, *fakeProfileRepo) {
	profiles := newFakeProfileRepo()
	return NewSettingsService(profiles, &fakeCatalogRepo{}, store), profiles
}

func TestUploadAvatarSweepsStaleObjects(t *testing.T) {
	store := newFakeObjectStore()
	svc, profiles := newTestSettingsService(store)
	ctx := context.Background()

	profile := &domain.Profile{DisplayName: "Ana", Locale: "en", AvatarKey: "avatars/1/current.png"}
	_, err := profiles.Create(ctx, profile)
	require.NoError(t, err)

	// the referenced avatar, an object orphaned by an interrupted upload,
	// and another profile's avatar that must survive the sweep
	store.objects["avatars/1/current.png"] = "old"
	store.objects["avatars/1/orphan.png"] = "stale"
	store.objects["avatars/2/other.png"] = "keep"

	view, err := svc.UploadAvatar(ctx, profile.ID, "photo.PNG", "image/png", strings.NewReader("img"))
	require.NoError(t, err)

	updated, err := profiles.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(updated.AvatarKey, "avatars/1/"))
	require.True(t, strings.HasSuffix(updated.AvatarKey, ".png"))
	require.Equal(t, "https://cdn.test/"+updated.AvatarKey, view.AvatarURL)

	require.Contains(t, store.objects, updated.AvatarKey)
	require.Contains(t, store.objects, "avatars/2/other.png")
	require.NotContains(t, store.objects, "avatars/1/current.png")
	require.NotContains(t, store.objects, "avatars/1/orphan.png")
	require.Len(t, store.objects, 2)
}

func TestUploadAvatarRejectsUnknownType(t *testing.T) {
	svc, profiles := newTestSettingsService(newFakeObjectStore())
	ctx := context.Background()

	profile := &domain.Profile{DisplayName: "Ana", Locale: "en"}
	_, err := profiles.Create(ctx, profile)
	require.NoError(t, err)

	_, err = svc.UploadAvatar(ctx, profile.ID, "payload.exe", "application/octet-stream", strings.NewReader("x"))
	require.Equal(t, domain.CategoryValidation, domain.CategoryOf(err))
}

func TestUploadAvatarWithoutStorage(t *testing.T) {
	svc, profiles := newTestSettingsService(nil)
	ctx := context.Background()

	profile := &domain.Profile{DisplayName: "Ana", Locale: "en"}
	_, err := profiles.Create(ctx, profile)
	require.NoError(t, err)

	_, err = svc.UploadAvatar(ctx, profile.ID, "photo.png", "image/png", strings.NewReader("img"))
	require.Equal(t, domain.CategoryValidation, domain.CategoryOf(err))
}

func TestRemoveAvatar(t *testing.T) {
	store := newFakeObjectStore()
	svc, profiles := newTestSettingsService(store)
	ctx := context.Background()

	profile := &domain.Profile{DisplayName: "Ana", Locale: "en", AvatarKey: "avatars/1/current.png"}
	_, err := profiles.Create(ctx, profile)
	require.NoError(t, err)
	store.objects["avatars/1/current.png"] = "old"

	require.NoError(t, svc.RemoveAvatar(ctx, profile.ID))

	updated, err := profiles.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	require.Empty(t, updated.AvatarKey)
	require.NotContains(t, store.objects, "avatars/1/current.png")
}
