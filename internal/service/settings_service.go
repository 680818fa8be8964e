package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/repository"
	"github.com/DavidRprt/deskflow/internal/storage"
)

// ProfileView is the profile as shown on the settings page, with the catalog
// references resolved to names and the avatar exposed as a short-lived URL.
type ProfileView struct {
	Profile        domain.Profile
	ProfessionName string
	ThemeName      string
	AvatarURL      string
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName  *string
	BirthDate    *time.Time
	Locale       *string
	DarkMode     *bool
	ThemeID      *int64
	ProfessionID *int64
}

// SettingsService manages the profile and exposes the catalogs the settings
// page picks from. Avatar operations require object storage; when the server
// runs without a bucket configured they fail with a validation error.
type SettingsService interface {
	Profile(ctx context.Context, profileID int64) (*ProfileView, error)
	UpdateProfile(ctx context.Context, profileID int64, update ProfileUpdate) (*ProfileView, error)
	UploadAvatar(ctx context.Context, profileID int64, filename, contentType string, body io.Reader) (*ProfileView, error)
	RemoveAvatar(ctx context.Context, profileID int64) error
	Professions(ctx context.Context) ([]domain.Profession, error)
	SkillsByProfession(ctx context.Context, professionID int64) ([]domain.Skill, error)
	Themes(ctx context.Context) ([]domain.Theme, error)
}

const avatarURLTTL = time.Hour

type settingsService struct {
	profiles repository.ProfileRepository
	catalogs repository.CatalogRepository
	store    storage.Service
}

// NewSettingsService wires the settings surface. store may be nil when the
// server runs without object storage; avatar endpoints then report it as
// unavailable instead of failing at startup.
func NewSettingsService(profiles repository.ProfileRepository, catalogs repository.CatalogRepository, store storage.Service) SettingsService {
	return &settingsService{profiles: profiles, catalogs: catalogs, store: store}
}

func (s *settingsService) Profile(ctx context.Context, profileID int64) (*ProfileView, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, profile)
}

func (s *settingsService) UpdateProfile(ctx context.Context, profileID int64, update ProfileUpdate) (*ProfileView, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, domain.ValidationError("display name is required")
		}
		profile.DisplayName = name
	}
	if update.BirthDate != nil {
		profile.BirthDate = update.BirthDate
	}
	if update.Locale != nil {
		locale := strings.TrimSpace(*update.Locale)
		if locale == "" {
			return nil, domain.ValidationError("locale is required")
		}
		profile.Locale = locale
	}
	if update.DarkMode != nil {
		profile.DarkMode = *update.DarkMode
	}
	if update.ThemeID != nil {
		profile.ThemeID = update.ThemeID
	}
	if update.ProfessionID != nil {
		profile.ProfessionID = update.ProfessionID
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.buildView(ctx, profile)
}

func (s *settingsService) UploadAvatar(ctx context.Context, profileID int64, filename, contentType string, body io.Reader) (*ProfileView, error) {
	if s.store == nil {
		return nil, domain.ValidationError("avatar storage is not configured")
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return nil, domain.ValidationError("unsupported image type")
	}

	key := avatarPrefix(profileID) + uuid.NewString() + ext
	if err := s.store.Put(ctx, key, contentType, body); err != nil {
		return nil, err
	}

	oldKey := profile.AvatarKey
	profile.AvatarKey = key
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	// Best effort: the new avatar is already live, a stale object is harmless.
	if oldKey != "" && oldKey != key {
		_ = s.store.Delete(ctx, oldKey)
	}
	s.sweepAvatars(ctx, profileID, key)

	return s.buildView(ctx, profile)
}

func (s *settingsService) RemoveAvatar(ctx context.Context, profileID int64) error {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile.AvatarKey == "" {
		return nil
	}

	key := profile.AvatarKey
	profile.AvatarKey = ""
	if err := s.profiles.Update(ctx, profile); err != nil {
		return err
	}
	if s.store != nil {
		_ = s.store.Delete(ctx, key)
	}
	return nil
}

func avatarPrefix(profileID int64) string {
	return fmt.Sprintf("avatars/%d/", profileID)
}

// sweepAvatars removes every object under the profile's avatar prefix except
// the one currently referenced, so interrupted uploads cannot accumulate.
// Best effort like the old-key delete above.
func (s *settingsService) sweepAvatars(ctx context.Context, profileID int64, keep string) {
	objects, err := s.store.List(ctx, avatarPrefix(profileID))
	if err != nil {
		return
	}
	for _, obj := range objects {
		if obj.Key != keep {
			_ = s.store.Delete(ctx, obj.Key)
		}
	}
}

func (s *settingsService) Professions(ctx context.Context) ([]domain.Profession, error) {
	return s.catalogs.Professions(ctx)
}

func (s *settingsService) SkillsByProfession(ctx context.Context, professionID int64) ([]domain.Skill, error) {
	return s.catalogs.SkillsByProfession(ctx, professionID)
}

func (s *settingsService) Themes(ctx context.Context) ([]domain.Theme, error) {
	return s.catalogs.Themes(ctx)
}

func (s *settingsService) buildView(ctx context.Context, profile *domain.Profile) (*ProfileView, error) {
	view := &ProfileView{Profile: *profile}

	if profile.ProfessionID != nil {
		professions, err := s.catalogs.Professions(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range professions {
			if p.ID == *profile.ProfessionID {
				view.ProfessionName = p.Name
				break
			}
		}
	}
	if profile.ThemeID != nil {
		themes, err := s.catalogs.Themes(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range themes {
			if t.ID == *profile.ThemeID {
				view.ThemeName = t.Name
				break
			}
		}
	}
	if profile.AvatarKey != "" && s.store != nil {
		url, err := s.store.PresignGet(ctx, profile.AvatarKey, avatarURLTTL)
		if err == nil {
			view.AvatarURL = url
		}
	}

	return view, nil
}
