package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DavidRprt/deskflow/internal/service"
)

const maxAvatarSize = 5 << 20

type profileUpdateRequest struct {
	DisplayName  *string    `json:"display_name"`
	BirthDate    *time.Time `json:"birth_date"`
	Locale       *string    `json:"locale"`
	DarkMode     *bool      `json:"dark_mode"`
	ThemeID      *int64     `json:"theme_id"`
	ProfessionID *int64     `json:"profession_id"`
}

type profileResponse struct {
	ID             int64   `json:"id"`
	DisplayName    string  `json:"display_name"`
	BirthDate      *string `json:"birth_date,omitempty"`
	Locale         string  `json:"locale"`
	DarkMode       bool    `json:"dark_mode"`
	ThemeID        *int64  `json:"theme_id,omitempty"`
	ThemeName      string  `json:"theme_name,omitempty"`
	ProfessionID   *int64  `json:"profession_id,omitempty"`
	ProfessionName string  `json:"profession_name,omitempty"`
	AvatarURL      string  `json:"avatar_url,omitempty"`
}

func profileToResponse(view service.ProfileView) profileResponse {
	resp := profileResponse{
		ID:             view.Profile.ID,
		DisplayName:    view.Profile.DisplayName,
		Locale:         view.Profile.Locale,
		DarkMode:       view.Profile.DarkMode,
		ThemeID:        view.Profile.ThemeID,
		ThemeName:      view.ThemeName,
		ProfessionID:   view.Profile.ProfessionID,
		ProfessionName: view.ProfessionName,
		AvatarURL:      view.AvatarURL,
	}
	if view.Profile.BirthDate != nil {
		v := view.Profile.BirthDate.Format(time.RFC3339)
		resp.BirthDate = &v
	}
	return resp
}

func (h *Handler) getProfile(c *gin.Context) {
	session := currentSession(c)

	view, err := h.settings.Profile(c.Request.Context(), session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(*view))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	view, err := h.settings.UpdateProfile(c.Request.Context(), session.Profile.ID, service.ProfileUpdate{
		DisplayName:  req.DisplayName,
		BirthDate:    req.BirthDate,
		Locale:       req.Locale,
		DarkMode:     req.DarkMode,
		ThemeID:      req.ThemeID,
		ProfessionID: req.ProfessionID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(*view))
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	session := currentSession(c)

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar exceeds the 5MB limit"})
		return
	}

	view, err := h.settings.UploadAvatar(c.Request.Context(), session.Profile.ID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(*view))
}

func (h *Handler) removeAvatar(c *gin.Context) {
	session := currentSession(c)

	if err := h.settings.RemoveAvatar(c.Request.Context(), session.Profile.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listProfessions(c *gin.Context) {
	professions, err := h.settings.Professions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]gin.H, len(professions))
	for i, p := range professions {
		resp[i] = gin.H{"id": p.ID, "name": p.Name, "description": p.Description}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listSkills(c *gin.Context) {
	professionID, ok := parseID(c)
	if !ok {
		return
	}

	skills, err := h.settings.SkillsByProfession(c.Request.Context(), professionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]gin.H, len(skills))
	for i, s := range skills {
		resp[i] = gin.H{"id": s.ID, "name": s.Name}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listThemes(c *gin.Context) {
	themes, err := h.settings.Themes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]gin.H, len(themes))
	for i, t := range themes {
		resp[i] = gin.H{
			"id":              t.ID,
			"name":            t.Name,
			"primary_color":   t.PrimaryColor,
			"secondary_color": t.SecondaryColor,
		}
	}
	c.JSON(http.StatusOK, resp)
}
