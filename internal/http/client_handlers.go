package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/service"
)

type clientRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	TypeID *int64 `json:"type_id"`
}

type clientUpdateRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	TypeID *int64  `json:"type_id"`
	Active *bool   `json:"active"`
}

type clientResponse struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	TypeID             *int64 `json:"type_id,omitempty"`
	TypeName           string `json:"type_name,omitempty"`
	Active             bool   `json:"active"`
	SignedUp           string `json:"signed_up"`
	ProjectCount       int    `json:"project_count"`
	ActiveProjectCount int    `json:"active_project_count"`
}

func clientToResponse(client domain.Client) clientResponse {
	return clientResponse{
		ID:                 client.ID,
		Name:               client.Name,
		Phone:              client.Phone,
		Email:              client.Email,
		TypeID:             client.TypeID,
		TypeName:           client.TypeName,
		Active:             client.Active,
		SignedUp:           client.SignedUp.Format(time.RFC3339),
		ProjectCount:       client.ProjectCount,
		ActiveProjectCount: client.ActiveProjectCount,
	}
}

func (h *Handler) listClients(c *gin.Context) {
	session := currentSession(c)

	filter := domain.ClientFilter{Search: c.Query("search")}
	if typeID, err := strconv.ParseInt(c.Query("type_id"), 10, 64); err == nil && typeID > 0 {
		filter.TypeID = typeID
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flag active"})
			return
		}
		filter.Active = &active
	}

	clients, err := h.clients.List(c.Request.Context(), session.Profile.ID, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]clientResponse, len(clients))
	for i := range clients {
		resp[i] = clientToResponse(clients[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	client, err := h.clients.Get(c.Request.Context(), id, session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientToResponse(*client))
}

func (h *Handler) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	client, err := h.clients.Create(c.Request.Context(), session.Profile.ID, service.ClientInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		TypeID: req.TypeID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clientToResponse(*client))
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req clientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	client, err := h.clients.Update(c.Request.Context(), id, session.Profile.ID, service.ClientUpdate{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		TypeID: req.TypeID,
		Active: req.Active,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientToResponse(*client))
}

func (h *Handler) deactivateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	if err := h.clients.Deactivate(c.Request.Context(), id, session.Profile.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deactivated": id})
}

func (h *Handler) reactivateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	if err := h.clients.Reactivate(c.Request.Context(), id, session.Profile.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reactivated": id})
}

func (h *Handler) clientStats(c *gin.Context) {
	session := currentSession(c)

	stats, err := h.clients.Stats(c.Request.Context(), session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    stats.Total,
		"active":   stats.Active,
		"inactive": stats.Inactive,
	})
}
