package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/service"
)

type projectRequest struct {
	Name     string     `json:"name" binding:"required"`
	ClientID int64      `json:"client_id" binding:"required"`
	TypeID   *int64     `json:"type_id"`
	Budget   float64    `json:"budget"`
	DueDate  *time.Time `json:"due_date"`
}

type projectUpdateRequest struct {
	Name     *string    `json:"name"`
	ClientID *int64     `json:"client_id"`
	TypeID   *int64     `json:"type_id"`
	StatusID *int64     `json:"status_id"`
	Budget   *float64   `json:"budget"`
	DueDate  *time.Time `json:"due_date"`
}

type setPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

type projectResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ClientID   int64   `json:"client_id"`
	ClientName string  `json:"client_name,omitempty"`
	TypeID     *int64  `json:"type_id,omitempty"`
	TypeName   string  `json:"type_name,omitempty"`
	StatusID   int64   `json:"status_id"`
	StatusName string  `json:"status_name,omitempty"`
	Budget     float64 `json:"budget"`
	Archived   bool    `json:"archived"`
	Pinned     bool    `json:"pinned"`
	Paid       bool    `json:"paid"`
	StartDate  string  `json:"start_date"`
	DueDate    *string `json:"due_date,omitempty"`
}

type projectOverviewResponse struct {
	projectResponse
	Tasks          []taskResponse `json:"tasks"`
	Progress       int            `json:"progress"`
	Timing         string         `json:"timing"`
	TotalExpenses  float64        `json:"total_expenses"`
	NetProfit      float64        `json:"net_profit"`
	PercentSpent   int            `json:"percent_spent"`
	EstimatedHours int            `json:"estimated_hours"`
	CompletedHours int            `json:"completed_hours"`
}

func projectToResponse(project domain.Project) projectResponse {
	resp := projectResponse{
		ID:         project.ID,
		Name:       project.Name,
		ClientID:   project.ClientID,
		ClientName: project.ClientName,
		TypeID:     project.TypeID,
		TypeName:   project.TypeName,
		StatusID:   project.StatusID,
		StatusName: project.StatusName,
		Budget:     project.Budget,
		Archived:   project.Archived,
		Pinned:     project.Pinned,
		Paid:       project.Paid,
		StartDate:  project.StartDate.Format(time.RFC3339),
	}
	if project.DueDate != nil {
		v := project.DueDate.Format(time.RFC3339)
		resp.DueDate = &v
	}
	return resp
}

func overviewToResponse(overview domain.ProjectOverview) projectOverviewResponse {
	resp := projectOverviewResponse{
		projectResponse: projectToResponse(overview.Project),
		Tasks:           make([]taskResponse, len(overview.Tasks)),
		Progress:        overview.Progress,
		Timing:          overview.Timing,
		TotalExpenses:   overview.TotalExpenses,
		NetProfit:       overview.NetProfit,
		PercentSpent:    overview.PercentSpent,
		EstimatedHours:  overview.EstimatedHours,
		CompletedHours:  overview.CompletedHours,
	}
	for i := range overview.Tasks {
		resp.Tasks[i] = taskToResponse(overview.Tasks[i])
	}
	return resp
}

func (h *Handler) listProjects(c *gin.Context) {
	session := currentSession(c)

	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("include_archived", "false"))
	overviews, err := h.projects.List(c.Request.Context(), session.Profile.ID, includeArchived)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]projectOverviewResponse, len(overviews))
	for i := range overviews {
		resp[i] = overviewToResponse(overviews[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	overview, err := h.projects.Get(c.Request.Context(), id, session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overviewToResponse(*overview))
}

func (h *Handler) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	project, err := h.projects.Create(c.Request.Context(), session.Profile.ID, service.ProjectInput{
		Name:     req.Name,
		ClientID: req.ClientID,
		TypeID:   req.TypeID,
		Budget:   req.Budget,
		DueDate:  req.DueDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projectToResponse(*project))
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req projectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	project, err := h.projects.Update(c.Request.Context(), id, session.Profile.ID, service.ProjectUpdate{
		Name:     req.Name,
		ClientID: req.ClientID,
		TypeID:   req.TypeID,
		StatusID: req.StatusID,
		Budget:   req.Budget,
		DueDate:  req.DueDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) togglePinned(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	project, err := h.projects.TogglePinned(c.Request.Context(), id, session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) toggleArchived(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	project, err := h.projects.ToggleArchived(c.Request.Context(), id, session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) setProjectPaid(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req setPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	project, err := h.projects.SetPaid(c.Request.Context(), id, session.Profile.ID, *req.Paid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	if err := h.projects.Delete(c.Request.Context(), id, session.Profile.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
