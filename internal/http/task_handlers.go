package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/service"
)

type taskRequest struct {
	Name           string     `json:"name" binding:"required"`
	Description    string     `json:"description"`
	Importance     int        `json:"importance"`
	EstimatedHours int        `json:"estimated_hours"`
	StatusID       int64      `json:"status_id"`
	StartDate      *time.Time `json:"start_date"`
	DueDate        *time.Time `json:"due_date"`
}

type taskUpdateRequest struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	Importance     *int       `json:"importance"`
	EstimatedHours *int       `json:"estimated_hours"`
	StatusID       *int64     `json:"status_id"`
	StartDate      *time.Time `json:"start_date"`
	DueDate        *time.Time `json:"due_date"`
}

type taskResponse struct {
	ID             int64   `json:"id"`
	ProjectID      int64   `json:"project_id"`
	ProjectName    string  `json:"project_name,omitempty"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Importance     int     `json:"importance"`
	EstimatedHours int     `json:"estimated_hours"`
	StatusID       int64   `json:"status_id"`
	StatusName     string  `json:"status_name,omitempty"`
	Done           bool    `json:"done"`
	StartDate      *string `json:"start_date,omitempty"`
	DueDate        *string `json:"due_date,omitempty"`
	CompletedAt    *string `json:"completed_at,omitempty"`
}

func taskToResponse(task domain.Task) taskResponse {
	resp := taskResponse{
		ID:             task.ID,
		ProjectID:      task.ProjectID,
		ProjectName:    task.ProjectName,
		Name:           task.Name,
		Description:    task.Description,
		Importance:     task.Importance,
		EstimatedHours: task.EstimatedHours,
		StatusID:       task.StatusID,
		StatusName:     task.StatusName,
		Done:           task.Done(),
	}
	if task.StartDate != nil {
		v := task.StartDate.Format(time.RFC3339)
		resp.StartDate = &v
	}
	if task.DueDate != nil {
		v := task.DueDate.Format(time.RFC3339)
		resp.DueDate = &v
	}
	if task.CompletedAt != nil {
		v := task.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &v
	}
	return resp
}

func (h *Handler) listTasks(c *gin.Context) {
	projectID, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	tasks, err := h.tasks.ListByProject(c.Request.Context(), projectID, session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]taskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(tasks[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	task, err := h.tasks.Get(c.Request.Context(), id, session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(*task))
}

func (h *Handler) createTask(c *gin.Context) {
	projectID, ok := parseID(c)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	task, err := h.tasks.Create(c.Request.Context(), projectID, session.Profile.ID, service.TaskInput{
		Name:           req.Name,
		Description:    req.Description,
		Importance:     req.Importance,
		EstimatedHours: req.EstimatedHours,
		StatusID:       req.StatusID,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(*task))
}

func (h *Handler) updateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	task, err := h.tasks.Update(c.Request.Context(), id, session.Profile.ID, domain.TaskUpdate{
		Name:           req.Name,
		Description:    req.Description,
		Importance:     req.Importance,
		EstimatedHours: req.EstimatedHours,
		StatusID:       req.StatusID,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(*task))
}

func (h *Handler) completeTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	task, err := h.tasks.Complete(c.Request.Context(), id, session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(*task))
}

func (h *Handler) reopenTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	task, err := h.tasks.Reopen(c.Request.Context(), id, session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(*task))
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	if err := h.tasks.Delete(c.Request.Context(), id, session.Profile.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
