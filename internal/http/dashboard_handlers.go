package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) dashboardStats(c *gin.Context) {
	session := currentSession(c)

	stats, err := h.dashboard.Stats(c.Request.Context(), session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	byStatus := make([]gin.H, len(stats.ProjectsByStatus))
	for i, row := range stats.ProjectsByStatus {
		byStatus[i] = gin.H{
			"status_id":   row.StatusID,
			"status_name": row.StatusName,
			"count":       row.Count,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": gin.H{
			"total":    stats.Clients.Total,
			"active":   stats.Clients.Active,
			"inactive": stats.Clients.Inactive,
		},
		"projects": gin.H{
			"total":     stats.ProjectsTotal,
			"by_status": byStatus,
		},
		"tasks": gin.H{
			"pending": stats.TasksPending,
			"done":    stats.TasksDone,
			"total":   stats.TasksTotal,
		},
	})
}

func (h *Handler) recentProjects(c *gin.Context) {
	session := currentSession(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	projects, err := h.dashboard.RecentProjects(c.Request.Context(), session.Profile.ID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]projectResponse, len(projects))
	for i := range projects {
		resp[i] = projectToResponse(projects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) upcomingTasks(c *gin.Context) {
	session := currentSession(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	tasks, err := h.dashboard.UpcomingTasks(c.Request.Context(), session.Profile.ID, limit)
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

func (h *Handler) budgetSummary(c *gin.Context) {
	session := currentSession(c)

	summary, err := h.dashboard.BudgetSummary(c.Request.Context(), session.Profile.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_budget":     summary.TotalBudget,
		"total_expenses":   summary.TotalExpenses,
		"balance":          summary.Balance,
		"paid_projects":    summary.PaidProjects,
		"pending_projects": summary.PendingProjects,
	})
}
