package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth      service.AuthService
	clients   service.ClientService
	projects  service.ProjectService
	tasks     service.TaskService
	finance   service.FinanceService
	settings  service.SettingsService
	dashboard service.DashboardService
	catalogs  service.CatalogService

	log          *logrus.Logger
	cookieName   string
	cookieMaxAge time.Duration
	secureCookie bool
}

// Options carries the session cookie settings the handler needs beyond the
// services themselves.
type Options struct {
	CookieName   string
	CookieMaxAge time.Duration
	SecureCookie bool
}

func NewHandler(
	auth service.AuthService,
	clients service.ClientService,
	projects service.ProjectService,
	tasks service.TaskService,
	finance service.FinanceService,
	settings service.SettingsService,
	dashboard service.DashboardService,
	catalogs service.CatalogService,
	log *logrus.Logger,
	opts Options,
) *Handler {
	return &Handler{
		auth:         auth,
		clients:      clients,
		projects:     projects,
		tasks:        tasks,
		finance:      finance,
		settings:     settings,
		dashboard:    dashboard,
		catalogs:     catalogs,
		log:          log,
		cookieName:   opts.CookieName,
		cookieMaxAge: opts.CookieMaxAge,
		secureCookie: opts.SecureCookie,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(h.sessionMiddleware())

	router.GET("/login", h.guestPage)
	router.GET("/register", h.guestPage)
	for _, page := range []string{"/", "/clients", "/projects", "/finance", "/settings"} {
		router.GET(page, h.appPage)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/logout", h.logout)
			auth.GET("/session", h.session)
			auth.PUT("/password", h.requireSession, h.changePassword)
		}

		private := api.Group("", h.requireSession)
		{
			private.GET("/clients", h.listClients)
			private.POST("/clients", h.createClient)
			private.GET("/clients/stats", h.clientStats)
			private.GET("/clients/:id", h.getClient)
			private.PUT("/clients/:id", h.updateClient)
			private.DELETE("/clients/:id", h.deactivateClient)
			private.POST("/clients/:id/reactivate", h.reactivateClient)

			private.GET("/projects", h.listProjects)
			private.POST("/projects", h.createProject)
			private.GET("/projects/:id", h.getProject)
			private.PUT("/projects/:id", h.updateProject)
			private.DELETE("/projects/:id", h.deleteProject)
			private.POST("/projects/:id/pin", h.togglePinned)
			private.POST("/projects/:id/archive", h.toggleArchived)
			private.PUT("/projects/:id/paid", h.setProjectPaid)
			private.GET("/projects/:id/tasks", h.listTasks)
			private.POST("/projects/:id/tasks", h.createTask)

			private.GET("/tasks/:id", h.getTask)
			private.PUT("/tasks/:id", h.updateTask)
			private.DELETE("/tasks/:id", h.deleteTask)
			private.POST("/tasks/:id/complete", h.completeTask)
			private.POST("/tasks/:id/reopen", h.reopenTask)

			private.GET("/finance/expenses", h.listExpenses)
			private.POST("/finance/expenses", h.createExpense)
			private.DELETE("/finance/expenses/:id", h.deleteExpense)
			private.GET("/finance/incomes", h.listIncomes)
			private.POST("/finance/incomes", h.createIncome)
			private.DELETE("/finance/incomes/:id", h.deleteIncome)
			private.GET("/finance/summary", h.financeSummary)
			private.GET("/finance/currencies", h.listCurrencies)

			private.GET("/settings/profile", h.getProfile)
			private.PUT("/settings/profile", h.updateProfile)
			private.POST("/settings/avatar", h.uploadAvatar)
			private.DELETE("/settings/avatar", h.removeAvatar)
			private.GET("/settings/professions", h.listProfessions)
			private.GET("/settings/professions/:id/skills", h.listSkills)
			private.GET("/settings/themes", h.listThemes)

			private.GET("/dashboard/stats", h.dashboardStats)
			private.GET("/dashboard/recent-projects", h.recentProjects)
			private.GET("/dashboard/upcoming-tasks", h.upcomingTasks)
			private.GET("/dashboard/budget", h.budgetSummary)

			private.GET("/catalogs/statuses", h.listStatuses)
			private.GET("/catalogs/client-types", h.listClientTypes)
			private.GET("/catalogs/project-types", h.listProjectTypes)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// respondError maps the failure's category to an HTTP status. Unknown
// failures are logged server-side and answered with a generic message so
// internals never leak to clients.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch domain.CategoryOf(err) {
	case domain.CategoryValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.CategoryAuth:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case domain.CategoryNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.CategoryConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
