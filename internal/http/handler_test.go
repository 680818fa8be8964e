package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/DavidRprt/deskflow/internal/repository/sqlite"
	"github.com/DavidRprt/deskflow/internal/service"
)

const testCookieName = "deskflow-session"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	accountRepo := sqlite.NewAccountRepository(db)
	profileRepo := sqlite.NewProfileRepository(db)
	clientRepo := sqlite.NewClientRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	financeRepo := sqlite.NewFinanceRepository(db)
	catalogRepo := sqlite.NewCatalogRepository(db)
	for _, init := range []func(context.Context) error{
		catalogRepo.Init, profileRepo.Init, accountRepo.Init,
		clientRepo.Init, projectRepo.Init, taskRepo.Init, financeRepo.Init,
	} {
		require.NoError(t, init(ctx))
	}

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	handler := NewHandler(
		service.NewAuthService(accountRepo, profileRepo, []byte("test-secret"), time.Hour),
		service.NewClientService(clientRepo),
		service.NewProjectService(projectRepo, taskRepo, financeRepo),
		service.NewTaskService(taskRepo, projectRepo),
		service.NewFinanceService(financeRepo),
		service.NewSettingsService(profileRepo, catalogRepo, nil),
		service.NewDashboardService(clientRepo, projectRepo, taskRepo),
		service.NewCatalogService(catalogRepo),
		logger,
		Options{CookieName: testCookieName, CookieMaxAge: time.Hour, SecureCookie: false},
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func registerAccount(t *testing.T, router *gin.Engine, email string) *http.Cookie {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"email":        email,
		"password":     "hunter22",
		"display_name": "Ana",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func TestRegisterIssuesSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"email":        "ana@example.com",
		"password":     "hunter22",
		"display_name": "Ana",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cookie := sessionCookie(t, rec)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, "/", cookie.Path)
	require.NotEmpty(t, cookie.Value)

	rec = doJSON(t, router, http.MethodGet, "/api/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		Authenticated bool `json:"authenticated"`
		Account       struct {
			Email string `json:"email"`
		} `json:"account"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.True(t, session.Authenticated)
	require.Equal(t, "ana@example.com", session.Account.Email)
}

func TestAPIRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/clients", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/clients", nil, &http.Cookie{Name: testCookieName, Value: "garbage"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPageGating(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/clients", nil, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login?from=%2Fclients", rec.Header().Get("Location"))

	cookie := registerAccount(t, router, "ana@example.com")

	rec = doJSON(t, router, http.MethodGet, "/clients", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/login", nil, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLogoutClearsCookie(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAccount(t, router, "ana@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := sessionCookie(t, rec)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)
}

func TestProjectLifecycle(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAccount(t, router, "ana@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/clients", gin.H{"name": "Acme"}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var client struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))

	rec = doJSON(t, router, http.MethodPost, "/api/projects", gin.H{
		"name":      "Website",
		"client_id": client.ID,
		"budget":    1000,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var project struct {
		ID       int64 `json:"id"`
		StatusID int64 `json:"status_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))
	require.EqualValues(t, 1, project.StatusID)

	rec = doJSON(t, router, http.MethodPost, "/api/projects/"+itoa(project.ID)+"/tasks", gin.H{
		"name":       "Design",
		"importance": 5,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var task struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))

	rec = doJSON(t, router, http.MethodPost, "/api/tasks/"+itoa(task.ID)+"/complete", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var completed struct {
		Done        bool    `json:"done"`
		CompletedAt *string `json:"completed_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &completed))
	require.True(t, completed.Done)
	require.NotNil(t, completed.CompletedAt)

	rec = doJSON(t, router, http.MethodGet, "/api/projects/"+itoa(project.ID), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var overview struct {
		Progress int    `json:"progress"`
		Timing   string `json:"timing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	require.Equal(t, 100, overview.Progress)

	rec = doJSON(t, router, http.MethodDelete, "/api/projects/"+itoa(project.ID), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/projects/"+itoa(project.ID), nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnerScoping(t *testing.T) {
	router := newTestRouter(t)
	anaCookie := registerAccount(t, router, "ana@example.com")
	bobCookie := registerAccount(t, router, "bob@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/clients", gin.H{"name": "Acme"}, anaCookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var client struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))

	rec = doJSON(t, router, http.MethodGet, "/api/clients/"+itoa(client.ID), nil, bobCookie)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/clients/"+itoa(client.ID), nil, anaCookie)
	require.Equal(t, http.StatusOK, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
