package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/DavidRprt/deskflow/internal/config"
	apphttp "github.com/DavidRprt/deskflow/internal/http"
	"github.com/DavidRprt/deskflow/internal/repository/sqlite"
	"github.com/DavidRprt/deskflow/internal/service"
	"github.com/DavidRprt/deskflow/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret && cfg.Production() {
		logger.Fatalf("the default jwt secret must not be used in production")
	}
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("using the default jwt secret; set DESKFLOW_AUTH_JWT_SECRET before going live")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := sqlite.NewAccountRepository(db)
	profileRepo := sqlite.NewProfileRepository(db)
	clientRepo := sqlite.NewClientRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	financeRepo := sqlite.NewFinanceRepository(db)
	catalogRepo := sqlite.NewCatalogRepository(db)

	inits := []struct {
		name string
		init func(context.Context) error
	}{
		{"catalog", catalogRepo.Init},
		{"profile", profileRepo.Init},
		{"account", accountRepo.Init},
		{"client", clientRepo.Init},
		{"project", projectRepo.Init},
		{"task", taskRepo.Init},
		{"finance", financeRepo.Init},
	}
	for _, r := range inits {
		if err := r.init(ctx); err != nil {
			logger.Fatalf("init %s repository: %v", r.name, err)
		}
	}

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	storageSvc := buildStorage(ctx, cfg, logger)

	authService := service.NewAuthService(accountRepo, profileRepo, []byte(cfg.Auth.JWTSecret), tokenTTL)
	clientService := service.NewClientService(clientRepo)
	projectService := service.NewProjectService(projectRepo, taskRepo, financeRepo)
	taskService := service.NewTaskService(taskRepo, projectRepo)
	financeService := service.NewFinanceService(financeRepo)
	settingsService := service.NewSettingsService(profileRepo, catalogRepo, storageSvc)
	dashboardService := service.NewDashboardService(clientRepo, projectRepo, taskRepo)
	catalogService := service.NewCatalogService(catalogRepo)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := apphttp.NewHandler(
		authService,
		clientService,
		projectService,
		taskService,
		financeService,
		settingsService,
		dashboardService,
		catalogService,
		logger,
		apphttp.Options{
			CookieName:   cfg.Auth.CookieName,
			CookieMaxAge: tokenTTL,
			SecureCookie: cfg.Production(),
		},
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildStorage sets up the S3 avatar store. A missing bucket is not fatal:
// the server runs with avatar uploads disabled.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) storage.Service {
	if cfg.Storage.Bucket == "" {
		logger.Info("no storage bucket configured, avatar uploads disabled")
		return nil
	}

	client, err := buildS3Client(ctx, cfg)
	if err != nil {
		logger.Warnf("setup storage: %v; avatar uploads disabled", err)
		return nil
	}

	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix)
}

func buildS3Client(ctx context.Context, cfg config.Config) (*s3.Client, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
