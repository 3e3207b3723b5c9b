package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/Divyansh8843/TaskMaster/internal/api/http/context"
	"github.com/Divyansh8843/TaskMaster/internal/api/http/handler"
	"github.com/Divyansh8843/TaskMaster/internal/api/http/router"
	httpServer "github.com/Divyansh8843/TaskMaster/internal/api/http/server"
	"github.com/Divyansh8843/TaskMaster/internal/config"
	"github.com/Divyansh8843/TaskMaster/internal/identity/google"
	"github.com/Divyansh8843/TaskMaster/internal/logger"
	"github.com/Divyansh8843/TaskMaster/internal/model"
	"github.com/Divyansh8843/TaskMaster/internal/password"
	"github.com/Divyansh8843/TaskMaster/internal/repository/postgres"
	"github.com/Divyansh8843/TaskMaster/internal/server"
	"github.com/Divyansh8843/TaskMaster/internal/service"
	storage "github.com/Divyansh8843/TaskMaster/internal/storage/minio"
	"github.com/Divyansh8843/TaskMaster/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	var identityProvider model.IdentityProvider = google.Disabled{}
	if cfg.Google.ClientID != "" {
		identityProvider, err = google.New(ctx, cfg.Google.ClientID, cfg.Google.ClientSecret)
		if err != nil {
			logger.Fatal("failed to initialize google identity provider", "error", err)
		}
	} else {
		logger.Info("google sign-in disabled: no client id configured")
	}

	hasher := password.NewBcrypt()
	ctxMgr := httpctx.NewManager()

	authService := service.NewAuth(userRepo, hasher, storageClient, logger)
	googleService := service.NewGoogleAuth(userRepo, identityProvider, logger)
	tokenService := service.NewTokenService(tokenManager, userRepo, logger)
	taskService := service.NewTask(taskRepo, logger)

	cookie := handler.NewRefreshCookie(cfg.IsProduction())
	authHandler := handler.NewAuth(authService, googleService, tokenService, ctxMgr, cookie, logger)
	taskHandler := handler.NewTask(taskService, ctxMgr, logger)

	r := router.New(authHandler, taskHandler, tokenService, userRepo, ctxMgr, cfg.CORS.AllowedOrigins, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
