package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agencysite/internal/config"
	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/logging"
	"github.com/agencysite/internal/media"
	"github.com/agencysite/internal/notify"
	"github.com/agencysite/internal/router"
	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env 不存在时忽略，直接读取进程环境变量
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)
	if gin.Mode() == gin.ReleaseMode {
		for _, name := range cfg.DefaultSecrets() {
			logger.Warn("secret uses the development default, set it before exposing the server", zap.String("env", name))
		}
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	ctx := context.Background()
	if err := service.NewAuthService(db.DB).EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("failed to ensure admin account", zap.Error(err))
	}

	opts := router.Options{
		DB:            db.DB,
		Logger:        logger,
		SessionSecret: cfg.SessionSecret,
		SecureCookie:  strings.HasPrefix(cfg.SiteBaseURL, "https://"),
		CORSOrigins:   cfg.CORSOrigins,
		SiteName:      cfg.SiteName,
		Tokens:        service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
	}

	if cfg.S3Bucket != "" {
		storage, err := media.NewS3Storage(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3PublicBaseURL)
		if err != nil {
			logger.Fatal("failed to configure s3 storage", zap.Error(err))
		}
		opts.Storage = storage
		logger.Info("image uploads stored in s3", zap.String("bucket", cfg.S3Bucket))
	} else {
		opts.Storage = media.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPath)
		opts.UploadDir = cfg.UploadDir
		opts.UploadURLPath = cfg.UploadURLPath
	}

	if cfg.SESFromEmail != "" && cfg.NotifyEmail != "" {
		notifier, err := notify.NewSESNotifier(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.NotifyEmail, cfg.SiteName)
		if err != nil {
			logger.Fatal("failed to configure ses notifier", zap.Error(err))
		}
		opts.Notifier = notifier
	}

	// 设置并运行 Gin 服务器
	r, err := router.SetupRouter(opts)
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
