package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSecret 仅用于本地开发，线上必须通过 SESSION_SECRET / JWT_SECRET 覆盖。
const DefaultSecret = "agency-dev-secret"

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabaseDriver  string
	DatabaseURL     string
	SessionSecret   string
	JWTSecret       string
	TokenTTL        time.Duration
	GinMode         string
	LogLevel        string
	UploadDir       string
	UploadURLPath   string
	S3Bucket        string
	S3PublicBaseURL string
	AWSRegion       string
	SESFromEmail    string
	NotifyEmail     string
	AdminEmail      string
	AdminPassword   string
	SiteName        string
	SiteBaseURL     string
	CORSOrigins     []string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := envOr("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(envOr("DATABASE_DRIVER", "sqlite"))
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		databaseURL = envOr("DATABASE_PATH", "agency.db")
	}

	sessionSecret := envOr("SESSION_SECRET", DefaultSecret)
	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = sessionSecret
	}

	tokenTTL := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			tokenTTL = time.Duration(hours) * time.Hour
		}
	}

	region := strings.TrimSpace(os.Getenv("AWS_REGION"))
	if region == "" {
		region = envOr("AWS_DEFAULT_REGION", "eu-central-1")
	}

	return AppConfig{
		ListenAddr:      listenAddr,
		Port:            port,
		DatabaseDriver:  driver,
		DatabaseURL:     databaseURL,
		SessionSecret:   sessionSecret,
		JWTSecret:       jwtSecret,
		TokenTTL:        tokenTTL,
		GinMode:         envOr("GIN_MODE", "release"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		UploadDir:       envOr("UPLOAD_DIR", "uploads"),
		UploadURLPath:   envOr("UPLOAD_URL_PATH", "/uploads"),
		S3Bucket:        strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3PublicBaseURL: strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
		AWSRegion:       region,
		SESFromEmail:    strings.TrimSpace(os.Getenv("SES_FROM_EMAIL")),
		NotifyEmail:     strings.TrimSpace(os.Getenv("NOTIFY_EMAIL")),
		AdminEmail:      strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword:   strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		SiteName:        envOr("SITE_NAME", "Misafa Technologies"),
		SiteBaseURL:     envOr("SITE_BASE_URL", "http://localhost:8080"),
		CORSOrigins:     splitCSV(os.Getenv("CORS_ORIGINS")),
	}
}

// DefaultSecrets 返回仍在使用开发默认值的密钥环境变量名
func (c AppConfig) DefaultSecrets() []string {
	var names []string
	if c.SessionSecret == DefaultSecret {
		names = append(names, "SESSION_SECRET")
	}
	if c.JWTSecret == DefaultSecret {
		names = append(names, "JWT_SECRET")
	}
	return names
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
