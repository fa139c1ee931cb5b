// Package config 提供基于环境变量的应用配置加载功能。
// 支持 .env 文件（开发环境）和系统环境变量（生产环境）。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 应用基础配置
type AppConfig struct {
	Name            string
	Version         string
	Env             string // dev, test, prod
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string // debug, info, warn, error
	Encoding string // json, console
}

// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// MigrationsConfig 数据库迁移配置
type MigrationsConfig struct {
	Dir string
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Enabled bool
	Type    string // redis, memory
	TTL     time.Duration
}

// RedisConfig Redis连接配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig JWT令牌配置
type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// CatalogConfig 商品目录查询配置
type CatalogConfig struct {
	QueryTimeout time.Duration // 单次目录查询的超时上限
	PageSize     int           // 默认分页大小
	MaxPageSize  int           // 分页大小上限
	Weights      []string      // 可筛选的规格档位
}

// CloudinaryConfig 图片上传服务配置
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// SMTPConfig 邮件通知配置（留空表示禁用通知）
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string // 新询盘通知收件人
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled       bool
	ContactRate   int64         // 联系表单：窗口内允许的请求数
	ContactWindow time.Duration // 联系表单：时间窗口
	LoginRate     int64         // 登录：窗口内允许的请求数
	LoginWindow   time.Duration // 登录：时间窗口
}

// Config 汇总所有配置项
type Config struct {
	App        AppConfig
	Log        LogConfig
	Database   DatabaseConfig
	Migrations MigrationsConfig
	Cache      CacheConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Catalog    CatalogConfig
	Cloudinary CloudinaryConfig
	SMTP       SMTPConfig
	RateLimit  RateLimitConfig
}

// Load 从环境变量加载配置并做基本校验。
// .env 文件不存在时静默忽略，生产环境直接依赖系统环境变量。
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "flour-shop"),
			Version:         getEnv("APP_VERSION", "0.1.0"),
			Env:             getEnv("APP_ENV", "dev"),
			Port:            getEnvInt("APP_PORT", 8080),
			RequestTimeout:  getEnvDuration("APP_REQUEST_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnvInt("DB_PORT", 3306),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "flour_shop"),
		},
		Migrations: MigrationsConfig{
			Dir: getEnv("MIGRATIONS_DIR", "migrations"),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", false),
			Type:    getEnv("CACHE_TYPE", "memory"),
			TTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "127.0.0.1"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", ""),
			AccessTokenTTL:  getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTokenTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		},
		Catalog: CatalogConfig{
			QueryTimeout: getEnvDuration("CATALOG_QUERY_TIMEOUT", 5*time.Second),
			PageSize:     getEnvInt("CATALOG_PAGE_SIZE", 12),
			MaxPageSize:  getEnvInt("CATALOG_MAX_PAGE_SIZE", 100),
			Weights:      getEnvList("CATALOG_WEIGHTS", []string{"1kg", "5kg", "10kg", "25kg"}),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "flour-shop"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			NotifyTo: getEnv("INQUIRY_NOTIFY_TO", ""),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnvBool("RATE_LIMIT_ENABLED", true),
			ContactRate:   int64(getEnvInt("RATE_LIMIT_CONTACT_RATE", 5)),
			ContactWindow: getEnvDuration("RATE_LIMIT_CONTACT_WINDOW", time.Minute),
			LoginRate:     int64(getEnvInt("RATE_LIMIT_LOGIN_RATE", 10)),
			LoginWindow:   getEnvDuration("RATE_LIMIT_LOGIN_WINDOW", time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate 校验关键配置项
func (c *Config) validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid app port: %d", c.App.Port)
	}
	switch c.App.Env {
	case "dev", "test", "prod":
	default:
		return fmt.Errorf("invalid app env: %s", c.App.Env)
	}
	// 生产环境必须显式配置JWT密钥
	if c.App.Env == "prod" && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required in prod")
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = "dev-only-insecure-secret"
	}
	if c.Catalog.PageSize <= 0 || c.Catalog.PageSize > c.Catalog.MaxPageSize {
		return fmt.Errorf("invalid catalog page size: %d", c.Catalog.PageSize)
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
