package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 服务运行配置，全部来自环境变量 (可由 .env 文件提供)
type Config struct {
	Port           string
	DBEnabled      bool
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	JWTTTL         time.Duration
	LogLevel       string
	LogFormat      string
	DefaultNetwork string
}

// Load 读取 .env 后从环境变量构建配置
// 返回的 bool 表示是否找到了 .env 文件，找不到不算错误
func Load(files ...string) (Config, bool, error) {
	loaded := godotenv.Load(files...) == nil
	cfg, err := FromEnv()
	return cfg, loaded, err
}

// FromEnv 从当前环境变量构建配置
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		DBHost:         getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:         getEnvOrDefault("DB_PORT", "5432"),
		DBUser:         getEnvOrDefault("DB_USER", "advisor"),
		DBPassword:     getEnvOrDefault("DB_PASSWORD", "advisor"),
		DBName:         getEnvOrDefault("DB_NAME", "logistics"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", "your-secret-key-change-in-production"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
		DefaultNetwork: getEnvOrDefault("DEFAULT_NETWORK", "mumbai"),
	}

	enabled, err := strconv.ParseBool(getEnvOrDefault("DB_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_ENABLED: %w", err)
	}
	cfg.DBEnabled = enabled

	ttl, err := time.ParseDuration(getEnvOrDefault("JWT_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("invalid JWT_TTL: must be positive, got %s", ttl)
	}
	cfg.JWTTTL = ttl

	return cfg, nil
}

// DSN 返回 PostgreSQL 连接串
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}
