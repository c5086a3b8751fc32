package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "changeme"

type Config struct {
	ServerPort  string
	JWTSecret   string
	TokenTTL    time.Duration
	Timezone    string
	SeedOnStart bool
	CORSOrigins []string

	// TrustedProxies may set the client address through X-Forwarded-For.
	// Empty means the socket peer is always the client.
	TrustedProxies []string

	StorageDriver     string
	UploadDir         string
	UploadMaxBytes    int64
	ImageMaxDimension int

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	RedisURL           string
	LoginRatePerMinute int

	DBUrl            string
	AuditBuffer      int
	AuditMemoryLimit int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "3001"),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:    getDuration("TOKEN_TTL", 7*24*time.Hour),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		SeedOnStart: getBool("SEED_ON_START", true),
		CORSOrigins: getList("CORS_ORIGINS"),

		TrustedProxies: getList("TRUSTED_PROXIES"),

		StorageDriver:     getEnv("STORAGE_DRIVER", "local"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes:    int64(getInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		ImageMaxDimension: getInt("IMAGE_MAX_DIMENSION", 1600),

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),

		RedisURL:           getEnv("REDIS_URL", ""),
		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),

		DBUrl:            getEnv("DATABASE_URL", ""),
		AuditBuffer:      getInt("AUDIT_BUFFER", 100),
		AuditMemoryLimit: getInt("AUDIT_MEMORY_LIMIT", 1000),
	}

	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("JWT_SECRET not set, using the development default")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
