package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	AllowedOrigins       []string
	FrontendURL          string
	JWTSecret            string
	AccessTokenTTL       time.Duration
	AuthRequired         bool
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	CacheBackend         string
	BadgerDir            string
	CacheTTL             time.Duration
	BoardSize            int
	DefaultDifficulty    string
	BotMoveDelay         time.Duration
	SessionIdleTimeout   time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + CSV values)
	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	accessTokenTTLMin := GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 60*24*30)
	authRequired := GetEnvAsBool("AUTH_REQUIRED", false)

	// Database Config (optional: engine decisions are only stored when set)
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	dbMaxOpenConns := GetEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	dbMaxIdleConns := GetEnvAsInt("DB_MAX_IDLE_CONNS", 10)
	dbConnMaxLifetimeMin := GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	// Cache
	cacheBackend := strings.ToLower(GetEnv("CACHE_BACKEND", "redis"))
	cacheTTLMin := GetEnvAsInt("CACHE_TTL_MINUTES", 60*24)

	// Engine
	boardSize := GetEnvAsInt("BOARD_SIZE", 15)
	botMoveDelayMs := GetEnvAsInt("BOT_MOVE_DELAY_MS", 500)
	sessionIdleMin := GetEnvAsInt("SESSION_IDLE_MINUTES", 30)

	AppConfig = &Config{
		Port:                 port,
		AllowedOrigins:       allowedOrigins,
		FrontendURL:          frontendURL,
		JWTSecret:            jwtSecret,
		AccessTokenTTL:       time.Duration(accessTokenTTLMin) * time.Minute,
		AuthRequired:         authRequired,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       dbMaxOpenConns,
		DBMaxIdleConns:       dbMaxIdleConns,
		DBConnMaxLifetimeMin: dbConnMaxLifetimeMin,
		RedisURL:             GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		CacheBackend:         cacheBackend,
		BadgerDir:            GetEnv("BADGER_DIR", "./data/cache"),
		CacheTTL:             time.Duration(cacheTTLMin) * time.Minute,
		BoardSize:            boardSize,
		DefaultDifficulty:    GetEnv("DEFAULT_DIFFICULTY", "medium"),
		BotMoveDelay:         time.Duration(botMoveDelayMs) * time.Millisecond,
		SessionIdleTimeout:   time.Duration(sessionIdleMin) * time.Minute,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
