package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/internal/config"
	"github.com/iamasit07/5-in-a-row/backend/internal/repository/badger"
	"github.com/iamasit07/5-in-a-row/backend/internal/repository/postgres"
	"github.com/iamasit07/5-in-a-row/backend/internal/repository/redis"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/analysis"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/cleanup"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
	transportHttp "github.com/iamasit07/5-in-a-row/backend/internal/transport/http"
	"github.com/iamasit07/5-in-a-row/backend/internal/transport/http/middleware"
	"github.com/iamasit07/5-in-a-row/backend/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	defaultDifficulty, err := bot.ParseDifficulty(cfg.DefaultDifficulty)
	if err != nil {
		log.Fatalf("DEFAULT_DIFFICULTY %q: %v", cfg.DefaultDifficulty, err)
	}

	// 1. Durable decision store (optional)
	var store analysis.DecisionStore
	var decisionRepo *postgres.DecisionRepo
	if cfg.DatabaseURL != "" {
		if err := postgres.InitDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin); err != nil {
			log.Fatalf("Database init failed: %v", err)
		}
		defer postgres.CloseDB()
		decisionRepo = postgres.NewDecisionRepo(postgres.DB)
		store = decisionRepo
	} else {
		log.Println("[DB] DATABASE_URL not set, engine decisions will not be stored")
	}

	// 2. Decision cache
	var cache analysis.CacheRepository
	switch cfg.CacheBackend {
	case "redis":
		redis.InitRedis(cfg.RedisURL, cfg.RedisPassword)
		defer redis.CloseRedis()
		if redis.IsRedisEnabled() && redis.RedisClient != nil {
			cache = redis.NewRedisCache(redis.RedisClient)
		}
	case "badger":
		bc, err := badger.Open(cfg.BadgerDir)
		if err != nil {
			log.Fatalf("Failed to open badger cache at %s: %v", cfg.BadgerDir, err)
		}
		defer bc.Close()
		cache = bc
	case "none", "":
		log.Println("[CACHE] Caching disabled")
	default:
		log.Fatalf("Unknown CACHE_BACKEND %q (want redis, badger or none)", cfg.CacheBackend)
	}

	// 3. Services
	engine := bot.NewEngine()
	analysisService := analysis.NewService(engine, cache, store, cfg.CacheTTL)
	sessionManager := game.NewSessionManager(engine, cfg.BoardSize, cfg.BotMoveDelay)

	ctx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var pruner cleanup.DecisionPruner
	if decisionRepo != nil {
		pruner = decisionRepo
	}
	cleanup.NewWorker(sessionManager, pruner, cfg.SessionIdleTimeout).Start(ctx)

	// 4. Handlers
	engineHandler := transportHttp.NewEngineHandler(analysisService)
	watchHandler := transportHttp.NewWatchHandler(sessionManager)
	wsHandler := websocket.NewHandler(websocket.NewConnectionManager(), sessionManager, analysisService, defaultDifficulty)

	// 5. Router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/api/health", engineHandler.Health)

	api := router.Group("/api")
	if cfg.AuthRequired {
		api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		wsHandler.WithAuth(cfg.JWTSecret)
	}
	{
		api.POST("/move", engineHandler.FindMove)
		api.POST("/win", engineHandler.CheckWin)
		api.POST("/threats", engineHandler.Threats)
		api.GET("/games", watchHandler.GetLiveGames)
	}

	router.GET("/ws", wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (cache=%s, auth=%v)", cfg.Port, cfg.CacheBackend, cfg.AuthRequired)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
