package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "lcenhub/docs" // swagger docs

	"lcenhub/internal/assistant"
	"lcenhub/internal/auth"
	"lcenhub/internal/cache"
	"lcenhub/internal/config"
	"lcenhub/internal/db"
	"lcenhub/internal/handler"
	"lcenhub/internal/repository"
	"lcenhub/internal/router"
	"lcenhub/internal/service"
	"lcenhub/internal/store"
)

// @title LCEN Hub API
// @version 1.0
// @description Membership management for the Legal Chicks Empowerment Network: member profiles, reminders, marketplace listings, assistant chat, and the admin console.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	kv, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories; each loads its collection from the mirror,
	// reseeding defaults when a document is absent or malformed.
	accountRepo, err := repository.NewAccountRepository(kv)
	if err != nil {
		log.Fatalf("load accounts: %v", err)
	}
	auditRepo, err := repository.NewAuditRepository(kv)
	if err != nil {
		log.Fatalf("load audit log: %v", err)
	}
	reminderRepo, err := repository.NewReminderRepository(kv)
	if err != nil {
		log.Fatalf("load reminders: %v", err)
	}
	marketRepo, err := repository.NewMarketStockRepository(kv)
	if err != nil {
		log.Fatalf("load market stocks: %v", err)
	}
	chatRepo, err := repository.NewChatRepository(kv)
	if err != nil {
		log.Fatalf("load chat sessions: %v", err)
	}
	settingsRepo, err := repository.NewSettingsRepository(kv)
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}
	programRepo := repository.NewProgramRepository(
		store.DefaultPackages(),
		store.DefaultTrainings(),
		store.DefaultFeedOrders(),
	)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize the assistant client; without an API key it stays disabled
	// and the ask endpoint reports a configuration error.
	assistantClient, err := assistant.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("assistant init: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, assistant endpoint disabled")
	}

	// Initialize services
	authService := service.NewAuthService(accountRepo, auditRepo, jwtService, tokenStore)
	accountService := service.NewAccountService(accountRepo, auditRepo, settingsRepo, cacheClient)
	reminderService := service.NewReminderService(reminderRepo)
	marketService := service.NewMarketService(marketRepo)
	chatService := service.NewChatService(chatRepo, assistantClient)
	programService := service.NewProgramService(programRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	adminHandler := handler.NewAdminHandler(accountService, programService)
	reminderHandler := handler.NewReminderHandler(reminderService)
	marketHandler := handler.NewMarketHandler(marketService)
	chatHandler := handler.NewChatHandler(chatService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		accountHandler,
		adminHandler,
		reminderHandler,
		marketHandler,
		chatHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// openStore picks the KV mirror backend from configuration.
func openStore(cfg *config.Config) (store.KV, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Println("STORE_DRIVER=memory: collections will not survive restarts")
		return store.NewMemKV(), nil
	case "mysql":
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(gormDB); err != nil {
			return nil, err
		}
		return store.NewGormKV(gormDB), nil
	default:
		gormDB, err := db.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(gormDB); err != nil {
			return nil, err
		}
		return store.NewGormKV(gormDB), nil
	}
}
