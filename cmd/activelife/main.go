package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/activelife/activelife/internal/api"
	"github.com/activelife/activelife/internal/db"
	"github.com/activelife/activelife/internal/identity"
	"github.com/activelife/activelife/internal/planner"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zapLogger.Sync()

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "activelife.db"))
	port := getEnv("PORT", "8080")
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	cookieSecure := getEnv("COOKIE_SECURE", "false") == "true"

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		zapLogger.Fatal("database init failed", zap.Error(err))
	}

	generator, err := planner.NewGeminiGenerator(context.Background(), geminiAPIKey, zapLogger)
	if err != nil {
		zapLogger.Fatal("generation client init failed", zap.Error(err))
	}
	defer generator.Close()

	verifier := identity.NewGoogleVerifier(googleClientID)

	handler := api.NewHandler(database, secretKey, generator, verifier, cookieSecure, zapLogger)

	app := fiber.New(fiber.Config{
		AppName:               "ActiveLife",
		DisableStartupMessage: true,
		BodyLimit:             8 << 20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		AllowCredentials: true,
	}))

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zapLogger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("ActiveLife listening",
		zap.String("port", port),
		zap.String("db", dbPath))
	if err := app.Listen(":" + port); err != nil {
		zapLogger.Fatal("server exited", zap.Error(err))
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
