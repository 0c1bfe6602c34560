// @title Note Quiz API
// @version 1.0
// @description Study group management and multiple-choice quiz generation from PDF notes.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"note-quiz/internal/adapter"
	"note-quiz/internal/adapter/extractor"
	"note-quiz/internal/adapter/quizgen"
	"note-quiz/internal/adapter/storage"
	"note-quiz/internal/cache"
	"note-quiz/internal/config"
	"note-quiz/internal/database"
	"note-quiz/internal/domain"
	"note-quiz/internal/handler"
	"note-quiz/internal/logger"
	"note-quiz/internal/repository"
	"note-quiz/internal/service"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// newGenerator picks the question generator for the configured provider.
func newGenerator(cfg *config.Config) (domain.QuestionGenerator, error) {
	opts := quizgen.Options{
		Model:         cfg.LLM.Model,
		MaxTokens:     cfg.LLM.MaxTokens,
		Temperature:   cfg.LLM.Temperature,
		Timeout:       cfg.LLM.Timeout,
		QuestionCount: cfg.Quiz.QuestionCount,
	}

	switch cfg.LLM.Provider {
	case "anthropic":
		return quizgen.NewAnthropicGenerator(cfg.LLM.AnthropicAPIKey, opts)
	case "openai":
		return quizgen.NewOpenAIGenerator(cfg.LLM.OpenAIAPIKey, opts)
	case "ollama":
		return quizgen.NewOllamaGenerator(cfg.LLM.ServerURL, opts)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	db, err := database.NewSQLXDB(startupCtx, cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to database", zap.String("driver", cfg.DB.Driver))

	healthChecks := map[string]handler.HealthCheck{
		"database": db.PingContext,
	}

	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(startupCtx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		healthChecks["cache"] = cacheAdapter.Ping
		appLogger.Info("Quiz cache enabled", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Info("Redis address not set, quiz cache disabled")
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create question generator", zap.Error(err))
	}
	appLogger.Info("Question generator initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)

	pdfExtractor := extractor.NewPDFExtractor(extractor.NewTesseractEngine(), cfg.OCR)
	fileStore := storage.NewLocalFileStore(afero.NewOsFs(), cfg.Upload.Dir)

	// Repositories
	noteRepository := repository.NewNoteDatabaseAdapter(db)
	groupRepository := repository.NewGroupDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	noteService := service.NewNoteService(noteRepository, txManager, pdfExtractor, generator, cacheAdapter, cfg)
	groupService := service.NewGroupService(groupRepository, fileStore)

	// Handlers
	noteHandler := handler.NewNoteHandler(noteService)
	groupHandler := handler.NewGroupHandler(groupService)
	healthHandler := handler.NewHealthHandler(healthChecks)

	app := newApp(cfg.Server, noteHandler, groupHandler, healthHandler)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
