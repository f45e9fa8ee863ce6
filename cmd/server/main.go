package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/mahamadoubmaiga/Koraprompt/internal/config"
	"github.com/mahamadoubmaiga/Koraprompt/internal/httpapi"
	"github.com/mahamadoubmaiga/Koraprompt/internal/providers"
	"github.com/mahamadoubmaiga/Koraprompt/internal/repository"
	"github.com/mahamadoubmaiga/Koraprompt/internal/server"
	"github.com/mahamadoubmaiga/Koraprompt/internal/service"
	"github.com/mahamadoubmaiga/Koraprompt/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		logger.Error("open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.RunMigrations(ctx, db); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	registry := providers.NewRegistry()
	registry.Register("echo", providers.EchoClient{})
	if cfg.GeminiAPIKey != "" {
		gemini, err := providers.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Error("create gemini client", slog.Any("error", err))
			os.Exit(1)
		}
		registry.Register("gemini", gemini)
	}
	if cfg.OpenAIAPIKey != "" {
		oai, err := providers.NewOpenAIClient(cfg.OpenAIAPIKey, "")
		if err != nil {
			logger.Error("create openai client", slog.Any("error", err))
			os.Exit(1)
		}
		registry.Register("openai", oai)
	}

	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	folders := repository.NewFolderRepository(db)
	presets := repository.NewPresetRepository(db)
	projects := repository.NewProjectRepository(db)

	auth := service.NewAuthService(users, sessions, cfg.SessionTTL)
	library := service.NewLibraryService(folders, presets)
	projectSvc := service.NewProjectService(projects, folders, logger)
	generation := service.NewGenerationService(registry, cfg.Provider, logger)

	api := httpapi.NewAPI(auth, projectSvc, library, generation, cfg.SessionTTL, logger)
	srv := server.New(cfg, httpapi.NewRouter(api), logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	if cfg.Database.Driver == config.DriverPostgres {
		return storage.NewPostgres(ctx, cfg.Database)
	}
	return storage.NewSQLite(cfg.Database)
}
