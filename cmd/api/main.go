package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/letterforge/docgen-service/internal/api"
	"github.com/letterforge/docgen-service/internal/core/service"
	"github.com/letterforge/docgen-service/internal/infrastructure/assets"
	"github.com/letterforge/docgen-service/internal/infrastructure/config"
	mongodb "github.com/letterforge/docgen-service/internal/infrastructure/db/mongo"
	redisdb "github.com/letterforge/docgen-service/internal/infrastructure/db/redis"
	"github.com/letterforge/docgen-service/internal/infrastructure/docx"
	"github.com/letterforge/docgen-service/internal/infrastructure/mail"
	"github.com/letterforge/docgen-service/internal/infrastructure/pdf"
	"github.com/letterforge/docgen-service/internal/infrastructure/store"
	"github.com/letterforge/docgen-service/pkg/logger"
)

// @title                       Docgen Service API
// @version                     1.0
// @description                 Recruiting document generation: candidates, letter templates, PDF/DOCX rendering, email delivery and audit trail.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT token, prefixed with "Bearer "
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "docgen-api",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	// Redis only backs the login rate limiter; the service runs without it.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login limiting disabled")
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	// Repositories.
	userRepo := mongodb.NewUserRepository(db)
	candidateRepo := mongodb.NewCandidateRepository(db)
	templateRepo := mongodb.NewTemplateRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index setup failed")
	}
	if err := candidateRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("candidate index setup failed")
	}
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("audit index setup failed")
	}

	// Infrastructure collaborators.
	files, err := store.New(cfg.Files.OutputDir, cfg.Files.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("document store init failed")
	}
	letterAssets := assets.New(cfg.Files.AssetDir)
	pdfEngine := pdf.NewRenderer(cfg.BrowserPath)
	docxEngine := docx.NewEngine(cfg.Files.AssetDir, log)
	mailer := mail.NewBrevo(
		cfg.Brevo.BaseURL, cfg.Brevo.APIKey,
		cfg.Brevo.SenderName, cfg.Brevo.SenderEmail,
		&http.Client{Timeout: 15 * time.Second}, log,
	)

	// Services.
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour, log)
	candidateService := service.NewCandidateService(candidateRepo, auditRepo, log)
	templateService := service.NewTemplateService(templateRepo, auditRepo, log)
	documentService := service.NewDocumentService(
		candidateRepo, templateRepo, auditRepo,
		pdfEngine, docxEngine, files, letterAssets, log,
	)
	notifyService := service.NewNotifyService(candidateRepo, auditRepo, files, mailer, log)
	importService := service.NewImportService(candidateRepo, templateRepo, documentService, files, log)
	auditService := service.NewAuditService(auditRepo, candidateRepo, templateRepo, log)

	if err := authService.EnsureAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	e := api.NewRouter(api.Deps{
		Auth:         authService,
		Candidates:   candidateService,
		Templates:    templateService,
		Documents:    documentService,
		Notify:       notifyService,
		Importer:     importService,
		Audit:        auditService,
		Files:        files,
		Mongo:        client,
		Redis:        rdb,
		LoginLimiter: redisdb.NewLoginLimiter(rdb),
		JWTSecret:    cfg.JWTSecret,
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("api started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped cleanly")
}
