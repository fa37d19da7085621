package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/letterforge/docgen-service/docs"
	"github.com/letterforge/docgen-service/internal/api/handler"
	"github.com/letterforge/docgen-service/internal/api/middleware"
	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

// Deps bundles everything the router needs. Services arrive fully
// constructed; the router only builds handlers and wires routes.
type Deps struct {
	Auth       ports.AuthService
	Candidates ports.CandidateService
	Templates  ports.TemplateService
	Documents  ports.DocumentService
	Notify     ports.NotifyService
	Importer   ports.ImportService
	Audit      ports.AuditService
	Files      ports.FileStore

	// Mongo is required, Redis may be nil (login limiting disabled).
	Mongo *mongo.Client
	Redis *redis.Client

	LoginLimiter middleware.Limiter
	JWTSecret    string
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("docgen"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	homeHandler := handler.NewHomeHandler(deps.Candidates, deps.Templates, deps.Audit)
	userHandler := handler.NewUserHandler(deps.Auth)
	candidateHandler := handler.NewCandidateHandler(deps.Candidates)
	templateHandler := handler.NewTemplateHandler(deps.Templates)
	documentHandler := handler.NewDocumentHandler(deps.Documents, deps.Notify, deps.Files)
	importHandler := handler.NewImportHandler(deps.Importer)
	auditHandler := handler.NewAuditHandler(deps.Audit)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	// --- Public routes ---
	e.POST("/login", authHandler.Login, middleware.RateLimit(deps.LoginLimiter))
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	authed := e.Group("", middleware.Auth(deps.JWTSecret))

	anyRole := middleware.RBAC(domain.AnyRole...)
	hrOrAdmin := middleware.RBAC(domain.AdminOrHR...)
	adminOnly := middleware.RBAC(domain.AdminOnly...)

	// Every authenticated role.
	authed.GET("/", homeHandler.Home, anyRole)
	authed.POST("/logout", authHandler.Logout, anyRole)
	authed.GET("/search_candidates", candidateHandler.Search, anyRole)
	authed.POST("/generate_document/:candidate_id/:template_id/:doc_type", documentHandler.Generate, anyRole)
	authed.GET("/preview/:candidate_id/:template_id", documentHandler.Preview, anyRole)
	authed.GET("/download/:filename", documentHandler.Download, anyRole)
	authed.GET("/download_all/:candidate_id", documentHandler.DownloadAll, anyRole)
	authed.POST("/send_email/:candidate_id/:template_id/:doc_type", documentHandler.SendEmail, anyRole)

	// HR and admin.
	authed.POST("/add_candidate", candidateHandler.Add, hrOrAdmin)
	authed.DELETE("/delete_candidate/:id", candidateHandler.Delete, hrOrAdmin)
	authed.GET("/templates", templateHandler.List, hrOrAdmin)
	authed.POST("/templates", templateHandler.Create, hrOrAdmin)
	authed.PUT("/edit_template/:id", templateHandler.Update, hrOrAdmin)
	authed.POST("/bulk_upload", importHandler.BulkUpload, hrOrAdmin)

	// Admin only.
	authed.GET("/users", userHandler.List, adminOnly)
	authed.POST("/create_user", userHandler.Create, adminOnly)
	authed.DELETE("/delete_user/:id", userHandler.Delete, adminOnly)
	authed.DELETE("/delete_template/:id", templateHandler.Delete, adminOnly)
	authed.POST("/clear_candidates", candidateHandler.Clear, adminOnly)
	authed.POST("/clear_audit_logs", auditHandler.Clear, adminOnly)
	authed.GET("/download_all_candidates", documentHandler.DownloadAllCandidates, adminOnly)

	return e
}
