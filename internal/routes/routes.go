package routes

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/auth"
	"github.com/BruksfildServices01/event-manager/internal/config"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/domain/access"
	"github.com/BruksfildServices01/event-manager/internal/handlers"
	"github.com/BruksfildServices01/event-manager/internal/middleware"
	"github.com/BruksfildServices01/event-manager/internal/ratelimit"
	"github.com/BruksfildServices01/event-manager/internal/storage"
	"github.com/BruksfildServices01/event-manager/internal/timezone"
	ucEventData "github.com/BruksfildServices01/event-manager/internal/usecase/eventdata"
)

// Dependencies are the process-wide singletons the routes are built on.
type Dependencies struct {
	Repo       domain.Repository
	Images     ucEventData.ImageStore
	Limiter    ratelimit.Limiter
	Audit      *audit.Dispatcher
	AuditStore audit.Store
}

// ConfigureEngine applies the engine-wide settings. Forwarding headers are
// honoured only from cfg.TrustedProxies; a bad list trusts none.
func ConfigureEngine(r *gin.Engine, cfg *config.Config) {
	r.MaxMultipartMemory = cfg.UploadMaxBytes

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("invalid TRUSTED_PROXIES %q, trusting none: %v", cfg.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins...))

	// ======================================================
	// INFRA
	// ======================================================
	authn := auth.NewAuthenticator(deps.Repo, cfg.JWTSecret, cfg.TokenTTL)
	evaluator := access.NewEvaluator(deps.Repo)
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// USE CASES: EVENT DATA
	// ======================================================
	createDataUC := ucEventData.NewCreate(deps.Repo, evaluator, deps.Images, deps.Audit)
	updateDataUC := ucEventData.NewUpdate(deps.Repo, evaluator, deps.Images, deps.Audit)
	deleteDataUC := ucEventData.NewDelete(deps.Repo, evaluator, deps.Images, deps.Audit)
	listDataUC := ucEventData.NewList(deps.Repo, evaluator)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authn, deps.Audit)
	userHandler := handlers.NewUserHandler(deps.Repo, deps.Images, deps.Audit)
	eventHandler := handlers.NewEventHandler(deps.Repo, deps.Images, deps.Audit, loc)
	providerHandler := handlers.NewProviderHandler(deps.Repo, deps.Audit)
	permissionHandler := handlers.NewPermissionHandler(deps.Repo, deps.Audit)
	eventDataHandler := handlers.NewEventDataHandler(createDataUC, updateDataUC, deleteDataUC, listDataUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditStore)

	// ======================================================
	// STATIC UPLOADS
	// ======================================================
	if strings.EqualFold(cfg.StorageDriver, "local") || cfg.StorageDriver == "" {
		r.Static(storage.PublicPrefix, cfg.UploadDir)
	}

	r.GET("/health", handlers.Health)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)

		// ------------------------------
		// AUTH
		// ------------------------------
		login := []gin.HandlerFunc{authHandler.Login}
		if deps.Limiter != nil {
			login = append([]gin.HandlerFunc{middleware.RateLimit(deps.Limiter)}, login...)
		}
		api.POST("/auth/login", login...)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(authn))

		admin := middleware.RequireAdmin()
		{
			secured.GET("/auth/me", authHandler.Me)

			// USERS
			secured.GET("/users", admin, userHandler.List)
			secured.POST("/users", admin, userHandler.Create)
			secured.GET("/users/:id", userHandler.Get)
			secured.PUT("/users/:id", admin, userHandler.Update)
			secured.DELETE("/users/:id", admin, userHandler.Delete)

			// EVENTS
			secured.GET("/events", eventHandler.List)
			secured.POST("/events", admin, eventHandler.Create)
			secured.GET("/events/:id", eventHandler.Get)
			secured.PUT("/events/:id", admin, eventHandler.Update)
			secured.DELETE("/events/:id", admin, eventHandler.Delete)

			secured.POST("/events/:id/attributes", admin, eventHandler.CreateAttribute)
			secured.PUT("/events/:id/attributes/:attributeId", admin, eventHandler.UpdateAttribute)
			secured.DELETE("/events/:id/attributes/:attributeId", admin, eventHandler.DeleteAttribute)

			secured.POST("/events/:id/providers", admin, eventHandler.AddProvider)
			secured.DELETE("/events/:id/providers/:providerId", admin, eventHandler.RemoveProvider)

			// PROVIDERS
			secured.GET("/providers", providerHandler.List)
			secured.POST("/providers", admin, providerHandler.Create)
			secured.GET("/providers/:id", providerHandler.Get)
			secured.PUT("/providers/:id", admin, providerHandler.Update)
			secured.DELETE("/providers/:id", admin, providerHandler.Delete)

			// PERMISSIONS
			secured.GET("/permissions/user/:userId", permissionHandler.ByUser)
			secured.GET("/permissions/attribute/:attributeId", admin, permissionHandler.ByAttribute)
			secured.POST("/permissions", admin, permissionHandler.Upsert)
			secured.PUT("/permissions/:id", admin, permissionHandler.Update)
			secured.DELETE("/permissions/:id", admin, permissionHandler.Delete)

			// EVENT DATA
			secured.GET("/event-data/attribute/:attributeId", eventDataHandler.ByAttribute)
			secured.GET("/event-data/event/:eventId", eventDataHandler.ByEvent)
			secured.POST("/event-data", eventDataHandler.Create)
			secured.PUT("/event-data/:id", eventDataHandler.Update)
			secured.DELETE("/event-data/:id", eventDataHandler.Delete)

			// AUDIT
			secured.GET("/audit-logs", admin, auditLogsHandler.List)
		}
	}
}
