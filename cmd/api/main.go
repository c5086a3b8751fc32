package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/event-manager/internal/db"
	"github.com/BruksfildServices01/event-manager/internal/infra/repository"
	"github.com/BruksfildServices01/event-manager/internal/ratelimit"
	"github.com/BruksfildServices01/event-manager/internal/routes"
	"github.com/BruksfildServices01/event-manager/internal/seed"
	"github.com/BruksfildServices01/event-manager/internal/storage"
)

func main() {

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// store
	repo := repository.NewMemoryRepository()
	if cfg.SeedOnStart {
		if _, err := seed.Run(ctx, repo); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	// audit trail
	var auditStore audit.Store = audit.NewMemoryStore(cfg.AuditMemoryLimit)
	if cfg.DBUrl != "" {
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		auditStore = audit.NewGormStore(db)
		log.Println("audit trail persisted to postgres")
	}
	dispatcher := audit.NewDispatcher(auditStore, cfg.AuditBuffer)

	// uploads
	images, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// login throttling
	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		rl, err := ratelimit.NewRedisLimiter(cfg.RedisURL, cfg.LoginRatePerMinute)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		if err := rl.Ping(ctx); err != nil {
			log.Printf("redis unreachable, login attempts not shared: %v", err)
		}
		defer rl.Close()
		limiter = rl
	} else {
		limiter = ratelimit.NewMemoryLimiter(ctx, cfg.LoginRatePerMinute)
	}

	r := gin.Default()
	routes.ConfigureEngine(r, cfg)

	routes.RegisterRoutes(r, cfg, routes.Dependencies{
		Repo:       repo,
		Images:     images,
		Limiter:    limiter,
		Audit:      dispatcher,
		AuditStore: auditStore,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	dispatcher.Close()
}
