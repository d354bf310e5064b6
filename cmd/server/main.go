package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stwalsh4118/atlas/portal/internal/config"
	"github.com/stwalsh4118/atlas/portal/internal/handlers"
	"github.com/stwalsh4118/atlas/portal/internal/logger"
	"github.com/stwalsh4118/atlas/portal/internal/metrics"
	"github.com/stwalsh4118/atlas/portal/internal/middleware"
	"github.com/stwalsh4118/atlas/portal/internal/repository"
	"github.com/stwalsh4118/atlas/portal/internal/services"
	"github.com/stwalsh4118/atlas/portal/internal/wizard"
)

const (
	shutdownTimeout = 30 * time.Second
	// maxUploadMemory bounds multipart parsing for wizard document uploads.
	maxUploadMemory = 8 << 20
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env)
	log.Info("Starting Atlas portal", map[string]interface{}{
		"version":      handlers.APIVersion,
		"environment":  cfg.Server.Env,
		"port":         cfg.Server.Port,
		"registry_url": cfg.Registry.BaseURL,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Background workers stop when the process begins shutting down.
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	repo := repository.NewRegistryRepository(cfg.Registry)
	loader := services.NewLoader(repo, log, m)
	pages := services.NewPages(loader, cfg.Search.Delay)

	store := wizard.NewStore(cfg.Wizard.SessionTTL, log, m)
	go store.Run(ctx)
	submitter := wizard.NewRegistrySubmitter(repo, log, m)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Run(ctx)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = maxUploadMemory

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(router,
		handlers.NewHealthHandler(repo, cfg.Server.Env),
		handlers.NewPageHandler(pages),
		handlers.NewWizardHandler(store, loader, submitter),
		limiter.Middleware(),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", map[string]interface{}{
		"open_sessions": store.Len(),
	})
}
