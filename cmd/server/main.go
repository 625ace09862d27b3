package main

// @title           Library API
// @version         1.0
// @description     Books, orders and search over a PostgreSQL catalogue.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/snnyvrz/library-api/internal/config"
	"github.com/snnyvrz/library-api/internal/db"
	docs "github.com/snnyvrz/library-api/internal/docs"
	"github.com/snnyvrz/library-api/internal/handler"
	"github.com/snnyvrz/library-api/internal/metrics"
	"github.com/snnyvrz/library-api/internal/middleware"
	"github.com/snnyvrz/library-api/internal/repository"
)

const appVersion = "0.1.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectWithRetry(ctx, cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, database, logger); err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	m := metrics.New()

	e := gin.New()
	e.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORSAllowOrigins),
	)

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Version = appVersion

	handler.NewIndexHandler(appVersion).RegisterRoutes(e)
	handler.NewHealthHandler(sqlDB, startTime, appVersion).RegisterRoutes(e)

	api := e.Group("")
	{
		handler.NewBookHandler(repository.NewGormBookRepository(database), logger).RegisterRoutes(api)
		handler.NewOrderHandler(repository.NewGormOrderRepository(database), m, logger).RegisterRoutes(api)
	}

	e.GET("/metrics", gin.WrapH(m.Handler()))
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
