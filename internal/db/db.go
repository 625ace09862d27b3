package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snnyvrz/library-api/internal/config"
)

// ConnectWithRetry opens the postgres pool and pings it, retrying while the
// database is still starting up.
func ConnectWithRetry(ctx context.Context, cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.GinMode == "debug" {
		logLevel = logger.Info
	}

	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.DBConnectAttempts; attempt++ {
		gdb, err := open(ctx, cfg, gormCfg)
		if err == nil {
			return gdb, nil
		}
		lastErr = err

		log.Warn("db not ready",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.DBConnectAttempts),
			slog.Any("error", err),
		)

		if attempt == cfg.DBConnectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBConnectDelay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DBConnectAttempts, lastErr)
}

func open(ctx context.Context, cfg *config.Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return gdb, nil
}
