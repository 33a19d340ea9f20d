package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "workforce-backend/internal/adapter/http"
	"workforce-backend/internal/adapter/middleware"
	mysqlrepo "workforce-backend/internal/adapter/repository/mysql"
	"workforce-backend/internal/config"
	"workforce-backend/internal/infrastructure/cache"
	"workforce-backend/internal/infrastructure/db"
	"workforce-backend/internal/infrastructure/logging"
	ucApp "workforce-backend/internal/usecase/application"
	ucApproval "workforce-backend/internal/usecase/approval"
	ucHistory "workforce-backend/internal/usecase/history"
)

func main() {
	cfg := config.Load()
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), cfg.LogLevel)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	log.Info("gorm: connected", zap.String("db", cfg.MySQLDB))

	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	tx := mysqlrepo.NewGormUoW(gdb)
	repos := tx.Repos()

	handlers := httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.Pinger{
			"mysql": sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Applications: httpadp.NewApplicationHandler(ucApp.NewUsecase(repos, tx, nil, nil, log.Named("application")), log),
		Approvals:    httpadp.NewApprovalHandler(ucApproval.NewUsecase(repos, tx, nil, log.Named("approval")), log),
		History:      httpadp.NewHistoryHandler(ucHistory.NewUsecase(repos, nil, log.Named("history")), log),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(log.Named("http")))
	httpadp.Register(e, handlers, middleware.Idempotency(rdb, cfg.IdempotencyTTL(), log.Named("idempotency")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
