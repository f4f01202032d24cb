package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	httpadp "creditos-backend/internal/adapter/http"
	appmw "creditos-backend/internal/adapter/middleware"
	"creditos-backend/internal/adapter/repository/mysql"
	"creditos-backend/internal/config"
	"creditos-backend/internal/infrastructure/cache"
	"creditos-backend/internal/infrastructure/db"
	"creditos-backend/internal/infrastructure/logger"
	"creditos-backend/internal/infrastructure/scheduler"
	"creditos-backend/internal/usecase/credit"
	"creditos-backend/internal/usecase/payment"
)

const (
	slowQuery       = 200 * time.Millisecond
	moraJobTimeout  = 5 * time.Minute
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		stdlog.Fatalf("config: %v", err)
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: "stdout"})
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(),
		db.WithLogger(logger.NewGormLogger(log, logger.GormLevel(cfg.LogLevel), slowQuery)))
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	log.Info("mysql connected", zap.String("db", cfg.MySQLDB))

	if cfg.DBMigrate {
		m, err := db.NewMigratorFromURL(cfg.MigrateURL(), log)
		if err != nil {
			return err
		}
		err = m.Up()
		_ = m.Close()
		if err != nil {
			return err
		}
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB, 5*time.Second)
	if err != nil {
		return err
	}
	defer rdb.Close()

	credits := mysql.NewCreditRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	audits := mysql.NewAuditRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	creditUC := credit.NewUsecase(credits, audits, tx, log).WithPageSize(cfg.DefaultPageSize)
	paymentUC := payment.NewUsecase(payments, credits, tx, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), appmw.RequestLog(log))

	health := httpadp.NewHandler(map[string]httpadp.Pinger{
		"mysql": sqlDB.PingContext,
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})
	httpadp.Register(e, health,
		httpadp.NewCreditHandler(creditUC, log),
		httpadp.NewPaymentHandler(paymentUC, log),
		appmw.Tenant(),
		appmw.Idempotency(rdb, cfg.IdempotencyTTL(), log),
	)

	sched := scheduler.New(log)
	if cfg.MoraCron != "" {
		if _, err := sched.AddMoraJob(cfg.MoraCron, paymentUC, moraJobTimeout); err != nil {
			return err
		}
	}
	sched.Start()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Warn("scheduler stop", zap.Error(err))
	}
	return e.Shutdown(shutdownCtx)
}
