package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcel/cmd"
	"parcel/internal/adapters/out/postgres"
	"parcel/internal/adapters/out/securitylog"
	"parcel/internal/pkg/logging"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := connectDB(ctx, configs, logger)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	if err := postgres.Migrate(gormDB); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	securityLog, err := securitylog.Open(configs.SecurityLogPath)
	if err != nil {
		logger.Fatal("open security log", zap.Error(err))
	}
	defer func() { _ = securityLog.Close() }()

	app, err := cmd.NewCompositionRoot(configs, gormDB, securityLog, logger)
	if err != nil {
		logger.Fatal("build composition root", zap.Error(err))
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Fatal("start jobs", zap.Error(err))
	}

	e := app.CreateServer().NewEcho()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("port", configs.HTTPPort))
		return startWebServer(e, configs.HTTPPort)
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		jobManager.StopAll(shutdownCtx)
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		e.Logger.Fatal(err)
	}
}

// connectDB opens the gorm connection, retrying with exponential backoff
// until the database answers or DBConnectTimeout elapses.
func connectDB(ctx context.Context, configs cmd.Config, logger *zap.Logger) (*gorm.DB, error) {
	var gormDB *gorm.DB
	operation := func() error {
		db, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		gormDB = db
		return nil
	}

	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(500*time.Millisecond),
		backoff.WithMaxInterval(5*time.Second),
		backoff.WithMaxElapsedTime(configs.DBConnectTimeout),
	)
	notify := func(err error, wait time.Duration) {
		logger.Warn("database not ready", zap.Error(err), zap.Duration("retry_in", wait))
	}
	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func startWebServer(e *echo.Echo, port string) error {
	err := e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
