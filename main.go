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

	"cryptoportfolio/src/api"
	apihandlers "cryptoportfolio/src/api/handlers"
	"cryptoportfolio/src/clients/marketdata"
	"cryptoportfolio/src/config"
	"cryptoportfolio/src/database"
	"cryptoportfolio/src/repositories"
	"cryptoportfolio/src/services"
	"cryptoportfolio/src/utils"
	aws_handler "cryptoportfolio/src/utils/aws"
	"cryptoportfolio/src/worker"
	"cryptoportfolio/src/worker/controllers"
	workerhandlers "cryptoportfolio/src/worker/handlers"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Error("Error while loading config")
		return
	}
	logger := utils.NewLogger(utils.ParseLevel(cfg.Logging.Level), cfg.Logging.ToFile, cfg.Logging.FilePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errC, err := run(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		logger.WithError(err).Error("Error while running")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	errC := make(chan error, 1)

	if cfg.ExternalClients.CoinGecko.APIKeySecretID != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.Secrets.AWSRegion)
		if err != nil {
			return nil, err
		}
		if err := awsHandler.SecretManager.ResolveCoinGeckoAPIKey(ctx, cfg); err != nil {
			return nil, err
		}
	}

	repos, closeDB, err := setupRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client := marketdata.NewClient(cfg)

	var httpServer *http.Server
	var onShutdown func()
	switch cfg.Service.Type {
	case config.API:
		handler := apihandlers.NewHandler(repos, client, logger)
		httpServer = api.NewHTTPServer(api.NewServer(handler, cfg.Service.AllowedOrigins), cfg.Service.Port)
	case config.WORKER:
		portfolio := services.NewPortfolioService(repos.Users, repos.Holdings, services.NewAssetService(client))
		snapshots := services.NewSnapshotService(repos.Users, repos.Snapshots, portfolio)
		controller := controllers.NewController(snapshots, logger)
		if err := controller.ScheduleSnapshots(cfg.Worker.SnapshotCron); err != nil {
			closeDB()
			return nil, err
		}
		onShutdown = controller.Stop
		httpServer = worker.NewHTTPServer(worker.NewServer(workerhandlers.NewHandler(controller)), cfg.Service.Port)
	default:
		closeDB()
		return nil, fmt.Errorf("unknown service type %q", cfg.Service.Type)
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if onShutdown != nil {
			onShutdown()
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Server shutdown")
		}
		closeDB()
		errC <- nil
	}()

	go func() {
		logger.WithFields(logrus.Fields{
			"service": cfg.Service.Type,
			"port":    cfg.Service.Port,
			"driver":  cfg.Databases.SQL.Driver,
		}).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("An error raised while setting up server")
			errC <- err
		}
	}()
	return errC, nil
}

func setupRepositories(ctx context.Context, cfg *config.Config) (*repositories.Repositories, func(), error) {
	switch cfg.Databases.SQL.Driver {
	case config.DriverMemory:
		return repositories.NewMemoryRepositories(), func() {}, nil
	case config.DriverPostgres:
		pool, err := database.SetupDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRepositories(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Databases.SQL.Driver)
	}
}
