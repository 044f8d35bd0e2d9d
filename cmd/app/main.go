package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	apiHttp "github.com/wellness-compass/backend/internal/api/http"
	"github.com/wellness-compass/backend/internal/cache"
	"github.com/wellness-compass/backend/internal/config"
	"github.com/wellness-compass/backend/internal/db"
	"github.com/wellness-compass/backend/internal/provider"
	"github.com/wellness-compass/backend/internal/provider/local"
	"github.com/wellness-compass/backend/internal/provider/twilio"
	"github.com/wellness-compass/backend/internal/queue"
	"github.com/wellness-compass/backend/internal/queue/asynqserver"
	queueClient "github.com/wellness-compass/backend/internal/queue/client"
	"github.com/wellness-compass/backend/internal/repository"
	"github.com/wellness-compass/backend/internal/server"
	"github.com/wellness-compass/backend/internal/service"
	"github.com/wellness-compass/backend/internal/worker"
	"github.com/wellness-compass/backend/pkg/auth"
	emailProvider "github.com/wellness-compass/backend/pkg/email"
	"github.com/wellness-compass/backend/pkg/email/smtp"
	"github.com/wellness-compass/backend/pkg/hash"
	logger "github.com/wellness-compass/backend/pkg/logger"
	"github.com/wellness-compass/backend/pkg/otp"
)

const providerLocal = "local"

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env)

	appLogger.Info("starting verification api", "env", cfg.Env)
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbPostgres, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("postgres connect problem", "error", err)
		os.Exit(1)
	}
	defer func() {
		err = dbPostgres.Close()
		if err != nil {
			appLogger.Error("error when closing", "error", err)
		}
	}()
	appLogger.Info("postgres connection done")

	// Init redis
	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", "error", err)
		os.Exit(1)
	}
	defer func() {
		err = redisClient.Close()
		if err != nil {
			appLogger.Error("error when closing redis", "error", err)
		}
	}()
	appLogger.Info("redis connection done")

	// Queue client for the audit ledger and code emails
	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	restoreClient := queueClient.SetClient(asynqClient)
	defer restoreClient()
	defer func() {
		if err := asynqClient.Close(); err != nil {
			appLogger.Error("error when closing asynq client", "error", err)
		}
	}()

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", "error", err)
		return
	}

	// Verification provider
	var verifier provider.Verifier
	if cfg.Twilio.Provider == providerLocal {
		var deliverer local.Deliverer
		if cfg.Email.Enabled {
			deliverer = queue.NewCodeEmailer(cfg.Email.Inbox)
		}
		verifier = local.NewProvider(
			redisClient,
			otp.NewGOTPGenerator(),
			hash.NewSHA256Hasher(cfg.Auth.CodeSalt),
			deliverer,
			cfg.OTP.TTL,
		)
		appLogger.Info("using local verification provider")
	} else {
		verifier = twilio.NewClient(cfg.Twilio)
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbPostgres)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		TokenManager: tokenManager,
		Provider:     verifier,
		SendLimiter:  cache.NewSendLimiter(redisClient, cfg.OTP.SendCooldown, cfg.OTP.MaxSendsPerHour),
		Recorder:     queue.NewAttemptRecorder(),
		Repos:        repos,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// Queue workers
	var emailSender emailProvider.Sender
	if cfg.Email.Enabled {
		emailSender, err = smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
		if err != nil {
			appLogger.Error("smtp sender creation failed", "error", err)
			return
		}
	}
	workers := worker.NewWorkers(worker.Deps{
		Repos:         repos,
		EmailProvider: emailSender,
	})

	asynqServer, mux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := asynqServer.Run(mux); err != nil {
			appLogger.Error("error occurred while running queue server", "error", err)
		}
	}()
	appLogger.Info("queue server started")

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", "error", err)
		}
	}()
	appLogger.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", "error", err)
	}

	asynqServer.Shutdown()

	appLogger.Info("app stopped")
}
