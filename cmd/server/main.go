// Command server runs the account orchestration service: the public account
// endpoints on APIAddr and the operational endpoints on OpsAddr.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"worldsmith/internal/account/service"
	"worldsmith/internal/directory"
	"worldsmith/internal/events"
	"worldsmith/internal/messaging"
	"worldsmith/internal/otp"
	"worldsmith/internal/platform/config"
	"worldsmith/internal/platform/httpserver"
	"worldsmith/internal/platform/logger"
	"worldsmith/internal/platform/metrics"
	platformredis "worldsmith/internal/platform/redis"
	"worldsmith/internal/session"
	"worldsmith/internal/token"
	httptransport "worldsmith/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Durable adapters when their backends are configured, in-memory
	// fallbacks otherwise so a bare `go run` works.
	var tokenRegistry token.ConsumptionRegistry = token.NewMemoryRegistry()
	var otpStore otp.Store = otp.NewMemoryStore()
	var sessionStore session.Store = session.NewMemoryStore()
	if redisClient != nil {
		tokenRegistry = token.NewRedisRegistry(redisClient.Client)
		otpStore = otp.NewRedisStore(redisClient.Client)
		sessionStore = session.NewRedisStore(redisClient.Client)
	}

	var directoryStore directory.Store = directory.NewMemoryStore()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if _, err := pool.Exec(ctx, directory.Schema); err != nil {
			return err
		}
		directoryStore = directory.NewPostgresStore(pool)
	}

	var publisher service.SignInPublisher = events.NewMemoryPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		publisher = kafka
	}

	accounts, err := service.New(
		directory.New(directoryStore, directory.WithLogger(log)),
		token.New(cfg.Tokens.SigningKey, cfg.Tokens.Issuer, cfg.Tokens.Lifetime, tokenRegistry),
		otp.New(otpStore, cfg.OTP.Lifetime, cfg.OTP.MaxAttempts, otp.WithLogger(log)),
		messaging.New(messaging.DefaultRegistry(), messaging.NewSlogSender(log),
			messaging.WithLogger(log), messaging.WithMetrics(m)),
		session.New(sessionStore, session.WithLogger(log)),
		publisher,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithPasswordPolicy(service.PasswordPolicy{MinLength: cfg.Password.MinLength}),
	)
	if err != nil {
		return err
	}

	apiRouter := httptransport.NewRouter(httptransport.NewHandler(accounts, log))
	apiServer := httpserver.New(cfg.APIAddr, apiRouter)
	opsServer := httpserver.New(cfg.OpsAddr, opsRouter(redisClient))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("api server listening", slog.String("addr", cfg.APIAddr))
		return ignoreClosed(apiServer.ListenAndServe())
	})
	group.Go(func() error {
		log.Info("ops server listening", slog.String("addr", cfg.OpsAddr))
		return ignoreClosed(opsServer.ListenAndServe())
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := apiServer.Shutdown(shutdownCtx)
		if opsErr := opsServer.Shutdown(shutdownCtx); err == nil {
			err = opsErr
		}
		return err
	})

	return group.Wait()
}

func opsRouter(redisClient *platformredis.Client) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(req.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
