package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "gastropath/internal/adapters/http_server"
	"gastropath/internal/adapters/observability"
	redisad "gastropath/internal/adapters/redis"
	"gastropath/internal/shared"
	"gastropath/internal/wiring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}
	cfg.LogSummary(log.Logger)

	reg := observability.InitRegistry()
	observability.Serve(reg)

	// deps
	p, err := wiring.Pipeline(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize pipeline")
	}

	var limiter server.Limiter
	if cfg.RedisAddr != "" {
		rc := redisad.Dial(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed, limiter will fail open")
		}
		limiter = redisad.New(rc, cfg.RateLimitRPS, cfg.RateLimitBurst)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis rate limiter")
	} else {
		ml := server.NewMemoryLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go ml.Run(ctx)
		limiter = ml
	}

	// http
	srv := server.New(limiter)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{P: p})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
