package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adminconsole/internal/backend"
	"adminconsole/internal/config"
	"adminconsole/internal/core/listresource"
	httpx "adminconsole/internal/http"
	"adminconsole/internal/logging"
	"adminconsole/internal/notify"
	"adminconsole/internal/services/audit"
	"adminconsole/internal/services/screen"
	"adminconsole/internal/store/postgres"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Backend
	client := backend.NewClient(backend.Config{
		BaseURL:     cfg.Backend.BaseURL,
		Token:       cfg.Backend.Token,
		TimeoutSec:  cfg.Backend.TimeoutSec,
		ReadRetries: cfg.Backend.ReadRetries,
	})
	if err := client.WaitReady(ctx, cfg.Backend.HealthPath, cfg.Backend.ReadyWait); err != nil {
		log.Warn().Err(err).Str("backend", client.BaseURL()).Msg("starting without a healthy backend")
	}

	// Screens
	catalog := screen.DefaultCatalog()
	if cfg.Console.ScreensFile != "" {
		n, err := catalog.LoadFile(cfg.Console.ScreensFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Console.ScreensFile).Msg("failed to load screens")
		}
		log.Info().Int("screens", n).Str("file", cfg.Console.ScreensFile).Msg("loaded screen definitions")
	}

	// Audit log (optional)
	var auditSvc *audit.Service
	if cfg.DB.DSN != "" {
		pool := postgres.MustOpen(ctx, cfg.DB.DSN, 30*time.Second)
		defer pool.Close()
		repo := postgres.NewAuditRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create audit schema")
		}
		auditSvc = audit.NewService(repo)
	}

	// Toast publishing (optional)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = notify.NewRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, toasts will not be published")
		} else {
			defer rdb.Close()
		}
	}

	deps := screen.Deps{
		Catalog: catalog,
		Endpoints: func(def screen.Definition) listresource.Endpoints {
			return backend.NewResource(client, def.Path).Endpoints()
		},
		Notifiers: func(def screen.Definition, sessionID string) []listresource.Notifier {
			sinks := []listresource.Notifier{notify.LogNotifier{Screen: def.Name, Session: sessionID}}
			if rdb != nil {
				sinks = append(sinks, notify.NewRedisNotifier(rdb, cfg.Redis.Channel, def.Name, sessionID))
			}
			return sinks
		},
		DefaultLimit: cfg.Console.DefaultPageLimit,
	}
	if auditSvc != nil {
		deps.Observer = auditSvc.Recorder
	}
	sessions := screen.NewStore(deps)

	// Start idle session sweeper
	go screen.NewSweeper(sessions, cfg.Console.SessionIdleTTL, 0).Run(ctx)

	// Router
	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:   cfg,
		Catalog:  catalog,
		Sessions: sessions,
		Audit:    auditSvc,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.Backend.TimeoutSec)*time.Second*2 + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("admin console listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
