package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"claimbot/internal/claim/flow"
	"claimbot/internal/claim/store"
	"claimbot/internal/document"
	"claimbot/internal/legal"
	"claimbot/internal/platform/config"
	"claimbot/internal/platform/httpserver"
	"claimbot/internal/platform/logger"
	"claimbot/internal/platform/metrics"
	redisplatform "claimbot/internal/platform/redis"
	"claimbot/internal/receipt"
	httpapi "claimbot/internal/transport/http"
	"claimbot/internal/transport/telegram"
)

// main wires high-level dependencies and keeps the process lifecycle small.
// Business logic lives in the internal packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("configuration error", "error", err.Error())
		os.Exit(1)
	}

	m := metrics.New()

	rdb, err := redisplatform.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}

	var convStore store.Store = store.NewInMemory()
	if rdb != nil {
		convStore = store.NewRedis(rdb.Client, cfg.ConversationTTL)
		log.Info("using redis conversation store")
	}

	registry := legal.NewRegistry()
	renderer := document.NewRenderer(registry, time.Now)
	analyzer := receipt.NewSimulated(cfg.ReceiptScanDelay, time.Now)

	adapter, err := telegram.New(cfg.BotToken, cfg.PollTimeout, log)
	if err != nil {
		log.Error("telegram startup failed", "error", err.Error())
		os.Exit(1)
	}

	svc, err := flow.New(flow.Deps{
		Store:     convStore,
		Registry:  registry,
		Renderer:  renderer,
		Analyzer:  analyzer,
		Messenger: adapter,
		Metrics:   m,
		Logger:    log,
	})
	if err != nil {
		log.Error("flow service init failed", "error", err.Error())
		os.Exit(1)
	}

	dispatcher := flow.NewDispatcher(svc, log)
	srv := httpserver.New(cfg.Addr, httpapi.NewRouter(log, rdb))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting claimbot",
		"bot", adapter.Username(),
		"addr", cfg.Addr,
		"redis", rdb != nil)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatcher.Run(ctx) })
	g.Go(func() error { return adapter.Run(ctx, dispatcher) })
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("shutdown with error", "error", err.Error())
		os.Exit(1)
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info("claimbot stopped")
}
