package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/park285/chess-arbiter/internal/config"
	"github.com/park285/chess-arbiter/internal/game"
	"github.com/park285/chess-arbiter/internal/httpapi"
	"github.com/park285/chess-arbiter/internal/obslog"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogFile); err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	var store game.Store
	if cfg.RedisURL != "" {
		rs, err := game.NewRedisStore(cfg.RedisURL)
		if err != nil {
			obslog.L().Fatal("redis store init", zap.Error(err))
		}
		store = rs
	} else {
		obslog.L().Warn("no redis_url configured, using in-memory store")
		store = game.NewMemoryStore()
	}
	defer store.Close()

	mgr := game.NewManager(store)
	if cfg.DatabaseURL != "" {
		archive, err := game.NewArchive(cfg.DatabaseURL)
		if err != nil {
			obslog.L().Fatal("archive init", zap.Error(err))
		}
		defer archive.Close()
		mgr.AttachArchive(archive)
	}

	srv := httpapi.NewServer(mgr)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(cfg.ListenAddr) }()
	obslog.L().Info("arbiter_start", zap.String("listen_addr", cfg.ListenAddr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		obslog.L().Info("arbiter_shutdown", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			obslog.L().Error("shutdown error", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			obslog.L().Fatal("serve error", zap.Error(err))
		}
	}
}
