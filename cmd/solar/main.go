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

	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/cli"
	apphttp "github.com/Siddharth05b/Solar-Energy-Tracker/internal/http"
	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/log"
	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := cli.InitBackend(ctx, logger, cfg)
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}()
	}

	st := store.New(result.KV)
	entries, err := st.Load(ctx)
	if err != nil {
		// Load errors are advisory: the store starts empty and stays
		// usable, new readings simply overwrite what was there.
		logger.Warn("Stored entries could not be read, starting empty",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
	} else {
		logger.Info("Loaded production entries",
			"count", len(entries), log.FieldBackend, cfg.DataBackend)
	}

	srv := apphttp.NewServer(":"+cfg.Port, st, logger.WithComponent(log.ComponentHTTP))
	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.WriteTimeout
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting solar server",
			"port", cfg.Port, log.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
