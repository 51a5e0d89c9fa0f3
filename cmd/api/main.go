package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/P-N-S-U/backend/internal/platform/config"
	"github.com/P-N-S-U/backend/internal/platform/database"
	"github.com/P-N-S-U/backend/internal/platform/logger"
	"github.com/P-N-S-U/backend/internal/platform/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("error").Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos := memoryRepositories()
	if cfg.DatabaseURL != "" {
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			log.Error("migrate database", "error", err)
			os.Exit(1)
		}
		repos = postgresRepositories(db)
		log.Info("connected to database")
	} else {
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, repos, storage.NewDisk(cfg.StorageDir), log, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("marketplace API server starting", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
