package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ariefcatur/go-order-services.git/internal/config"
	"github.com/ariefcatur/go-order-services.git/internal/customers"
	"github.com/ariefcatur/go-order-services.git/internal/httpx"
	"github.com/ariefcatur/go-order-services.git/internal/logging"
	"github.com/ariefcatur/go-order-services.git/internal/metrics"
	"github.com/ariefcatur/go-order-services.git/internal/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load("customerapi")
	log := logging.New(cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := &customers.Repo{DB: pool}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error("ensure schema", "err", err)
		os.Exit(1)
	}
	if err := repo.Seed(ctx); err != nil {
		log.Error("seed", "err", err)
		os.Exit(1)
	}

	m := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer, cfg.ServiceName)
	r := httpx.NewRouter(m)
	(&httpx.CustomersHandler{Repo: repo}).Register(r)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info("customer api listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
