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

	"github.com/ariefcatur/go-order-services.git/internal/clients"
	"github.com/ariefcatur/go-order-services.git/internal/config"
	"github.com/ariefcatur/go-order-services.git/internal/httpx"
	"github.com/ariefcatur/go-order-services.git/internal/kafka"
	"github.com/ariefcatur/go-order-services.git/internal/logging"
	"github.com/ariefcatur/go-order-services.git/internal/metrics"
	"github.com/ariefcatur/go-order-services.git/internal/orders"
	"github.com/ariefcatur/go-order-services.git/internal/postgres"
	"github.com/ariefcatur/go-order-services.git/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load("orderapi")
	log := logging.New(cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := &orders.Repo{DB: pool}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error("ensure schema", "err", err)
		os.Exit(1)
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	producer.Start(ctx)

	workflow := &orders.Workflow{
		Repo:      repo,
		Products:  clients.NewProductClient(cfg.ProductAPIURL),
		Customers: clients.NewCustomerClient(cfg.CustomerAPIURL),
		Producer:  producer,
		Log:       log,
		Service:   cfg.ServiceName,
	}

	m := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer, cfg.ServiceName)
	wm := metrics.NewWorkflowMetrics(prometheus.DefaultRegisterer, cfg.ServiceName)
	cache := redisx.NewCache(redisx.New(cfg.RedisAddr), redisx.TTLOrder)

	r := httpx.NewRouter(m)
	(&httpx.OrdersHandler{
		Repo:     repo,
		Workflow: workflow,
		Cache:    cache,
		Metrics:  wm,
		Log:      log,
	}).Register(r)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info("order api listening", "addr", cfg.HTTPAddr)
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
	producer.WaitClosed()
}
