package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/events"
	eventskafka "marketplace/internal/events/kafka"
	listing "marketplace/internal/listingService"
	payment "marketplace/internal/paymentService"
	"marketplace/internal/repository"
	"marketplace/internal/repository/postgres"
	"marketplace/internal/server"
	"marketplace/internal/trigger"
	"marketplace/utils"
)

// closeFunc releases one resource during shutdown
type closeFunc func(ctx context.Context) error

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("invalid log level, keeping default", map[string]any{"level": cfg.LogLevel})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// closers run in reverse registration order
	var closers []closeFunc

	store, err := buildStore(ctx, cfg, &closers)
	if err != nil {
		utils.Fatal("failed to initialize store", map[string]any{"backend": cfg.Store.Backend, "error": err.Error()})
	}

	updater := trigger.NewPriceUpdater(store, trigger.Mode(cfg.PriceMode))

	var consumers sync.WaitGroup
	publisher, err := buildPublisher(ctx, cfg, updater, &consumers, &closers)
	if err != nil {
		utils.Fatal("failed to initialize event transport", map[string]any{"transport": cfg.Events.Transport, "error": err.Error()})
	}

	listingSvc := listing.NewListingService(store, publisher)
	paymentSvc := payment.NewPaymentService(payment.NewStripeGateway(cfg.Payment), cfg.Payment.Currency)

	router := server.SetupRouter(listingSvc, paymentSvc, cfg)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("starting marketplace server", map[string]any{
			"addr":       srv.Addr,
			"store":      cfg.Store.Backend,
			"transport":  cfg.Events.Transport,
			"price_mode": cfg.PriceMode,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Error("server stopped unexpectedly", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	utils.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("http server shutdown failed", map[string]any{"error": err.Error()})
	}
	consumers.Wait()

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](shutdownCtx); err != nil {
			utils.Error("failed to release resource", map[string]any{"error": err.Error()})
		}
	}
	utils.Info("shutdown complete", nil)
}

// buildStore returns a seeded memory repo or a migrated postgres store
func buildStore(ctx context.Context, cfg *config.Config, closers *[]closeFunc) (repository.MarketDB, error) {
	if cfg.Store.Backend != config.StorePostgres {
		repo := repository.NewMemoryRepo()
		if err := repository.Seed(ctx, repo); err != nil {
			return nil, err
		}
		return repo, nil
	}

	dsn := cfg.Store.DSN()
	if err := postgres.RunMigrations(dsn); err != nil {
		return nil, err
	}
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, func(context.Context) error {
		pool.Close()
		return nil
	})

	store := postgres.NewStore(pool)
	if err := repository.Seed(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// buildPublisher wires the price updater to the configured event transport
func buildPublisher(ctx context.Context, cfg *config.Config, updater *trigger.PriceUpdater, consumers *sync.WaitGroup, closers *[]closeFunc) (events.Publisher, error) {
	if cfg.Events.Transport != config.TransportKafka {
		bus := events.NewBus()
		bus.Subscribe(updater.HandleBidCreated)
		*closers = append(*closers, bus.Close)
		return bus, nil
	}

	producer := eventskafka.NewProducer(cfg.Events)
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		_ = producer.Close()
		return nil, err
	}
	*closers = append(*closers, func(context.Context) error { return producer.Close() })

	consumer := eventskafka.NewConsumer(cfg.Events)
	*closers = append(*closers, func(context.Context) error { return consumer.Close() })

	consumers.Add(1)
	go func() {
		defer consumers.Done()
		if err := consumer.Run(ctx, updater.HandleBidCreated); err != nil {
			utils.Error("kafka consumer failed", map[string]any{"error": err.Error()})
		}
	}()
	return producer, nil
}
