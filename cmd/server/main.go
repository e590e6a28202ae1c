package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cozythreads/storefront/internal/cartstore"
	"github.com/cozythreads/storefront/internal/catalog"
	"github.com/cozythreads/storefront/internal/checkout"
	"github.com/cozythreads/storefront/internal/config"
	"github.com/cozythreads/storefront/internal/db"
	"github.com/cozythreads/storefront/internal/es"
	"github.com/cozythreads/storefront/internal/handlers"
	"github.com/cozythreads/storefront/internal/logging"
	"github.com/cozythreads/storefront/internal/mykafka"
	"github.com/cozythreads/storefront/internal/payment"
	"github.com/cozythreads/storefront/internal/service/search"
	httpserver "github.com/cozythreads/storefront/internal/transport/http"
)

const catalogIndex = "product"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	gdb, err := db.Open(ctx, configuration.DatabaseDSN())
	if err != nil {
		log.Fatalf("DB init error: %v", err)
	}

	cat, err := catalog.New(gdb)
	if err != nil {
		log.Fatalf("catalog init error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		brokers := []string{configuration.KAFKA_ADDRESS}
		topics := []string{"cart_events", "checkout_events"}
		prod, err = mykafka.NewProducer(brokers, topics)
		if err != nil {
			log.Fatal(err)
		}
	}

	var searchHandler *handlers.SearchHandler
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			logger.Error("elasticsearch unavailable, search disabled", "error", err)
		} else {
			if err := search.IndexCatalog(ctx, esClient, catalogIndex, cat.All()); err != nil {
				logger.Error("catalog indexing failed", "error", err)
			}
			searchHandler = handlers.NewSearchHandler(esClient, catalogIndex)
		}
	}

	store := cartstore.NewGormStore(gdb, logger)
	gateway := payment.NewStripeGateway(configuration.STRIPE_SECRET_KEY, configuration.STRIPE_API_URL)
	sessionSecret := []byte(configuration.SESSION_SECRET)

	notify := func(ctx context.Context, event string, fields map[string]any) {
		payload := map[string]any{"type": event}
		for k, v := range fields {
			payload[k] = v
		}
		if err := prod.PublishEvent(ctx, "checkout_events", event, payload); err != nil {
			logger.Error("Kafka publish error", "error", err)
		}
	}
	registry := checkout.NewRegistry(store, cat, gateway, configuration.CURRENCY, logger, notify)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		Log:             logger,
		ProductHandler:  &handlers.ProductHandler{Catalog: cat},
		CartHandler:     &handlers.CartHandler{Store: store, Catalog: cat, Producer: prod, SessionSecret: sessionSecret},
		CheckoutHandler: &handlers.CheckoutHandler{Sessions: registry, Producer: prod, SessionSecret: sessionSecret},
		SearchHandler:   searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
