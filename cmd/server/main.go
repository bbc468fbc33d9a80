package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shopledger/internal/events"
	"github.com/Skotchmaster/shopledger/internal/httpserver"
	"github.com/Skotchmaster/shopledger/internal/ledger"
	"github.com/Skotchmaster/shopledger/pkg/config"
	"github.com/Skotchmaster/shopledger/pkg/logging"
	loggingmw "github.com/Skotchmaster/shopledger/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	var pub events.AlertPublisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.LowStockTopic)
		logger.Info("low stock alerts enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.LowStockTopic)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		LedgerHandler:    httpserver.NewLedgerHTTP(ledger.New()),
		InventoryHandler: httpserver.NewInventoryHTTP(pub, cfg.LowStockThreshold),
		JWTSecret:        cfg.JWTAccessSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
