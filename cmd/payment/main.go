package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopkit/shop-services/internal/clients"
	"github.com/shopkit/shop-services/internal/config"
	"github.com/shopkit/shop-services/internal/events"
	"github.com/shopkit/shop-services/internal/httpx"
	kafkax "github.com/shopkit/shop-services/internal/kafka"
	"github.com/shopkit/shop-services/internal/logging"
	"github.com/shopkit/shop-services/internal/payment"
	"github.com/shopkit/shop-services/internal/postgres"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.MustNew("payment-api", cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Order service client
	orderBase, err := clients.New("order", cfg.OrderBaseURL)
	if err != nil {
		log.Fatal("order client", zap.Error(err))
	}

	// Kafka producer for payment notifications
	prod := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicPaymentNotification, 1024, log)
	prod.Start(ctx)

	svc := &payment.Service{
		Orders:      clients.NewOrderClient(orderBase),
		Repo:        &payment.Repo{DB: db},
		Producer:    prod,
		ServiceName: "payment-api",
		Log:         log,
	}

	router := httpx.NewRouter()
	h := &httpx.PaymentHandler{
		Service:  svc,
		Identity: httpx.HeaderIdentity{},
		Log:      log,
	}
	h.Register(router)

	srv := &http.Server{Addr: cfg.PaymentHTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.PaymentHTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush the inbox and close the writer
	cancel()
	prod.WaitClosed()
}
