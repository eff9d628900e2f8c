package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopkit/shop-services/internal/config"
	"github.com/shopkit/shop-services/internal/events"
	kafkax "github.com/shopkit/shop-services/internal/kafka"
	"github.com/shopkit/shop-services/internal/logging"
	"github.com/shopkit/shop-services/internal/notification"
	"github.com/shopkit/shop-services/internal/redisx"
	"go.uber.org/zap"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.MustNew("notification-service", cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis (event dedup)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notification.Service{
		Dedup: &redisx.Dedup{Client: rdb, Service: "notification"},
		Log:   log,
	}

	group := getenv("NOTIFICATION_GROUP", "notification-service-group")
	workers := mustAtoi(os.Getenv("NOTIFICATION_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, events.TopicPaymentNotification, workers, log)

	go func() {
		log.Info("notification consumer started",
			zap.String("group", group),
			zap.String("topic", events.TopicPaymentNotification),
			zap.Int("workers", workers))
		if err := cons.Start(ctx, svc.HandlePaymentCompleted); err != nil {
			log.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
