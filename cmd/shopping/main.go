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
	"github.com/shopkit/shop-services/internal/httpx"
	"github.com/shopkit/shop-services/internal/logging"
	"github.com/shopkit/shop-services/internal/postgres"
	"github.com/shopkit/shop-services/internal/shopping"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.MustNew("shopping-api", cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Remote service clients
	productBase, err := clients.New("product", cfg.ProductBaseURL)
	if err != nil {
		log.Fatal("product client", zap.Error(err))
	}
	userBase, err := clients.New("user", cfg.UserBaseURL)
	if err != nil {
		log.Fatal("user client", zap.Error(err))
	}

	svc := &shopping.Service{
		Repo:     &shopping.Repo{DB: db},
		Products: clients.NewProductClient(productBase),
		Users:    clients.NewUserClient(userBase),
		Log:      log,
	}

	router := httpx.NewRouter()
	h := &httpx.ShoppingHandler{
		Service:  svc,
		Identity: httpx.HeaderIdentity{},
		Log:      log,
	}
	h.Register(router)

	srv := &http.Server{Addr: cfg.ShoppingHTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.ShoppingHTTPAddr))
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
}
