package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sethu9398/e-commerce/internal/config"
	httpapi "github.com/Sethu9398/e-commerce/internal/http"
	"github.com/Sethu9398/e-commerce/internal/repository"
	"github.com/Sethu9398/e-commerce/internal/service"
	"github.com/Sethu9398/e-commerce/pkg/logging"

	_ "github.com/Sethu9398/e-commerce/docs"
)

// @title E-Commerce API
// @version 1.0
// @description Products, per-user carts and the order workflow.
// @BasePath /api
func main() {
	cfg := config.Load()
	log := logging.New()

	var (
		users    repository.UserRepository
		products repository.ProductRepository
		carts    repository.CartRepository
		orders   repository.OrderRepository
		tx       repository.TxManager
	)
	switch cfg.Store {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := repository.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		cancel()
		if err != nil {
			log.Error("mongo connect failed", "uri", cfg.MongoURI, "error", err)
			os.Exit(1)
		}
		users = repository.NewMongoUsers(db)
		products = repository.NewMongoProducts(db)
		carts = repository.NewMongoCarts(db)
		orders = repository.NewMongoOrders(db)
		tx = repository.NewMongoTx()
	default:
		store := repository.NewMemoryStore()
		users = repository.NewMemoryUsers(store)
		products = store
		carts = repository.NewMemoryCarts(store)
		orders = repository.NewMemoryOrders(store)
		tx = repository.NewMemoryTx(store)
	}

	authSvc := service.NewAuthService(users, cfg.JWTSecret)
	productsSvc := service.NewProductService(products)
	cartsSvc := service.NewCartService(carts, products)
	ordersSvc := service.NewOrderService(products, orders, carts, tx, cfg.StrictStatus)

	srv := httpapi.NewServer(authSvc, productsSvc, cartsSvc, ordersSvc, log, cfg.CookieSecure)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr, "store", cfg.Store)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
