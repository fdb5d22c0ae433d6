package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/skomarov/eshop/internal/config"
	"github.com/skomarov/eshop/internal/es"
	"github.com/skomarov/eshop/internal/httpserver"
	"github.com/skomarov/eshop/internal/mykafka"
	"github.com/skomarov/eshop/internal/repo"
	"github.com/skomarov/eshop/internal/service"
	"github.com/skomarov/eshop/pkg/db"
	"github.com/skomarov/eshop/pkg/logging"
	loggingmw "github.com/skomarov/eshop/pkg/middleware/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := repo.AutoMigrate(gormDB); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	store := &repo.GormRepo{DB: gormDB}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	} else {
		logger.Warn("kafka disabled, no brokers configured")
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(es.Options{
			URL:      cfg.ESURL,
			Username: cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			logger.Warn("elasticsearch unavailable, search falls back to database", "error", err)
			esClient = nil
		}
	}

	cartSvc := &service.CartService{Repo: store}
	orderSvc := &service.OrderService{Repo: store}
	wishlistSvc := &service.WishlistService{Repo: store}
	catalogSvc := &service.CatalogService{Repo: store}
	authSvc := &service.AuthService{Repo: store, JWTSecret: cfg.JWTSecret}

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:     &httpserver.CartHTTP{Svc: cartSvc, Producer: producer},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderSvc, Producer: producer},
		WishlistHandler: &httpserver.WishlistHTTP{Svc: wishlistSvc},
		ProductHandler:  &httpserver.ProductHTTP{Svc: catalogSvc, Producer: producer, ES: esClient},
		CategoryHandler: &httpserver.CategoryHTTP{Svc: catalogSvc},
		AuthHandler:     &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		JWTSecret:       cfg.JWTSecret,
	})

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
