package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skirsanov/gadgetshop/internal/config"
	"github.com/skirsanov/gadgetshop/internal/events"
	"github.com/skirsanov/gadgetshop/internal/httpserver"
	"github.com/skirsanov/gadgetshop/internal/logging"
	"github.com/skirsanov/gadgetshop/internal/middleware"
	"github.com/skirsanov/gadgetshop/internal/payment"
	"github.com/skirsanov/gadgetshop/internal/repo"
	"github.com/skirsanov/gadgetshop/internal/search"
	"github.com/skirsanov/gadgetshop/internal/service"
	"github.com/skirsanov/gadgetshop/internal/storage"
	"github.com/skirsanov/gadgetshop/internal/tokens"
)

func main() {
	cfg := config.Load()
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := repo.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	issuer := &tokens.Issuer{JWTSecret: cfg.JWTSecret, RefreshSecret: cfg.RefreshSecret}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	esClient, err := search.NewClient(cfg)
	if err != nil {
		logger.Error("elasticsearch init failed, search disabled", "error", err)
	}
	index := &search.Index{ES: esClient, Name: cfg.ESIndex}

	imageStore, err := storage.NewImageStore(cfg)
	if err != nil {
		log.Fatalf("image storage init error: %v", err)
	}
	if imageStore != nil {
		bucketCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = imageStore.EnsureBucket(bucketCtx)
		cancel()
		if err != nil {
			logger.Error("image bucket check failed", "error", err)
		}
	}

	authSvc := &service.AuthService{Repo: gormRepo, Issuer: issuer}
	cartSvc := &service.CartService{Repo: gormRepo}
	orderSvc := &service.OrderService{Repo: gormRepo}

	bootCtx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 10*time.Second)
	err = authSvc.BootstrapAdmin(bootCtx, cfg.AdminEmail, cfg.AdminPassword)
	cancel()
	if err != nil {
		logger.Error("admin bootstrap failed", "error", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(middleware.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		Cart:    &httpserver.CartHTTP{Svc: cartSvc},
		Product: &httpserver.ProductHTTP{Repo: gormRepo, Index: index, Producer: producer},
		Order:   &httpserver.OrderHTTP{Svc: orderSvc, Producer: producer},
		Upload:  &httpserver.UploadHTTP{Store: imageStore},
		Payment: &httpserver.PaymentHTTP{Client: payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentKeyID, cfg.PaymentSecret)},
		AuthMW:  middleware.NewAuth(cfg.JWTSecret, gormRepo),
	})

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
