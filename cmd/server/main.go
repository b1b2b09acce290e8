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
	_ "time/tzdata"

	"bakery-storefront/config"
	"bakery-storefront/internal/api"
	"bakery-storefront/internal/broker"
	"bakery-storefront/internal/cart"
	"bakery-storefront/internal/catalog"
	"bakery-storefront/internal/concierge"
	"bakery-storefront/internal/redisclient"
	"bakery-storefront/internal/service"
	"bakery-storefront/internal/session"
	"bakery-storefront/internal/store"
	"bakery-storefront/internal/util"
	"bakery-storefront/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting bakery storefront")

	tp, err := util.InitTracer(util.ServiceName, cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Printf("Error shutting down tracer: %v", err)
			}
		}()
	}

	ctx := context.Background()

	menu := catalog.Default()
	if cfg.Catalog.DatabaseURL != "" {
		db, err := store.NewStore(cfg.Catalog.DatabaseURL)
		if err != nil {
			logger.Warn("Catalog database unavailable, serving built-in menu", zap.Error(err))
		} else {
			menu, err = catalog.Load(ctx, db)
			if err != nil {
				logger.Warn("Failed to load menu from database, serving built-in menu", zap.Error(err))
			}
			_ = db.Close()
		}
	}
	logger.Info("Menu loaded", zap.Int("items", len(menu.Items())))

	cartTTL := time.Duration(cfg.Cart.TTLHours) * time.Hour
	readiness := map[string]api.Pinger{}
	var storage cart.Storage = cart.NewExpiringMemoryStorage(cartTTL)
	if cfg.Cart.Storage == "redis" {
		redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cartTTL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		storage = redisClient
		readiness["redis"] = redisClient
		log.Println("Redis connected")
	}

	var notifier service.ReceiptNotifier = broker.NewLogNotifier()
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicReceipts)
		defer producer.Close()
		notifier = broker.NewReceiptPublisher(producer)
		log.Println("Kafka producer initialized")
	}

	var adapter concierge.Adapter = concierge.Unavailable{}
	if cfg.AI.APIKey != "" {
		gemini, err := concierge.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.TextModel, cfg.AI.ImageModel, menu.Items())
		if err != nil {
			logger.Warn("Concierge disabled", zap.Error(err))
		} else {
			adapter = gemini
		}
	} else {
		logger.Info("Concierge disabled: no API key configured")
	}

	loc, err := time.LoadLocation(cfg.Business.ShopTimezone)
	if err != nil {
		log.Fatalf("Invalid shop timezone %q: %v", cfg.Business.ShopTimezone, err)
	}
	window, err := service.ParsePickupWindow(cfg.Business.PickupOpen, cfg.Business.PickupClose)
	if err != nil {
		log.Fatalf("Invalid pickup window: %v", err)
	}

	checkoutService := service.NewCheckoutService(
		service.NewAssembler(service.NewSequenceIDGenerator()),
		service.NewDetailsValidator(loc, window),
		service.NewPaymentService(time.Duration(cfg.Business.PaymentDelayMs)*time.Millisecond),
		notifier,
	)

	registry := session.NewRegistry(storage, adapter)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	idle := time.Duration(cfg.Business.SessionIdleMinutes) * time.Minute
	sweeper := worker.NewSessionSweeper(registry, max(idle/4, time.Minute), idle)
	sweeper.Start(workerCtx)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	handler := api.NewHandler(menu, registry, checkoutService, api.Options{
		CookieMaxAge: cartTTL,
		SecureCookie: cfg.Server.Env == "production",
		Readiness:    readiness,
	})
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	sweeper.Stop()
	workerCancel()

	log.Println("Server exited")
}
