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

	"tailor-shop/config"
	"tailor-shop/controllers"
	_ "tailor-shop/docs"
	"tailor-shop/libs"
	"tailor-shop/middleware"
	"tailor-shop/repositories"
	"tailor-shop/routes"
	"tailor-shop/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Tailor Shop Storefront Client API
// @version 1.0
// @description Local cart and checkout daemon for the tailor shop storefront.
// @BasePath /
func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger := config.NewLogger(cfg.AppEnv)
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	store := openCartStore(cfg, logger)
	defer store.Close()

	cartRepo := repositories.NewCartRepository(store, logger)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	cartRepo.Load(loadCtx)
	cancelLoad()

	apiClient := libs.NewAPIClient(cfg.APIBaseURL, cfg.APIToken, cfg.SubmitTimeout, logger)

	pricing := services.NewPricingService()
	addresses := services.NewAddressService(apiClient, logger)
	orders := services.NewOrderService(cartRepo, pricing, apiClient, cfg.SubmitTimeout, logger)
	checkout := services.NewCheckoutService(cartRepo, pricing, addresses, orders, logger)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router,
		controllers.NewCartController(cartRepo),
		controllers.NewCheckoutController(checkout, addresses),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("storefront client listening",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.AppEnv),
			zap.String("swagger", "http://localhost:"+cfg.Port+"/swagger/index.html"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := cartRepo.Flush(ctx); err != nil {
		logger.Warn("cart flush on shutdown failed", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown failed", zap.Error(err))
	}
}

// openCartStore picks the configured store, falling back to SQLite when
// Redis is configured but unreachable (the cart must outlive restarts
// either way).
func openCartStore(cfg *config.Config, logger *zap.Logger) repositories.CartStore {
	if cfg.CartStore == "redis" {
		store, err := repositories.NewRedisCartStore(cfg.RedisAddr, cfg.RedisPassword)
		if err == nil {
			logger.Info("cart store: redis", zap.String("addr", cfg.RedisAddr))
			return store
		}
		logger.Warn("redis cart store unavailable, falling back to sqlite", zap.Error(err))
	}

	store, err := repositories.NewSQLiteCartStore(cfg.CartDBPath)
	if err != nil {
		log.Fatalf("Failed to open cart store: %v", err)
	}
	logger.Info("cart store: sqlite", zap.String("path", cfg.CartDBPath))
	return store
}
