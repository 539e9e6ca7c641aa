package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	awspkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"github.com/yashrajoria/shop-backend/pkg/eventbus"
	"github.com/yashrajoria/shop-backend/services/cart-service/config"
	"github.com/yashrajoria/shop-backend/services/cart-service/controllers"
	"github.com/yashrajoria/shop-backend/services/cart-service/database"
	"github.com/yashrajoria/shop-backend/services/cart-service/discount"
	"github.com/yashrajoria/shop-backend/services/cart-service/routes"
	"github.com/yashrajoria/shop-backend/services/common/logger"
	"github.com/yashrajoria/shop-backend/services/common/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	redisClient := database.NewRedisClient(cfg.RedisURL)
	repo := database.NewCartRepository(redisClient, cfg.CartTTL)
	discounts := discount.NewClient(cfg.DiscountServiceURL)

	publisher, err := newPublisher(cfg)
	if err != nil {
		log.Fatalf("failed to build checkout publisher: %v", err)
	}
	defer publisher.Close()

	metrics, err := awspkg.NewMetricsClient(context.Background())
	if err != nil {
		logger.Log.Warn("cloudwatch metrics disabled")
		metrics = nil
	}

	controller := controllers.NewCartController(repo, discounts, publisher, metrics, logger.Log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.Log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.MetricsMiddleware(metrics, "cart-service"))

	routes.RegisterCartRoutes(router, controller)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Sugar().Infof("Cart Service is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	logger.Log.Info("Server shutdown complete.")
}

func newPublisher(cfg config.Config) (eventbus.Publisher, error) {
	if cfg.BusBackend == "sns" {
		awsCfg, err := awspkg.LoadAWSConfig(context.Background())
		if err != nil {
			return nil, err
		}
		return eventbus.NewSNSPublisher(awspkg.NewSNSClient(awsCfg), cfg.SNSTopicArn), nil
	}
	return eventbus.NewKafkaPublisher(eventbus.ParseBrokers(cfg.KafkaBrokers), cfg.KafkaTopic), nil
}
