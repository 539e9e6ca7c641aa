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
	cerrors "github.com/yashrajoria/shop-backend/services/common/errors"
	"github.com/yashrajoria/shop-backend/services/common/logger"
	"github.com/yashrajoria/shop-backend/services/common/middleware"
	"github.com/yashrajoria/shop-backend/services/order-service/config"
	"github.com/yashrajoria/shop-backend/services/order-service/controllers"
	"github.com/yashrajoria/shop-backend/services/order-service/cqrs"
	"github.com/yashrajoria/shop-backend/services/order-service/database"
	repositories "github.com/yashrajoria/shop-backend/services/order-service/repository"
	"github.com/yashrajoria/shop-backend/services/order-service/routes"
	"github.com/yashrajoria/shop-backend/services/order-service/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if err := database.Connect(cfg.DSN()); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repo := repositories.NewGormOrderRepository(database.DB)

	metrics, err := awspkg.NewMetricsClient(context.Background())
	if err != nil {
		logger.Log.Warn("cloudwatch metrics disabled")
		metrics = nil
	}

	// Command registry is built once at startup; a missing handler is a
	// wiring bug and must fail here, not on the first message.
	dispatcher := cqrs.NewDispatcher()
	dispatcher.MustRegister(services.CheckoutOrderCommandName, services.NewCheckoutOrderHandler(repo))

	consumer := services.NewCheckoutConsumer(dispatcher, metrics, logger.Log)

	subscriber, err := newSubscriber(cfg)
	if err != nil {
		log.Fatalf("failed to build checkout subscriber: %v", err)
	}

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	go func() {
		if err := subscriber.Run(consumerCtx, consumer.Handle); err != nil && err != context.Canceled {
			logger.Log.Error("checkout subscriber stopped: " + err.Error())
		}
	}()

	controller := controllers.NewOrderController(services.NewOrderService(repo), logger.Log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.Log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.MetricsMiddleware(metrics, "order-service"))
	router.Use(cerrors.ErrorMiddleware())

	routes.RegisterOrderRoutes(router, controller)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Sugar().Infof("Order Service is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	stopConsumer()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	logger.Log.Info("Server shutdown complete.")
}

func newSubscriber(cfg *config.Config) (eventbus.Subscriber, error) {
	if cfg.BusBackend == "sqs" {
		awsCfg, err := awspkg.LoadAWSConfig(context.Background())
		if err != nil {
			return nil, err
		}
		queueURL, err := awspkg.GetQueueURL(context.Background(), awsCfg, cfg.SQSQueueName)
		if err != nil {
			return nil, err
		}
		return eventbus.NewSQSSubscriber(awspkg.NewSQSConsumer(awsCfg, queueURL), logger.Log), nil
	}
	return eventbus.NewKafkaSubscriber(
		eventbus.ParseBrokers(cfg.KafkaBrokers), cfg.KafkaTopic, cfg.KafkaGroupID, logger.Log), nil
}
