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
	"github.com/shopspring/decimal"

	"github.com/yashrajoria/shop-backend/services/common/logger"
	"github.com/yashrajoria/shop-backend/services/common/middleware"
	"github.com/yashrajoria/shop-backend/services/discount-service/controllers"
	"github.com/yashrajoria/shop-backend/services/discount-service/models"
	"github.com/yashrajoria/shop-backend/services/discount-service/routes"
	"github.com/yashrajoria/shop-backend/services/discount-service/store"
)

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	logger.Initialize(getEnv("APP_ENV", "development"))
	defer logger.Log.Sync()

	couponStore := store.NewCouponStore()
	couponStore.Seed([]models.Coupon{
		{ProductName: "IPhone X", Description: "IPhone Discount", Amount: decimal.NewFromInt(150)},
		{ProductName: "Samsung 10", Description: "Samsung Discount", Amount: decimal.NewFromInt(100)},
	})

	controller := controllers.NewDiscountController(couponStore, logger.Log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.Log))
	router.Use(middleware.SecurityHeaders())

	routes.RegisterDiscountRoutes(router, controller)

	port := getEnv("PORT", "8087")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Log.Sugar().Infof("Discount Service is running on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
}
