package config

import (
	"os"
	"time"
)

type Config struct {
	Port               string
	Env                string
	RedisURL           string
	DiscountServiceURL string
	CartTTL            time.Duration

	// Bus selection: "kafka" publishes straight to the topic, "sns" goes
	// through SNS (fanned out to SQS on the order side).
	BusBackend   string
	KafkaBrokers string
	KafkaTopic   string
	SNSTopicArn  string
}

func Load() Config {
	return Config{
		Port:               getEnv("PORT", "8086"),
		Env:                getEnv("APP_ENV", "development"),
		RedisURL:           getEnv("REDIS_URL", "redis://redis:6379"),
		DiscountServiceURL: getEnv("DISCOUNT_SERVICE_URL", "http://discount-service:8087"),
		CartTTL:            time.Hour * 24 * 7, // default 7 days
		BusBackend:         getEnv("BUS_BACKEND", "kafka"),
		KafkaBrokers:       getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:         getEnv("CHECKOUT_TOPIC", "checkout.requested"),
		SNSTopicArn:        os.Getenv("CHECKOUT_SNS_TOPIC_ARN"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
