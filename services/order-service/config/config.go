package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port string
	Env  string

	// Postgres connection settings.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// BusBackend selects the transport: "kafka" or "sqs".
	BusBackend string

	KafkaBrokers string
	KafkaTopic   string
	KafkaGroupID string

	SQSQueueName string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8088"),
		Env:          getEnv("ENV", "development"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "orders"),
		BusBackend:   getEnv("BUS_BACKEND", "kafka"),
		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "checkout.requested"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "order-service"),
		SQSQueueName: getEnv("SQS_QUEUE_NAME", "checkout-requested"),
	}
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
