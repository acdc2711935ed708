package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func HTTPAddr() string {
	return getenv("HTTP_ADDR", ":8080")
}

func ReportDir() string {
	return getenv("REPORT_DIR", ".")
}

func MerchantID() string {
	return getenv("QRIS_MERCHANT_ID", "POS-DEMO")
}

// DemoData enables the sample-order bootstrap on startup.
func DemoData() bool {
	return os.Getenv("POS_DEMO_DATA") == "1"
}

func KafkaBroker() string {
	return os.Getenv("KAFKA_BROKER")
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: getenv("REDIS_HOST", "localhost") + ":" + getenv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(KafkaBroker()),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
