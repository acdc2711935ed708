package main

import (
	"context"
	"log"
	"time"

	"restaurant-pos/config"
	httpapi "restaurant-pos/internal/api/http"
	"restaurant-pos/internal/events"
	"restaurant-pos/internal/export"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/service"
	"restaurant-pos/internal/store"
)

func main() {
	client := config.MustInitRedis()
	defer client.Close()

	shared := store.NewRedis(client)
	orders := repository.NewOrderRepository(shared)
	tables := repository.NewTableRepository(shared)

	var publisher service.EventPublisher
	if config.KafkaBroker() != "" {
		writer := config.NewKafkaWriter("orders")
		defer writer.Close()
		publisher = events.NewKafkaPublisher(writer)
	}

	checkout := service.NewCheckout(orders, tables, publisher, service.DefaultQRGenerator{
		MerchantID: config.MerchantID(),
	})
	closing := service.NewClosing(orders, tables, export.CSVReporter{Dir: config.ReportDir()})

	ctx := context.Background()
	if config.DemoData() {
		today := time.Now().Format("2006-01-02")
		if err := orders.Seed(ctx, today); err != nil {
			log.Printf("demo data bootstrap failed: %v", err)
		}
	}
	if _, err := tables.List(ctx); err != nil {
		log.Fatal("Failed to bootstrap tables:", err)
	}

	handler := httpapi.NewHandler(orders, tables, checkout, closing)
	httpapi.StartServer(config.HTTPAddr(), httpapi.NewRouter(handler))
}
