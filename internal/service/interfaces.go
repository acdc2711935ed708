package service

import (
	"context"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/events"
	"restaurant-pos/internal/export"
	"restaurant-pos/internal/repository"
)

type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	Append(ctx context.Context, order domain.Order) error
	FilterByDate(ctx context.Context, date string) ([]domain.Order, error)
	RemoveByDate(ctx context.Context, date string) ([]domain.Order, error)
}

type TableRepository interface {
	List(ctx context.Context) ([]domain.Table, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	ResetAll(ctx context.Context, status string) error
}

type EventPublisher interface {
	PublishOrderCompleted(ctx context.Context, event domain.OrderEvent) error
}

type ReportExporter interface {
	ExportDailyReport(orders []domain.Order, date string) error
}

type QRGenerator interface {
	Generate(table string, total int) ([]byte, error)
}

type CheckoutInterface interface {
	PayCash(ctx context.Context, session domain.Session, cart *Cart, table string, amountPaid int) (*domain.Bill, error)
	PayQRIS(ctx context.Context, session domain.Session, cart *Cart, table string) (*domain.Bill, error)
	QRISCode(table string, total int) ([]byte, error)
}

type ClosingInterface interface {
	ComputeDailyStats(ctx context.Context, date string) (*domain.DailyStats, error)
	CloseDay(ctx context.Context, date string) (*domain.ClosedDay, error)
}

var (
	_ OrderRepository = (*repository.OrderRepository)(nil)
	_ TableRepository = (*repository.TableRepository)(nil)
	_ EventPublisher  = (*events.KafkaPublisher)(nil)
	_ ReportExporter  = export.CSVReporter{}
)
