// Package mocks provides testify mocks for the service ports.
package mocks

import (
	"context"

	"restaurant-pos/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return ordersArg(args.Get(0)), args.Error(1)
}

func (m *OrderRepository) Append(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) FilterByDate(ctx context.Context, date string) ([]domain.Order, error) {
	args := m.Called(ctx, date)
	return ordersArg(args.Get(0)), args.Error(1)
}

func (m *OrderRepository) RemoveByDate(ctx context.Context, date string) ([]domain.Order, error) {
	args := m.Called(ctx, date)
	return ordersArg(args.Get(0)), args.Error(1)
}

type TableRepository struct {
	mock.Mock
}

func NewTableRepository(t testingT) *TableRepository {
	m := &TableRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TableRepository) List(ctx context.Context) ([]domain.Table, error) {
	args := m.Called(ctx)
	var tables []domain.Table
	if v := args.Get(0); v != nil {
		tables = v.([]domain.Table)
	}
	return tables, args.Error(1)
}

func (m *TableRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *TableRepository) ResetAll(ctx context.Context, status string) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) PublishOrderCompleted(ctx context.Context, event domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type ReportExporter struct {
	mock.Mock
}

func NewReportExporter(t testingT) *ReportExporter {
	m := &ReportExporter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReportExporter) ExportDailyReport(orders []domain.Order, date string) error {
	args := m.Called(orders, date)
	return args.Error(0)
}

func ordersArg(v interface{}) []domain.Order {
	if v == nil {
		return nil
	}
	return v.([]domain.Order)
}
