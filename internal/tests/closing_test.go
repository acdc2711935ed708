package tests

import (
	"context"
	"testing"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/mocks"
	"restaurant-pos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleDay() []domain.Order {
	return []domain.Order{
		{
			ID: 1, Table: "Table 1", Items: []string{"Burger x1", "Coffee x1"},
			Subtotal: 50000, TaxAndService: 10000, Total: 60000,
			Status: "completed", Date: "2026-09-01", Cashier: "John Doe",
			PaymentMethod: domain.PaymentCash,
		},
		{
			ID: 2, Table: "Table 2", Items: []string{"Pizza x1", "Burger x1"},
			Subtotal: 100000, TaxAndService: 20000, Total: 120000,
			Status: "completed", Date: "2026-09-01", Cashier: "Jane Smith",
			PaymentMethod: domain.PaymentQRIS,
		},
	}
}

func TestComputeDailyStats(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	tables := mocks.NewTableRepository(t)
	exporter := mocks.NewReportExporter(t)
	closing := service.NewClosing(orders, tables, exporter)

	orders.On("FilterByDate", mock.Anything, "2026-09-01").Return(sampleDay(), nil).Once()

	stats, err := closing.ComputeDailyStats(context.Background(), "2026-09-01")
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01", stats.Date)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 180000, stats.TotalRevenue)
	assert.Equal(t, 90000.0, stats.AvgOrderValue)
	assert.Equal(t, 1, stats.CashOrders)
	assert.Equal(t, 60000, stats.CashTotal)
	assert.Equal(t, 1, stats.QRISOrders)
	assert.Equal(t, 120000, stats.QRISTotal)
	// Burger appears in both orders; one entry per order regardless of quantity.
	require.NotEmpty(t, stats.TopItems)
	assert.Equal(t, domain.ItemCount{Name: "Burger", Count: 2}, stats.TopItems[0])
}

func TestComputeDailyStatsEmptyDay(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	tables := mocks.NewTableRepository(t)
	exporter := mocks.NewReportExporter(t)
	closing := service.NewClosing(orders, tables, exporter)

	orders.On("FilterByDate", mock.Anything, "2026-09-02").Return([]domain.Order{}, nil).Once()

	stats, err := closing.ComputeDailyStats(context.Background(), "2026-09-02")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.AvgOrderValue)
	assert.Empty(t, stats.TopItems)
}

func TestCloseDay(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	tables := mocks.NewTableRepository(t)
	exporter := mocks.NewReportExporter(t)
	closing := service.NewClosing(orders, tables, exporter)

	day := sampleDay()
	orders.On("FilterByDate", mock.Anything, "2026-09-01").Return(day, nil).Once()
	exporter.On("ExportDailyReport", day, "2026-09-01").Return(nil).Once()
	orders.On("RemoveByDate", mock.Anything, "2026-09-01").Return(day, nil).Once()
	tables.On("ResetAll", mock.Anything, domain.TableAvailable).Return(nil).Once()

	closed, err := closing.CloseDay(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", closed.Date)
	assert.Equal(t, 2, closed.TotalOrders)
	assert.Equal(t, 180000, closed.TotalRevenue)
	assert.Equal(t, day, closed.Orders)
}

// A failed export aborts closing before anything destructive happens.
func TestCloseDayExportFailureKeepsData(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	tables := mocks.NewTableRepository(t)
	exporter := mocks.NewReportExporter(t)
	closing := service.NewClosing(orders, tables, exporter)

	day := sampleDay()
	orders.On("FilterByDate", mock.Anything, "2026-09-01").Return(day, nil).Once()
	exporter.On("ExportDailyReport", day, "2026-09-01").Return(assert.AnError).Once()

	closed, err := closing.CloseDay(context.Background(), "2026-09-01")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, closed)
	orders.AssertNotCalled(t, "RemoveByDate", mock.Anything, mock.Anything)
	tables.AssertNotCalled(t, "ResetAll", mock.Anything, mock.Anything)
}
