package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"restaurant-pos/internal/domain"
)

const topItemsLimit = 5

// Closing derives the day's summary and performs the export-then-archive
// workflow. The export is acknowledged before anything destructive happens:
// if it fails, no orders are removed and no tables are reset.
type Closing struct {
	orders   OrderRepository
	tables   TableRepository
	exporter ReportExporter
}

var _ ClosingInterface = (*Closing)(nil)

func NewClosing(orders OrderRepository, tables TableRepository, exporter ReportExporter) *Closing {
	return &Closing{orders: orders, tables: tables, exporter: exporter}
}

// ComputeDailyStats summarizes the given date's orders: count, revenue,
// average order value, per-method breakdown and top-selling items.
func (c *Closing) ComputeDailyStats(ctx context.Context, date string) (*domain.DailyStats, error) {
	dayOrders, err := c.orders.FilterByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	stats := &domain.DailyStats{Date: date, Orders: dayOrders, TotalOrders: len(dayOrders)}
	for _, o := range dayOrders {
		stats.TotalRevenue += o.Total
		switch o.PaymentMethod {
		case domain.PaymentCash:
			stats.CashOrders++
			stats.CashTotal += o.Total
		case domain.PaymentQRIS:
			stats.QRISOrders++
			stats.QRISTotal += o.Total
		}
	}
	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = float64(stats.TotalRevenue) / float64(stats.TotalOrders)
	}
	stats.TopItems = topItems(dayOrders)
	return stats, nil
}

// CloseDay exports the day's report, removes the day's orders from the active
// collection and resets every table to available. The returned ClosedDay is
// the caller's only record; closed days are never persisted or broadcast.
func (c *Closing) CloseDay(ctx context.Context, date string) (*domain.ClosedDay, error) {
	stats, err := c.ComputeDailyStats(ctx, date)
	if err != nil {
		return nil, err
	}

	if err := c.exporter.ExportDailyReport(stats.Orders, date); err != nil {
		return nil, fmt.Errorf("daily closing aborted, nothing archived: %w", err)
	}

	removed, err := c.orders.RemoveByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if err := c.tables.ResetAll(ctx, domain.TableAvailable); err != nil {
		return nil, err
	}

	closed := &domain.ClosedDay{Date: date, Orders: removed, TotalOrders: len(removed)}
	for _, o := range removed {
		closed.TotalRevenue += o.Total
	}
	return closed, nil
}

// topItems counts how many orders contained each item. Entries are the
// persisted "Name x2" strings; one entry counts once regardless of quantity.
func topItems(orders []domain.Order) []domain.ItemCount {
	counts := map[string]int{}
	for _, o := range orders {
		for _, entry := range o.Items {
			name, _, _ := strings.Cut(entry, " x")
			counts[name]++
		}
	}
	items := make([]domain.ItemCount, 0, len(counts))
	for name, count := range counts {
		items = append(items, domain.ItemCount{Name: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > topItemsLimit {
		items = items[:topItemsLimit]
	}
	return items
}
