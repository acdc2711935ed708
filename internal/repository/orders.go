package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/store"
)

const OrdersKey = "pos_orders"

// appendRetries bounds the optimistic-concurrency loop in Append.
const appendRetries = 5

var (
	// ErrInvalidOrder is returned when an order is missing required fields.
	ErrInvalidOrder = errors.New("order is missing required fields")
	// ErrCorruptData reports a persisted payload that failed to parse. Callers
	// receive the empty collection alongside it, so they can distinguish
	// "empty" from "corrupt" instead of the loss being silent.
	ErrCorruptData = errors.New("stored data is corrupt")
)

// OrderRepository owns the shared order collection: append-only from the
// cashier's perspective, removed only by daily closing.
type OrderRepository struct {
	store store.Store
}

func NewOrderRepository(s store.Store) *OrderRepository {
	return &OrderRepository{store: s}
}

// List returns all persisted orders in insertion order. A corrupt payload
// yields an empty slice plus ErrCorruptData.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	entry, ok, err := r.store.Get(ctx, OrdersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Order{}, nil
	}
	orders, err := decodeOrders(entry.Value)
	if err != nil {
		return []domain.Order{}, fmt.Errorf("%s: %w", OrdersKey, ErrCorruptData)
	}
	return orders, nil
}

// Append validates and persists one order. It performs a compare-and-swap
// retry loop so a concurrent append from another context is detected and
// re-applied instead of silently lost.
func (r *OrderRepository) Append(ctx context.Context, order domain.Order) error {
	if order.ID == 0 || order.Total == 0 || order.Date == "" {
		return fmt.Errorf("%w: id=%d total=%d date=%q", ErrInvalidOrder, order.ID, order.Total, order.Date)
	}

	for attempt := 0; attempt < appendRetries; attempt++ {
		entry, ok, err := r.store.Get(ctx, OrdersKey)
		if err != nil {
			return err
		}
		var orders []domain.Order
		var expected uint64
		if ok {
			expected = entry.Version
			orders, err = decodeOrders(entry.Value)
			if err != nil {
				// Corrupt payload: start over from empty so the collection
				// heals on the next successful write.
				orders = []domain.Order{}
			}
		}

		payload, err := json.Marshal(append(orders, order))
		if err != nil {
			return err
		}
		_, err = r.store.CompareAndSwap(ctx, OrdersKey, expected, string(payload))
		if errors.Is(err, store.ErrVersionConflict) {
			log.Printf("orders: concurrent write detected while appending order %d, retrying", order.ID)
			continue
		}
		return err
	}
	return fmt.Errorf("orders: append of order %d gave up after %d conflicts", order.ID, appendRetries)
}

func (r *OrderRepository) FilterByDate(ctx context.Context, date string) ([]domain.Order, error) {
	return r.filter(ctx, func(o domain.Order) bool { return o.Date == date })
}

// FilterByDateRange matches dates in [start, end]; YYYY-MM-DD compares lexically.
func (r *OrderRepository) FilterByDateRange(ctx context.Context, start, end string) ([]domain.Order, error) {
	return r.filter(ctx, func(o domain.Order) bool { return o.Date >= start && o.Date <= end })
}

// FilterByMonth takes a YYYY-MM prefix.
func (r *OrderRepository) FilterByMonth(ctx context.Context, month string) ([]domain.Order, error) {
	return r.filter(ctx, func(o domain.Order) bool { return strings.HasPrefix(o.Date, month+"-") })
}

// FilterByYear takes a YYYY prefix.
func (r *OrderRepository) FilterByYear(ctx context.Context, year string) ([]domain.Order, error) {
	return r.filter(ctx, func(o domain.Order) bool { return strings.HasPrefix(o.Date, year+"-") })
}

func (r *OrderRepository) filter(ctx context.Context, keep func(domain.Order) bool) ([]domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return orders, err
	}
	matched := []domain.Order{}
	for _, o := range orders {
		if keep(o) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// RemoveByDate deletes every order dated date, persists the remainder and
// returns the removed subset. Used by daily closing.
func (r *OrderRepository) RemoveByDate(ctx context.Context, date string) ([]domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil && !errors.Is(err, ErrCorruptData) {
		return nil, err
	}

	removed := []domain.Order{}
	remaining := []domain.Order{}
	for _, o := range orders {
		if o.Date == date {
			removed = append(removed, o)
		} else {
			remaining = append(remaining, o)
		}
	}

	payload, err := json.Marshal(remaining)
	if err != nil {
		return nil, err
	}
	if _, err := r.store.Set(ctx, OrdersKey, string(payload)); err != nil {
		return nil, err
	}
	return removed, nil
}

// Subscribe re-reads the collection whenever another context changes it and
// delivers the fresh view. The event payload is deliberately ignored; the
// store is the source of truth.
func (r *OrderRepository) Subscribe(ctx context.Context) (<-chan []domain.Order, func()) {
	events, cancel := r.store.Subscribe(ctx, OrdersKey)
	out := make(chan []domain.Order, 1)
	go func() {
		defer close(out)
		for range events {
			orders, err := r.List(ctx)
			if err != nil {
				log.Printf("orders: refresh after change event failed: %v", err)
				continue
			}
			// Keep only the freshest view if the consumer is behind.
			select {
			case <-out:
			default:
			}
			select {
			case out <- orders:
			default:
			}
		}
	}()
	return out, cancel
}

// Seed installs two sample orders when the collection is empty, mirroring the
// demo bootstrap of the original dashboard.
func (r *OrderRepository) Seed(ctx context.Context, date string) error {
	orders, err := r.List(ctx)
	if err != nil || len(orders) > 0 {
		return err
	}
	demo := []domain.Order{
		{
			ID: 1, Table: "Table 1", Items: []string{"Burger x1", "Coffee x1"},
			Subtotal: 50000, TaxAndService: 10000, Total: 60000,
			Status: "completed", Time: "10:30 AM", Date: date,
			Cashier: "John Doe", PaymentMethod: domain.PaymentCash,
		},
		{
			ID: 2, Table: "Table 2", Items: []string{"Pizza x1", "Salad x1"},
			Subtotal: 100000, TaxAndService: 20000, Total: 120000,
			Status: "completed", Time: "11:15 AM", Date: date,
			Cashier: "Jane Smith", PaymentMethod: domain.PaymentQRIS,
		},
	}
	payload, err := json.Marshal(demo)
	if err != nil {
		return err
	}
	_, err = r.store.Set(ctx, OrdersKey, string(payload))
	return err
}

func decodeOrders(value string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := json.Unmarshal([]byte(value), &orders); err != nil {
		log.Printf("orders: discarding corrupt payload under %q: %v", OrdersKey, err)
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
