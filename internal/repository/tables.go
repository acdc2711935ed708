package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/store"
)

const TablesKey = "pos_tables"

var ErrTableNotFound = errors.New("table not found")

func defaultTables() []domain.Table {
	return []domain.Table{
		{ID: 1, Name: "Table 1", Status: domain.TableAvailable, Capacity: 4},
		{ID: 2, Name: "Table 2", Status: domain.TableOccupied, Capacity: 2},
		{ID: 3, Name: "Table 3", Status: domain.TableAvailable, Capacity: 6},
		{ID: 4, Name: "Table 4", Status: domain.TableReserved, Capacity: 4},
		{ID: 5, Name: "Table 5", Status: domain.TableAvailable, Capacity: 8},
		{ID: 6, Name: "Table 6", Status: domain.TableCleaning, Capacity: 2},
		{ID: 7, Name: "Table 7", Status: domain.TableAvailable, Capacity: 4},
	}
}

// TableRepository owns the shared table collection. Status updates are
// last-write-wins: the whole list is persisted each time, so a concurrent
// edit of a different table from another context can be lost.
type TableRepository struct {
	store store.Store
}

func NewTableRepository(s store.Store) *TableRepository {
	return &TableRepository{store: s}
}

// List returns all tables, seeding the default seven-table set on first read.
// The seed is guarded only by absence, so two contexts racing their first read
// may both write it; the content is identical either way.
func (r *TableRepository) List(ctx context.Context) ([]domain.Table, error) {
	entry, ok, err := r.store.Get(ctx, TablesKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var tables []domain.Table
		if err := json.Unmarshal([]byte(entry.Value), &tables); err == nil {
			return tables, nil
		}
		log.Printf("tables: discarding corrupt payload under %q, reseeding defaults", TablesKey)
	}
	tables := defaultTables()
	if err := r.save(ctx, tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// UpdateStatus sets one table's status. Last write wins.
func (r *TableRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	if !domain.ValidTableStatus(status) {
		return fmt.Errorf("invalid table status %q", status)
	}
	tables, err := r.List(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range tables {
		if tables[i].ID == id {
			tables[i].Status = status
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: id=%d", ErrTableNotFound, id)
	}
	return r.save(ctx, tables)
}

// ResetAll forces every table to the given status. Used by daily closing.
func (r *TableRepository) ResetAll(ctx context.Context, status string) error {
	if !domain.ValidTableStatus(status) {
		return fmt.Errorf("invalid table status %q", status)
	}
	tables, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range tables {
		tables[i].Status = status
	}
	return r.save(ctx, tables)
}

func (r *TableRepository) save(ctx context.Context, tables []domain.Table) error {
	payload, err := json.Marshal(tables)
	if err != nil {
		return err
	}
	_, err = r.store.Set(ctx, TablesKey, string(payload))
	return err
}

// Subscribe re-reads the table list on every change made by other contexts.
func (r *TableRepository) Subscribe(ctx context.Context) (<-chan []domain.Table, func()) {
	events, cancel := r.store.Subscribe(ctx, TablesKey)
	out := make(chan []domain.Table, 1)
	go func() {
		defer close(out)
		for range events {
			tables, err := r.List(ctx)
			if err != nil {
				log.Printf("tables: refresh after change event failed: %v", err)
				continue
			}
			select {
			case <-out:
			default:
			}
			select {
			case out <- tables:
			default:
			}
		}
	}()
	return out, cancel
}
