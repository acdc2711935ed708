package repository

import (
	"context"
	"testing"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBootstrapsDefaults(t *testing.T) {
	repo := NewTableRepository(store.NewMemory().Open())
	ctx := context.Background()

	tables, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 7)

	wantStatuses := []string{
		domain.TableAvailable,
		domain.TableOccupied,
		domain.TableAvailable,
		domain.TableReserved,
		domain.TableAvailable,
		domain.TableCleaning,
		domain.TableAvailable,
	}
	wantCapacities := []int{4, 2, 6, 4, 8, 2, 4}
	for i, table := range tables {
		assert.Equal(t, i+1, table.ID)
		assert.Equal(t, wantStatuses[i], table.Status)
		assert.Equal(t, wantCapacities[i], table.Capacity)
	}

	// Second read without intervening writes returns the identical set.
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, tables, again)
}

func TestUpdateStatus(t *testing.T) {
	repo := NewTableRepository(store.NewMemory().Open())
	ctx := context.Background()

	require.NoError(t, repo.UpdateStatus(ctx, 1, domain.TableOccupied))

	tables, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TableOccupied, tables[0].Status)
	assert.Equal(t, domain.TableOccupied, tables[1].Status, "other tables untouched")

	err = repo.UpdateStatus(ctx, 99, domain.TableAvailable)
	assert.ErrorIs(t, err, ErrTableNotFound)

	err = repo.UpdateStatus(ctx, 1, "broken")
	assert.Error(t, err)
}

func TestResetAll(t *testing.T) {
	repo := NewTableRepository(store.NewMemory().Open())
	ctx := context.Background()

	require.NoError(t, repo.ResetAll(ctx, domain.TableAvailable))

	tables, err := repo.List(ctx)
	require.NoError(t, err)
	for _, table := range tables {
		assert.Equal(t, domain.TableAvailable, table.Status)
	}
}

func TestCorruptTablePayloadReseeds(t *testing.T) {
	handle := store.NewMemory().Open()
	repo := NewTableRepository(handle)
	ctx := context.Background()

	_, err := handle.Set(ctx, TablesKey, "oops")
	require.NoError(t, err)

	tables, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tables, 7)
}

// A status edit from another context can be lost to a concurrent edit here:
// the whole list is persisted each time and last write wins.
func TestUpdateStatusLastWriteWins(t *testing.T) {
	medium := store.NewMemory()
	repo1 := NewTableRepository(medium.Open())
	repo2 := NewTableRepository(medium.Open())
	ctx := context.Background()

	_, err := repo1.List(ctx)
	require.NoError(t, err)

	// repo2 reads before repo1's write lands, then writes over it.
	tables, err := repo2.List(ctx)
	require.NoError(t, err)
	require.NoError(t, repo1.UpdateStatus(ctx, 1, domain.TableOccupied))

	for i := range tables {
		if tables[i].ID == 3 {
			tables[i].Status = domain.TableCleaning
		}
	}
	require.NoError(t, repo2.save(ctx, tables))

	final, err := repo1.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, final[0].Status, "repo1's edit was overwritten")
	assert.Equal(t, domain.TableCleaning, final[2].Status)
}
