package credentials

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParquetRepo(t *testing.T, serialize bool) *ParquetRepository {
	t.Helper()
	return NewParquetRepository(filepath.Join(t.TempDir(), "users.parquet"), serialize)
}

func TestParquet_LoadAll_AbsentTableIsEmpty(t *testing.T) {
	r := newParquetRepo(t, true)

	got, err := r.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = os.Stat(r.path)
	assert.True(t, os.IsNotExist(err), "loading must not create the table")
}

func TestParquet_AppendCreatesTableAndKeepsOrder(t *testing.T) {
	r := newParquetRepo(t, true)
	ctx := context.Background()

	rows := []models.Credential{
		{Email: "a@guidehousefederal.com", Password: "pw123"},
		{Email: "b@guidehousefederal.com", Password: "pw456"},
		{Email: "a@guidehousefederal.com", Password: "other"},
	}
	for _, c := range rows {
		require.NoError(t, r.Append(ctx, c))
	}

	got, err := r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got, "duplicates kept in insertion order")
}

func TestParquet_ReopenReadsPersistedTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.parquet")
	ctx := context.Background()

	require.NoError(t, NewParquetRepository(path, true).Append(ctx, models.Credential{Email: "e", Password: "p"}))

	got, err := NewParquetRepository(path, false).LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Credential{{Email: "e", Password: "p"}}, got)
}

func TestParquet_UnserializedAppendsCanLoseRows(t *testing.T) {
	r := newParquetRepo(t, false)
	ctx := context.Background()

	// The second append runs entirely inside the first one's read-modify-write
	// window, so the first writer's stale snapshot overwrites it.
	r.afterRead = func() {
		r.afterRead = nil
		require.NoError(t, r.Append(ctx, models.Credential{Email: "second", Password: "2"}))
	}
	require.NoError(t, r.Append(ctx, models.Credential{Email: "first", Password: "1"}))

	got, err := r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Credential{{Email: "first", Password: "1"}}, got)
}

func TestParquet_SerializedConcurrentAppendsKeepAllRows(t *testing.T) {
	r := newParquetRepo(t, true)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.Append(ctx, models.Credential{Email: fmt.Sprintf("u%d", i), Password: "p"}))
		}(i)
	}
	wg.Wait()

	got, err := r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, n)
}

func TestParquet_StorageErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("table path is a directory", func(t *testing.T) {
		dir := t.TempDir()
		r := NewParquetRepository(dir, true)

		_, err := r.LoadAll(ctx)
		assert.ErrorIs(t, err, common.ErrStorage)

		err = r.Append(ctx, models.Credential{Email: "e", Password: "p"})
		assert.ErrorIs(t, err, common.ErrStorage)
	})

	t.Run("corrupt table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.parquet")
		require.NoError(t, os.WriteFile(path, []byte("not parquet"), 0o600))

		_, err := NewParquetRepository(path, true).LoadAll(ctx)
		assert.ErrorIs(t, err, common.ErrStorage)
	})

	t.Run("missing parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent", "users.parquet")

		err := NewParquetRepository(path, true).Append(ctx, models.Credential{Email: "e", Password: "p"})
		assert.ErrorIs(t, err, common.ErrStorage)
	})
}
