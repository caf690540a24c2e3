package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL,
  password TEXT NOT NULL,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLite_AppendAndLoadAll(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	got, err := r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	rows := []models.Credential{
		{Email: "a@guidehousefederal.com", Password: "one"},
		{Email: "a@guidehousefederal.com", Password: "two"},
	}
	for _, c := range rows {
		require.NoError(t, r.Append(ctx, c))
	}

	got, err = r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestSQLite_MissingTableIsStorageError(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLiteRepository(db)

	_, err = r.LoadAll(context.Background())
	assert.ErrorIs(t, err, common.ErrStorage)

	err = r.Append(context.Background(), models.Credential{Email: "e", Password: "p"})
	assert.ErrorIs(t, err, common.ErrStorage)
}
