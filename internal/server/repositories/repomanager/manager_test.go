package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/leaseportal/internal/server/config"
	"github.com/dmitrijs2005/leaseportal/internal/server/models"
	"github.com/dmitrijs2005/leaseportal/internal/server/repositories/credentials"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepositoryManager_Credentials(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := &PostgresRepositoryManager{}
	_, ok := m.Credentials(db).(*credentials.PostgresRepository)
	assert.True(t, ok)
}

func TestPostgresRepositoryManager_RunMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	m := &PostgresRepositoryManager{}
	require.NoError(t, m.RunMigrations(context.Background(), db))
	assert.Equal(t, "postgres", gotDir)

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("migrate fail")
	}
	assert.EqualError(t, m.RunMigrations(context.Background(), db), "migrate fail")
}

func TestOpenCredentials_SQLiteRunsMigrations(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CredentialBackend = config.CredentialBackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "portal.db")

	repo, closer, err := OpenCredentials(ctx, cfg)
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, repo.Append(ctx, models.Credential{Email: "a@guidehousefederal.com", Password: "pw"}))
	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Credential{{Email: "a@guidehousefederal.com", Password: "pw"}}, got)

	// Reopening applies no migration twice.
	repo2, closer2, err := OpenCredentials(ctx, cfg)
	require.NoError(t, err)
	defer closer2.Close()
	got, err = repo2.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpenCredentials_Parquet(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CredentialFile = filepath.Join(t.TempDir(), "users.parquet")

	repo, closer, err := OpenCredentials(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	_, ok := repo.(*credentials.ParquetRepository)
	assert.True(t, ok)
}

func TestOpenCredentials_PostgresMigrationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	origOpen, origUp := sqlOpen, gooseUpContext
	t.Cleanup(func() { sqlOpen, gooseUpContext = origOpen, origUp })

	var gotDriver string
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		gotDriver = driver
		return db, nil
	}
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("no database")
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CredentialBackend = config.CredentialBackendPostgres

	_, _, err = OpenCredentials(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
	assert.Equal(t, "pgx", gotDriver)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenCredentials_UnknownBackend(t *testing.T) {
	_, _, err := OpenCredentials(context.Background(), &config.Config{CredentialBackend: "csv"})
	assert.Error(t, err)
}

func writeLegacy(t *testing.T, rows ...models.Credential) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legacy.parquet")
	src := credentials.NewParquetRepository(path, false)
	for _, c := range rows {
		require.NoError(t, src.Append(context.Background(), c))
	}
	return path
}

func TestOpenCredentials_ImportsLegacyOnce(t *testing.T) {
	ctx := context.Background()
	legacy := []models.Credential{
		{Email: "a@guidehousefederal.com", Password: "pw1"},
		{Email: "b@guidehousefederal.com", Password: "pw2"},
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CredentialBackend = config.CredentialBackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "portal.db")
	cfg.ImportFile = writeLegacy(t, legacy...)

	repo, closer, err := OpenCredentials(ctx, cfg)
	require.NoError(t, err)
	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, legacy, got)
	require.NoError(t, closer.Close())

	repo, closer, err = OpenCredentials(ctx, cfg)
	require.NoError(t, err)
	defer closer.Close()
	got, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2, "second start must not duplicate rows")
}

func TestOpenCredentials_ImportMissingFileIsNoop(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CredentialBackend = config.CredentialBackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "portal.db")
	cfg.ImportFile = filepath.Join(t.TempDir(), "absent.parquet")

	repo, closer, err := OpenCredentials(ctx, cfg)
	require.NoError(t, err)
	defer closer.Close()
	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImportLegacy_RollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	path := writeLegacy(t,
		models.Credential{Email: "a@guidehousefederal.com", Password: "pw1"},
		models.Credential{Email: "b@guidehousefederal.com", Password: "pw2"},
	)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT email, password FROM credentials`).
		WillReturnRows(sqlmock.NewRows([]string{"email", "password"}))
	mock.ExpectExec(`INSERT INTO credentials`).
		WithArgs("a@guidehousefederal.com", "pw1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO credentials`).
		WithArgs("b@guidehousefederal.com", "pw2").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = importLegacy(context.Background(), db, &PostgresRepositoryManager{}, path)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
