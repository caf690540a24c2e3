// Package repomanager opens the configured credential backend, running
// migrations for the SQL ones.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/leaseportal/internal/dbx"
	"github.com/dmitrijs2005/leaseportal/internal/server/config"
	"github.com/dmitrijs2005/leaseportal/internal/server/repositories/credentials"
)

// RepositoryManager builds repositories over a SQL handle and owns its schema.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Credentials(db dbx.DBTX) credentials.Repository
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// sqlOpen is a test seam for sql.Open.
var sqlOpen = sql.Open

func openSQL(ctx context.Context, m RepositoryManager, driver, dsn, importFile string) (credentials.Repository, io.Closer, error) {
	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	if err := importLegacy(ctx, db, m, importFile); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("import error: %w", err)
	}

	return m.Credentials(db), db, nil
}

// importLegacy copies the parquet table at path into an empty SQL backend
// inside a single transaction. A non-empty target is left alone, so the
// copy happens once no matter how often the server restarts.
func importLegacy(ctx context.Context, db *sql.DB, m RepositoryManager, path string) error {
	if path == "" {
		return nil
	}

	rows, err := credentials.NewParquetRepository(path, false).LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		target := m.Credentials(tx)

		existing, err := target.LoadAll(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		for _, c := range rows {
			if err := target.Append(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// OpenCredentials returns the credential repository selected by
// cfg.CredentialBackend. The closer releases the database handle, if any.
func OpenCredentials(ctx context.Context, cfg *config.Config) (credentials.Repository, io.Closer, error) {
	switch cfg.CredentialBackend {
	case config.CredentialBackendParquet:
		return credentials.NewParquetRepository(cfg.CredentialFile, cfg.SerializeWrites), nopCloser{}, nil
	case config.CredentialBackendSQLite:
		return openSQL(ctx, &SQLiteRepositoryManager{}, "sqlite", SQLiteDSN(cfg.SQLitePath), cfg.ImportFile)
	case config.CredentialBackendPostgres:
		return openSQL(ctx, &PostgresRepositoryManager{}, "pgx", cfg.DatabaseDSN, cfg.ImportFile)
	default:
		return nil, nil, fmt.Errorf("unknown credential backend %q", cfg.CredentialBackend)
	}
}
