package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/leaseportal/internal/dbx"
	"github.com/dmitrijs2005/leaseportal/internal/server/migrations"
	"github.com/dmitrijs2005/leaseportal/internal/server/repositories/credentials"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Credentials(db dbx.DBTX) credentials.Repository {
	return credentials.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "sqlite")
}

// SQLiteDSN adds a busy timeout so concurrent registrations wait for the
// write lock instead of failing with SQLITE_BUSY.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}
