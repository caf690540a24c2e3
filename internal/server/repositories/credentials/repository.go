// Package credentials persists the credential table: an ordered sequence of
// (email, password) rows with no uniqueness constraint.
//
// Three backends are provided:
//
//   - ParquetRepository: a single parquet file with "email" and "password"
//     columns, the layout the original portal wrote. Every append rewrites
//     the whole file.
//   - SQLiteRepository and PostgresRepository: an append-only "credentials"
//     table created by goose migrations.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/leaseportal/internal/server/models"
)

// Repository is the credential store contract used by the auth service.
type Repository interface {
	// Append adds c to the end of the table. No constraint is checked.
	Append(ctx context.Context, c models.Credential) error

	// LoadAll returns every row in insertion order. A table that was never
	// created yields an empty slice and no error.
	LoadAll(ctx context.Context) ([]models.Credential, error)
}
