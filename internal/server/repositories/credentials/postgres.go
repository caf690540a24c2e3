package credentials

import (
	"context"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/dbx"
	"github.com/dmitrijs2005/leaseportal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, c models.Credential) error {
	query :=
		`INSERT INTO credentials (email, password)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, c.Email, c.Password); err != nil {
		return common.StorageError("insert credential", err)
	}
	return nil
}

func (r *PostgresRepository) LoadAll(ctx context.Context) ([]models.Credential, error) {
	query :=
		`SELECT email, password FROM credentials
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.StorageError("select credentials", err)
	}
	defer rows.Close()

	result := make([]models.Credential, 0)
	for rows.Next() {
		var c models.Credential
		if err := rows.Scan(&c.Email, &c.Password); err != nil {
			return nil, common.StorageError("scan credential", err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, common.StorageError("select credentials", err)
	}
	return result, nil
}
