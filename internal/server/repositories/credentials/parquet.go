package credentials

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/filex"
	"github.com/dmitrijs2005/leaseportal/internal/server/models"
	"github.com/parquet-go/parquet-go"
)

// parquetRow mirrors the two-column table written by pandas; optional string
// columns match what pyarrow produces for object dtype.
type parquetRow struct {
	Email    string `parquet:"email,optional"`
	Password string `parquet:"password,optional"`
}

type ParquetRepository struct {
	path string
	// mu serializes the read-modify-write cycle; nil reproduces the
	// unlocked behaviour where concurrent appends can lose rows.
	mu *sync.Mutex

	// afterRead runs between reading the snapshot and writing it back. Test seam.
	afterRead func()
}

// NewParquetRepository stores the table at path. When serialize is false
// appends are not locked against each other.
func NewParquetRepository(path string, serialize bool) *ParquetRepository {
	r := &ParquetRepository{path: path}
	if serialize {
		r.mu = &sync.Mutex{}
	}
	return r
}

func (r *ParquetRepository) readRows() ([]parquetRow, error) {
	ok, err := filex.Exists(r.path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return parquet.ReadFile[parquetRow](r.path)
}

// writeRows replaces the table through a temp file in the same directory,
// so readers see either the old or the new table.
func (r *ParquetRepository) writeRows(rows []parquetRow) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".credentials-*.parquet")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := parquet.Write(tmp, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

func (r *ParquetRepository) LoadAll(ctx context.Context) ([]models.Credential, error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, common.StorageError("read credentials", err)
	}

	result := make([]models.Credential, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.Credential{Email: row.Email, Password: row.Password})
	}
	return result, nil
}

func (r *ParquetRepository) Append(ctx context.Context, c models.Credential) error {
	if r.mu != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	rows, err := r.readRows()
	if err != nil {
		return common.StorageError("read credentials", err)
	}

	if r.afterRead != nil {
		r.afterRead()
	}

	rows = append(rows, parquetRow{Email: c.Email, Password: c.Password})

	if err := r.writeRows(rows); err != nil {
		return common.StorageError("write credentials", err)
	}
	return nil
}
