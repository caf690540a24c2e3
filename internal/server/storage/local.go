package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/filex"
	"github.com/google/uuid"
)

// tempPrefix marks in-flight uploads; List never reports them.
const tempPrefix = ".upload-"

// LocalStorage keeps entries as files in a single directory.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates root if needed.
func NewLocalStorage(root string) (*LocalStorage, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, common.StorageError("create repository root", err)
	}
	return &LocalStorage{root: abs}, nil
}

func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, common.StorageError("list repository", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Put streams r into a temporary file and renames it over name.
func (s *LocalStorage) Put(ctx context.Context, name string, r io.Reader, size int64) error {
	tmpPath := filepath.Join(s.root, tempPrefix+uuid.NewString())

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		return common.StorageError("create upload", err)
	}

	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := io.Copy(f, r); err != nil {
		cleanup()
		return common.StorageError("write upload", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return common.StorageError("close upload", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(s.root, name)); err != nil {
		_ = os.Remove(tmpPath)
		return common.StorageError("commit upload", err)
	}
	return nil
}
