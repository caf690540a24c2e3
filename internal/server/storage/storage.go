// Package storage keeps the uploaded documents of the file repository,
// either in a local directory or under a prefix of an S3 bucket.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/leaseportal/internal/server/config"
)

// Storage is a flat namespace of named entries.
//
// Put replaces an existing entry of the same name. Callers validate names;
// Storage only guarantees that a reader never observes a partial entry.
type Storage interface {
	List(ctx context.Context) ([]string, error)
	Put(ctx context.Context, name string, r io.Reader, size int64) error
}

// New returns the storage selected by cfg.RepositoryBackend.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.RepositoryBackend {
	case config.RepositoryBackendLocal:
		return NewLocalStorage(cfg.RepositoryPath)
	case config.RepositoryBackendS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown repository backend %q", cfg.RepositoryBackend)
	}
}
