package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/logging"
	"github.com/dmitrijs2005/leaseportal/internal/server/storage"
)

const maxFileNameBytes = 255

// FileService lists and stores documents in the file repository. With
// sanitize off, names reach the storage unchecked, as in the legacy portal.
type FileService struct {
	storage  storage.Storage
	sanitize bool
	logger   logging.Logger
}

func NewFileService(st storage.Storage, sanitize bool, logger logging.Logger) *FileService {
	return &FileService{
		storage:  st,
		sanitize: sanitize,
		logger:   logger.With("module", "file_service"),
	}
}

func (s *FileService) List(ctx context.Context) ([]string, error) {
	names, err := s.storage.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing repository failed", "error", err)
		return nil, err
	}
	return names, nil
}

// Store writes r under name, replacing any entry with that name.
// size may be -1 when unknown.
func (s *FileService) Store(ctx context.Context, name string, r io.Reader, size int64) error {
	if s.sanitize {
		if err := ValidateFileName(name); err != nil {
			s.logger.Warn(ctx, "upload rejected", "name", name)
			return err
		}
	}

	if err := s.storage.Put(ctx, name, r, size); err != nil {
		s.logger.Error(ctx, "storing file failed", "name", name, "error", err)
		return err
	}

	s.logger.Info(ctx, "file stored", "name", name, "size", size)
	return nil
}

// ValidateFileName accepts a single path element made of letters, digits,
// spaces and ._()- that does not start with a dot.
func ValidateFileName(name string) error {
	if name == "" || len(name) > maxFileNameBytes || name[0] == '.' {
		return common.ErrInvalidFileName
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == ' ', c == '.', c == '_', c == '(', c == ')', c == '-':
		default:
			return common.ErrInvalidFileName
		}
	}
	return nil
}
