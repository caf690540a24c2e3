package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/leaseportal/internal/logging"
	"github.com/dmitrijs2005/leaseportal/internal/server/config"
	"github.com/dmitrijs2005/leaseportal/internal/server/models"
	"github.com/dmitrijs2005/leaseportal/internal/server/repositories/credentials"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func testConfig(mode string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.MatchMode = mode
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

func newParquetAuth(t *testing.T, cfg *config.Config) (*AuthService, *credentials.ParquetRepository) {
	t.Helper()
	repo := credentials.NewParquetRepository(filepath.Join(t.TempDir(), "users.parquet"), true)
	return NewAuthService(repo, NewHasher(cfg), cfg, nopLogger{}), repo
}

func loadAll(t *testing.T, repo credentials.Repository) []models.Credential {
	t.Helper()
	recs, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	return recs
}

// fakeRepo is an in-memory credentials.Repository with injectable errors.
type fakeRepo struct {
	records   []models.Credential
	loadErr   error
	appendErr error
}

func (f *fakeRepo) Append(_ context.Context, c models.Credential) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append(f.records, c)
	return nil
}

func (f *fakeRepo) LoadAll(context.Context) ([]models.Credential, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]models.Credential(nil), f.records...), nil
}
