package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		modify      func(*Config)
		expectPanic bool
	}{
		{
			name: "overrides",
			args: []string{"portal",
				"-a", "127.0.0.1:9090", "-d", "@example.org", "-b", "postgres", "-dsn", "db",
				"-m", "compat", "-hash=false", "-r", "s3", "-p", "uploads", "-s", "secret", "-t", "5",
				"-session", "redis", "-redis", "redis:6379", "-x", "leases.xlsx", "-log", "zap", "-import", "legacy.parquet",
				"-c", "ignored.json",
			},
			modify: func(c *Config) {
				c.HTTPAddr = "127.0.0.1:9090"
				c.DomainSuffix = "@example.org"
				c.CredentialBackend = CredentialBackendPostgres
				c.DatabaseDSN = "db"
				c.MatchMode = MatchModeCompat
				c.HashPasswords = false
				c.RepositoryBackend = RepositoryBackendS3
				c.RepositoryPath = "uploads"
				c.SecretKey = "secret"
				c.TokenValidityDuration = 5 * time.Minute
				c.SessionBackend = SessionBackendRedis
				c.RedisAddr = "redis:6379"
				c.SheetPath = "leases.xlsx"
				c.LogBackend = "zap"
				c.ImportFile = "legacy.parquet"
			},
		},
		{
			name:   "no flags keeps token validity precision",
			args:   []string{"portal"},
			modify: func(c *Config) {},
		},
		{
			name:        "bad int panics",
			args:        []string{"portal", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			var got Config
			got.LoadDefaults()
			got.TokenValidityDuration = 90 * time.Second

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&got) })
				return
			}

			var want Config
			want.LoadDefaults()
			want.TokenValidityDuration = 90 * time.Second
			tt.modify(&want)

			require.NotPanics(t, func() { parseFlags(&got) })
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}
