package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "PORTAL_"

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envInt64(key string, dst *int64) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// parseEnv loads a .env file from the working directory when present and then
// overlays PORTAL_* variables. Unparsable values are ignored.
func parseEnv(c *Config) {
	_ = godotenv.Load()

	envString("HTTP_ADDR", &c.HTTPAddr)
	envString("GRPC_HEALTH_ADDR", &c.GRPCHealthAddr)
	envString("DOMAIN_SUFFIX", &c.DomainSuffix)
	envString("CREDENTIAL_BACKEND", &c.CredentialBackend)
	envString("CREDENTIAL_FILE", &c.CredentialFile)
	envString("SQLITE_PATH", &c.SQLitePath)
	envString("DATABASE_DSN", &c.DatabaseDSN)
	envString("MATCH_MODE", &c.MatchMode)
	envBool("HASH_PASSWORDS", &c.HashPasswords)
	envInt("BCRYPT_COST", &c.BcryptCost)
	envBool("SERIALIZE_WRITES", &c.SerializeWrites)
	envString("IMPORT_FILE", &c.ImportFile)
	envString("REPOSITORY_BACKEND", &c.RepositoryBackend)
	envString("REPOSITORY_PATH", &c.RepositoryPath)
	envBool("SANITIZE_NAMES", &c.SanitizeNames)
	envInt64("MAX_UPLOAD_BYTES", &c.MaxUploadBytes)
	envString("S3_ROOT_USER", &c.S3RootUser)
	envString("S3_ROOT_PASSWORD", &c.S3RootPassword)
	envString("S3_BUCKET", &c.S3Bucket)
	envString("S3_REGION", &c.S3Region)
	envString("S3_BASE_ENDPOINT", &c.S3BaseEndpoint)
	envString("SESSION_BACKEND", &c.SessionBackend)
	envString("REDIS_ADDR", &c.RedisAddr)
	envString("REDIS_PASSWORD", &c.RedisPassword)
	envInt("REDIS_DB", &c.RedisDB)
	envDuration("SESSION_TTL", &c.SessionTTL)
	envString("SECRET_KEY", &c.SecretKey)
	envDuration("TOKEN_VALIDITY_DURATION", &c.TokenValidityDuration)
	envString("SHEET_PATH", &c.SheetPath)
	envString("LOG_BACKEND", &c.LogBackend)
	envString("LOG_FORMAT", &c.LogFormat)
}
