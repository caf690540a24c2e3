package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/leaseportal/internal/flagx"
)

var flagNames = []string{
	"a", "g", "d", "b", "f", "l", "dsn", "m", "hash", "serialize", "import",
	"r", "p", "sanitize", "max-upload",
	"s3-user", "s3-password", "s3-bucket", "s3-region", "s3-endpoint",
	"session", "redis", "s", "t", "x", "log", "log-format",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (":8080")
//	-g string        gRPC health bind address
//	-d string        required email domain suffix
//	-b string        credential backend: parquet, sqlite, postgres
//	-f string        parquet credential file
//	-l string        sqlite database path
//	-dsn string      PostgreSQL DSN
//	-m string        match mode: strict, compat
//	-hash bool       store bcrypt hashes (use -hash=false to disable)
//	-serialize bool  lock credential rewrites
//	-import string   legacy parquet file copied into an empty SQL backend
//	-r string        repository backend: local, s3
//	-p string        repository root (directory or S3 prefix)
//	-sanitize bool   reject unsafe upload names
//	-max-upload int  upload size limit, bytes
//	-s3-*            S3 user, password, bucket, region, endpoint
//	-session string  session backend: memory, redis
//	-redis string    redis address
//	-s string        token signing secret
//	-t int           token validity, minutes
//	-x string        spreadsheet path
//	-log string      log backend: slog, zap
//	-log-format      json, text
//
// Only the flags above are taken from os.Args; everything else is filtered
// out with flagx.FilterArgs so -c and unrelated flags do not collide.
func parseFlags(c *Config) {
	args := flagx.FilterArgs(os.Args[1:], flagNames)

	fs := flag.NewFlagSet("portal", flag.ContinueOnError)

	fs.StringVar(&c.HTTPAddr, "a", c.HTTPAddr, "HTTP address and port")
	fs.StringVar(&c.GRPCHealthAddr, "g", c.GRPCHealthAddr, "gRPC health address and port")
	fs.StringVar(&c.DomainSuffix, "d", c.DomainSuffix, "required email domain suffix")
	fs.StringVar(&c.CredentialBackend, "b", c.CredentialBackend, "credential backend (parquet, sqlite, postgres)")
	fs.StringVar(&c.CredentialFile, "f", c.CredentialFile, "parquet credential file")
	fs.StringVar(&c.SQLitePath, "l", c.SQLitePath, "sqlite database path")
	fs.StringVar(&c.DatabaseDSN, "dsn", c.DatabaseDSN, "database DSN")
	fs.StringVar(&c.MatchMode, "m", c.MatchMode, "credential match mode (strict, compat)")
	fs.BoolVar(&c.HashPasswords, "hash", c.HashPasswords, "store bcrypt password hashes")
	fs.BoolVar(&c.SerializeWrites, "serialize", c.SerializeWrites, "serialize credential table rewrites")
	fs.StringVar(&c.ImportFile, "import", c.ImportFile, "legacy parquet credential file to import")
	fs.StringVar(&c.RepositoryBackend, "r", c.RepositoryBackend, "repository backend (local, s3)")
	fs.StringVar(&c.RepositoryPath, "p", c.RepositoryPath, "repository root")
	fs.BoolVar(&c.SanitizeNames, "sanitize", c.SanitizeNames, "reject unsafe upload names")
	fs.Int64Var(&c.MaxUploadBytes, "max-upload", c.MaxUploadBytes, "upload size limit in bytes")
	fs.StringVar(&c.S3RootUser, "s3-user", c.S3RootUser, "S3 root user")
	fs.StringVar(&c.S3RootPassword, "s3-password", c.S3RootPassword, "S3 root password")
	fs.StringVar(&c.S3Bucket, "s3-bucket", c.S3Bucket, "S3 bucket")
	fs.StringVar(&c.S3Region, "s3-region", c.S3Region, "S3 region")
	fs.StringVar(&c.S3BaseEndpoint, "s3-endpoint", c.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&c.SessionBackend, "session", c.SessionBackend, "session backend (memory, redis)")
	fs.StringVar(&c.RedisAddr, "redis", c.RedisAddr, "redis address")
	fs.StringVar(&c.SecretKey, "s", c.SecretKey, "token signing secret")
	tokenValidity := fs.Int("t", int(c.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&c.SheetPath, "x", c.SheetPath, "spreadsheet path")
	fs.StringVar(&c.LogBackend, "log", c.LogBackend, "log backend (slog, zap)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (json, text)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			c.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
}
