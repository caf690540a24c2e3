package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/leaseportal/internal/flagx"
	"github.com/dmitrijs2005/leaseportal/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Pointer fields let an
// absent key leave the lower layers untouched; durations accept "15m" or
// integer nanoseconds.
type FileConfig struct {
	HTTPAddr              *string         `json:"http_addr" yaml:"http_addr"`
	GRPCHealthAddr        *string         `json:"grpc_health_addr" yaml:"grpc_health_addr"`
	DomainSuffix          *string         `json:"domain_suffix" yaml:"domain_suffix"`
	CredentialBackend     *string         `json:"credential_backend" yaml:"credential_backend"`
	CredentialFile        *string         `json:"credential_file" yaml:"credential_file"`
	SQLitePath            *string         `json:"sqlite_path" yaml:"sqlite_path"`
	DatabaseDSN           *string         `json:"database_dsn" yaml:"database_dsn"`
	MatchMode             *string         `json:"match_mode" yaml:"match_mode"`
	HashPasswords         *bool           `json:"hash_passwords" yaml:"hash_passwords"`
	BcryptCost            *int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	SerializeWrites       *bool           `json:"serialize_writes" yaml:"serialize_writes"`
	ImportFile            *string         `json:"import_file" yaml:"import_file"`
	RepositoryBackend     *string         `json:"repository_backend" yaml:"repository_backend"`
	RepositoryPath        *string         `json:"repository_path" yaml:"repository_path"`
	SanitizeNames         *bool           `json:"sanitize_names" yaml:"sanitize_names"`
	MaxUploadBytes        *int64          `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	S3RootUser            *string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword        *string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket              *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region              *string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint        *string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	SessionBackend        *string         `json:"session_backend" yaml:"session_backend"`
	RedisAddr             *string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword         *string         `json:"redis_password" yaml:"redis_password"`
	RedisDB               *int            `json:"redis_db" yaml:"redis_db"`
	SessionTTL            *timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	SecretKey             *string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	SheetPath             *string         `json:"sheet_path" yaml:"sheet_path"`
	LogBackend            *string         `json:"log_backend" yaml:"log_backend"`
	LogFormat             *string         `json:"log_format" yaml:"log_format"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (f *FileConfig) apply(c *Config) {
	set(&c.HTTPAddr, f.HTTPAddr)
	set(&c.GRPCHealthAddr, f.GRPCHealthAddr)
	set(&c.DomainSuffix, f.DomainSuffix)
	set(&c.CredentialBackend, f.CredentialBackend)
	set(&c.CredentialFile, f.CredentialFile)
	set(&c.SQLitePath, f.SQLitePath)
	set(&c.DatabaseDSN, f.DatabaseDSN)
	set(&c.MatchMode, f.MatchMode)
	set(&c.HashPasswords, f.HashPasswords)
	set(&c.BcryptCost, f.BcryptCost)
	set(&c.SerializeWrites, f.SerializeWrites)
	set(&c.ImportFile, f.ImportFile)
	set(&c.RepositoryBackend, f.RepositoryBackend)
	set(&c.RepositoryPath, f.RepositoryPath)
	set(&c.SanitizeNames, f.SanitizeNames)
	set(&c.MaxUploadBytes, f.MaxUploadBytes)
	set(&c.S3RootUser, f.S3RootUser)
	set(&c.S3RootPassword, f.S3RootPassword)
	set(&c.S3Bucket, f.S3Bucket)
	set(&c.S3Region, f.S3Region)
	set(&c.S3BaseEndpoint, f.S3BaseEndpoint)
	set(&c.SessionBackend, f.SessionBackend)
	set(&c.RedisAddr, f.RedisAddr)
	set(&c.RedisPassword, f.RedisPassword)
	set(&c.RedisDB, f.RedisDB)
	if f.SessionTTL != nil {
		c.SessionTTL = f.SessionTTL.Duration
	}
	set(&c.SecretKey, f.SecretKey)
	if f.TokenValidityDuration != nil {
		c.TokenValidityDuration = f.TokenValidityDuration.Duration
	}
	set(&c.SheetPath, f.SheetPath)
	set(&c.LogBackend, f.LogBackend)
	set(&c.LogFormat, f.LogFormat)
}

// decodeFile reads path as YAML when it ends in .yaml or .yml and as JSON otherwise.
func decodeFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// parseFile overlays the config file named by -c/-config onto c.
// Nothing happens when the flag is absent. An unreadable or malformed file
// panics, since the process cannot start with a half-applied config.
func parseFile(c *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	fc, err := decodeFile(path)
	if err != nil {
		panic(err)
	}
	fc.apply(c)
}
