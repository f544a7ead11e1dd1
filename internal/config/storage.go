package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

const (
	// EnvStorageBackend overrides the storage backend selection.
	EnvStorageBackend = "STORAGE_BACKEND"

	// EnvStorageBasePath overrides the filesystem storage base path.
	EnvStorageBasePath = "STORAGE_BASE_PATH"

	// EnvStorageMaxUploadSize overrides the maximum upload size.
	EnvStorageMaxUploadSize = "STORAGE_MAX_UPLOAD_SIZE"

	// EnvStorageMinioEndpoint overrides the MinIO endpoint address.
	EnvStorageMinioEndpoint = "STORAGE_MINIO_ENDPOINT"

	// EnvStorageMinioAccessKey overrides the MinIO access key.
	EnvStorageMinioAccessKey = "STORAGE_MINIO_ACCESS_KEY"

	// EnvStorageMinioSecretKey overrides the MinIO secret key.
	EnvStorageMinioSecretKey = "STORAGE_MINIO_SECRET_KEY"

	// EnvStorageMinioBucket overrides the MinIO bucket name.
	EnvStorageMinioBucket = "STORAGE_MINIO_BUCKET"

	// EnvStorageMinioUseSSL overrides the MinIO TLS flag.
	EnvStorageMinioUseSSL = "STORAGE_MINIO_USE_SSL"
)

// Storage backend identifiers.
const (
	StorageBackendFilesystem = "filesystem"
	StorageBackendMinio      = "minio"
)

// MinioConfig contains object store connection configuration.
type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

// StorageConfig contains blob storage configuration.
type StorageConfig struct {
	// Backend selects the storage implementation: "filesystem" or "minio".
	Backend string `toml:"backend"`

	// BasePath is the root directory for filesystem storage.
	BasePath string `toml:"base_path"`

	MaxUploadSize    string      `toml:"max_upload_size"`
	Minio            MinioConfig `toml:"minio"`
	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed maximum upload size in bytes.
func (c *StorageConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.Minio.Endpoint != "" {
		c.Minio.Endpoint = overlay.Minio.Endpoint
	}
	if overlay.Minio.AccessKey != "" {
		c.Minio.AccessKey = overlay.Minio.AccessKey
	}
	if overlay.Minio.SecretKey != "" {
		c.Minio.SecretKey = overlay.Minio.SecretKey
	}
	if overlay.Minio.Bucket != "" {
		c.Minio.Bucket = overlay.Minio.Bucket
	}
	if overlay.Minio.UseSSL {
		c.Minio.UseSSL = true
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.Backend == "" {
		c.Backend = StorageBackendFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "25MB"
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvStorageBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvStorageBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvStorageMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvStorageMinioEndpoint); v != "" {
		c.Minio.Endpoint = v
	}
	if v := os.Getenv(EnvStorageMinioAccessKey); v != "" {
		c.Minio.AccessKey = v
	}
	if v := os.Getenv(EnvStorageMinioSecretKey); v != "" {
		c.Minio.SecretKey = v
	}
	if v := os.Getenv(EnvStorageMinioBucket); v != "" {
		c.Minio.Bucket = v
	}
	if v := os.Getenv(EnvStorageMinioUseSSL); v != "" {
		if ssl, err := strconv.ParseBool(v); err == nil {
			c.Minio.UseSSL = ssl
		}
	}
}

func (c *StorageConfig) validate() error {
	switch c.Backend {
	case StorageBackendFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case StorageBackendMinio:
		if c.Minio.Endpoint == "" {
			return fmt.Errorf("minio.endpoint required")
		}
		if c.Minio.Bucket == "" {
			return fmt.Errorf("minio.bucket required")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be filesystem or minio)", c.Backend)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
