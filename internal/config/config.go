package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sheetdash/backend/internal/blob"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	BodyLimit       string        `yaml:"body_limit"`
	EnableCORS      bool          `yaml:"enable_cors"`
	AllowOrigins    []string      `yaml:"allow_origins"`
}

type StorageConfig struct {
	// Backend selects where uploaded bytes live: "local" or "s3".
	Backend   string        `yaml:"backend"`
	UploadDir string        `yaml:"upload_dir"`
	S3        blob.S3Config `yaml:"s3"`
}

type DatabaseConfig struct {
	// Path of the embedded metadata database file.
	Path string `yaml:"path"`
}

// AuthConfig holds the single admin credential pair and the token signing
// secret. All three may come from the environment instead of the file.
type AuthConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	JWTSecret     string `yaml:"jwt_secret"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			BodyLimit:       "25M",
			EnableCORS:      true,
		},
		Storage: StorageConfig{
			Backend:   "local",
			UploadDir: "uploads/files",
		},
		Database: DatabaseConfig{Path: "data/metadata.duckdb"},
		Logging:  LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides for the secrets. A missing file is not an error;
// the defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		c.Auth.AdminUsername = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.Auth.AdminPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
}

// EnsureDirectories creates the upload and database directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Database.Path)}
	if c.Storage.Backend == "local" {
		dirs = append(dirs, c.Storage.UploadDir)
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
