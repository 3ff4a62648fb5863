// Package config loads leavectl configuration from file, .env and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/hrmstack/leavectl/internal/upload"
)

// Config holds all client configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Session SessionConfig `mapstructure:"session"`
	Store   StoreConfig   `mapstructure:"store"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// BackendConfig holds HRMS API settings
type BackendConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// UploadConfig holds signed-upload settings and the attachment policy
type UploadConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Folder       string        `mapstructure:"folder"`
	ResourceType string        `mapstructure:"resource_type"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MinSizeKB    int64         `mapstructure:"min_size_kb"`
	MaxSizeKB    int64         `mapstructure:"max_size_kb"`
	AllowedTypes []string      `mapstructure:"allowed_types"`
}

// Constraint converts the configured policy into a file constraint
func (u UploadConfig) Constraint() upload.FileConstraint {
	allowed := make(map[string]bool, len(u.AllowedTypes))
	for _, t := range u.AllowedTypes {
		allowed[t] = true
	}
	return upload.FileConstraint{
		AllowedMIMETypes: allowed,
		MinSizeBytes:     u.MinSizeKB * 1024,
		MaxSizeBytes:     u.MaxSizeKB * 1024,
	}
}

// SessionConfig holds token storage settings
type SessionConfig struct {
	TokenPath string `mapstructure:"token_path"`
}

// StoreConfig holds local store settings
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads configuration: .env first, then the config file if one exists,
// then environment variables on top.
func Load(configPath string) (*Config, error) {
	_ = gotenv.Load() // a missing .env is not an error

	v := viper.New()
	setDefaults(v)
	bindEnvVars(v)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			// The default file is optional.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// defaultConfigDir is ~/.leavectl, falling back to the working directory
// when the home directory cannot be resolved.
func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".leavectl")
}

func setDefaults(v *viper.Viper) {
	dir := defaultConfigDir()

	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("backend.requests_per_second", 10.0)
	v.SetDefault("backend.burst", 5)

	v.SetDefault("upload.base_url", "https://api.cloudinary.com")
	v.SetDefault("upload.folder", "leave-attachments")
	v.SetDefault("upload.resource_type", "auto")
	v.SetDefault("upload.timeout", 30*time.Second)
	v.SetDefault("upload.min_size_kb", 200)
	v.SetDefault("upload.max_size_kb", 500)
	v.SetDefault("upload.allowed_types", []string{"image/jpeg", "image/png", "application/pdf"})

	v.SetDefault("session.token_path", filepath.Join(dir, "token"))
	v.SetDefault("store.path", filepath.Join(dir, "leavectl.db"))

	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("backend.base_url", "HRMS_BASE_URL")
	v.BindEnv("upload.base_url", "HRMS_UPLOAD_BASE_URL")
	v.BindEnv("upload.folder", "HRMS_UPLOAD_FOLDER")
	v.BindEnv("session.token_path", "HRMS_TOKEN_PATH")
	v.BindEnv("logger.level", "HRMS_LOG_LEVEL")
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required (set HRMS_BASE_URL or the config file)")
	}
	if c.Upload.MinSizeKB < 0 || c.Upload.MaxSizeKB < c.Upload.MinSizeKB {
		return fmt.Errorf("upload size bounds are inverted: min %d KB, max %d KB", c.Upload.MinSizeKB, c.Upload.MaxSizeKB)
	}
	if len(c.Upload.AllowedTypes) == 0 {
		return fmt.Errorf("upload.allowed_types must not be empty")
	}
	return nil
}
