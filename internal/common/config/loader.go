// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SCANSAN_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, ignored if not present
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries the usual .env locations so the loader works from the
// repo root, subdirectories and tests alike.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills secrets from the environment when the yaml
// left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Scansan.APIKey == "" {
		if val := os.Getenv("SCANSAN_API_KEY"); val != "" {
			cfg.Scansan.APIKey = val
		}
	}
	if cfg.Cache.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Cache.Password = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "property-search"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Scansan.BaseURL == "" {
		cfg.Scansan.BaseURL = "https://api.scansan.com/v1"
	}
	if cfg.Scansan.TimeoutSeconds == 0 {
		cfg.Scansan.TimeoutSeconds = 5
	}
	if cfg.Scansan.MaxAreaCodes == 0 {
		cfg.Scansan.MaxAreaCodes = 6
	}
	if cfg.Scansan.MaxPropertiesPerRow == 0 {
		cfg.Scansan.MaxPropertiesPerRow = 3
	}
	if cfg.Search.MockRecordCount == 0 {
		cfg.Search.MockRecordCount = 6
	}
	if cfg.Model.ArtifactPath == "" {
		cfg.Model.ArtifactPath = "configs/model.json"
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 300
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Validate enforces the ranges the pipeline depends on.
func Validate(cfg *Config) error {
	if cfg.Scansan.TimeoutSeconds < 1 || cfg.Scansan.TimeoutSeconds > 60 {
		return fmt.Errorf("scansan.timeout_seconds must be between 1 and 60, got %d", cfg.Scansan.TimeoutSeconds)
	}
	if cfg.Search.MockRecordCount < 1 || cfg.Search.MockRecordCount > 20 {
		return fmt.Errorf("search.mock_record_count must be between 1 and 20, got %d", cfg.Search.MockRecordCount)
	}
	if cfg.Scansan.MaxAreaCodes < 1 {
		return fmt.Errorf("scansan.max_area_codes must be positive, got %d", cfg.Scansan.MaxAreaCodes)
	}
	if cfg.Scansan.MaxPropertiesPerRow < 1 {
		return fmt.Errorf("scansan.max_properties_per_code must be positive, got %d", cfg.Scansan.MaxPropertiesPerRow)
	}
	if cfg.Cache.Enabled && cfg.Cache.Address == "" {
		return fmt.Errorf("cache.address is required when the cache is enabled")
	}
	return nil
}
