// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct. It is passed
// explicitly to the components that need it; nothing reads ambient state.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Scansan ScansanConfig `mapstructure:"scansan"`
	Search  SearchConfig  `mapstructure:"search"`
	Model   ModelConfig   `mapstructure:"model"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// ScansanConfig holds settings for the external valuation API.
type ScansanConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	// Fan-out bounds for the area-code and per-code valuation lookups.
	MaxAreaCodes        int `mapstructure:"max_area_codes"`
	MaxPropertiesPerRow int `mapstructure:"max_properties_per_code"`
}

// Timeout returns the budget for the single live API attempt.
func (s ScansanConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// SearchConfig holds settings for query validation and the mock fallback.
type SearchConfig struct {
	// MockRecordCount bounds how many synthetic listings one fallback
	// call produces.
	MockRecordCount int `mapstructure:"mock_record_count"`
}

// ModelConfig points at the pre-trained regression artifact.
type ModelConfig struct {
	ArtifactPath string `mapstructure:"artifact_path"`
}

// CacheConfig holds settings for the server-layer search response cache.
// The pipeline itself never caches.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Address    string `mapstructure:"address"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
