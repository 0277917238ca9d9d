// internal/common/config/loader_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, "property-search", cfg.App.Name)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Scansan.TimeoutSeconds)
	assert.Equal(t, 5*time.Second, cfg.Scansan.Timeout())
	assert.Equal(t, 6, cfg.Scansan.MaxAreaCodes)
	assert.Equal(t, 3, cfg.Scansan.MaxPropertiesPerRow)
	assert.Equal(t, 6, cfg.Search.MockRecordCount)
	assert.Equal(t, "configs/model.json", cfg.Model.ArtifactPath)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyDefaults_DoesNotOverrideSetValues(t *testing.T) {
	cfg := &Config{}
	cfg.Scansan.TimeoutSeconds = 10
	cfg.Search.MockRecordCount = 12
	applyDefaults(cfg)

	assert.Equal(t, 10, cfg.Scansan.TimeoutSeconds)
	assert.Equal(t, 12, cfg.Search.MockRecordCount)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "timeout too small",
			mutate:  func(cfg *Config) { cfg.Scansan.TimeoutSeconds = 0 },
			wantErr: "timeout_seconds",
		},
		{
			name:    "timeout too large",
			mutate:  func(cfg *Config) { cfg.Scansan.TimeoutSeconds = 120 },
			wantErr: "timeout_seconds",
		},
		{
			name:    "mock record count out of range",
			mutate:  func(cfg *Config) { cfg.Search.MockRecordCount = 50 },
			wantErr: "mock_record_count",
		},
		{
			name:    "non-positive area code cap",
			mutate:  func(cfg *Config) { cfg.Scansan.MaxAreaCodes = -1 },
			wantErr: "max_area_codes",
		},
		{
			name:    "non-positive per-code cap",
			mutate:  func(cfg *Config) { cfg.Scansan.MaxPropertiesPerRow = 0 },
			wantErr: "max_properties_per_code",
		},
		{
			name:    "cache enabled without address",
			mutate:  func(cfg *Config) { cfg.Cache.Enabled = true },
			wantErr: "cache.address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOverrideEmptyConfig(t *testing.T) {
	t.Setenv("SCANSAN_API_KEY", "from-env")
	t.Setenv("REDIS_PASSWORD", "secret")

	cfg := validConfig()
	overrideEmptyConfig(cfg)
	assert.Equal(t, "from-env", cfg.Scansan.APIKey)
	assert.Equal(t, "secret", cfg.Cache.Password)

	cfg = validConfig()
	cfg.Scansan.APIKey = "from-yaml"
	overrideEmptyConfig(cfg)
	assert.Equal(t, "from-yaml", cfg.Scansan.APIKey, "explicit config wins over the environment")
}
