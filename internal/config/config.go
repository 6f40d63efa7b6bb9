package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	DataDir      string           `json:"data_dir"`
	Port         int              `json:"port"`
	CORSOrigins  []string         `json:"cors_origins"`
	LogConfig    logger.LogConfig `json:"log_config"`
	AI           AIConfig         `json:"ai"`
	BackfillCron string           `json:"backfill_cron"`
}

type AIConfig struct {
	Provider        string                 `json:"provider"`
	Model           string                 `json:"model"`
	TimeoutSeconds  int                    `json:"timeout_seconds"`
	CacheSize       int                    `json:"cache_size"`
	CacheTTLMinutes int                    `json:"cache_ttl_minutes"`
	Data            map[string]interface{} `json:"data"`
}

// Enabled reports whether an embedding provider is configured at all. A
// config without one runs the server with the capability disabled.
func (c AIConfig) Enabled() bool {
	return c.Provider != ""
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data_dir is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.AI.Enabled() {
		if cfg.AI.Model == "" {
			return nil, fmt.Errorf("ai.model is required when ai.provider is set")
		}
		if cfg.AI.TimeoutSeconds <= 0 {
			cfg.AI.TimeoutSeconds = 30
		}
		if cfg.AI.CacheSize <= 0 {
			cfg.AI.CacheSize = 1024
		}
		if cfg.AI.CacheTTLMinutes <= 0 {
			cfg.AI.CacheTTLMinutes = 120
		}
	}
	return &cfg, nil
}
