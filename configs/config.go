package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	cfg, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %v", err)
	}

	config := &Config{}

	// Map sections to structs
	if err := cfg.Section("agent").MapTo(&config.Agent); err != nil {
		return nil, fmt.Errorf("failed to load agent config: %v", err)
	}
	if err := cfg.Section("http").MapTo(&config.HTTP); err != nil {
		return nil, fmt.Errorf("failed to load http config: %v", err)
	}
	if err := cfg.Section("inventory").MapTo(&config.Inventory); err != nil {
		return nil, fmt.Errorf("failed to load inventory config: %v", err)
	}
	if err := cfg.Section("cpe").MapTo(&config.CPE); err != nil {
		return nil, fmt.Errorf("failed to load cpe config: %v", err)
	}
	if err := cfg.Section("isp").MapTo(&config.ISP); err != nil {
		return nil, fmt.Errorf("failed to load isp config: %v", err)
	}
	if err := cfg.Section("oncall").MapTo(&config.OnCall); err != nil {
		return nil, fmt.Errorf("failed to load oncall config: %v", err)
	}
	if err := cfg.Section("authdb").MapTo(&config.AuthDB); err != nil {
		return nil, fmt.Errorf("failed to load authdb config: %v", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(config *Config) {
	if config.Agent.LogLevel == "" {
		config.Agent.LogLevel = "INFO"
	}
	if config.HTTP.TimeoutSeconds == 0 {
		config.HTTP.TimeoutSeconds = 20
	}
	if config.HTTP.Retries == 0 {
		config.HTTP.Retries = 3
	}
	if config.HTTP.RetryDelaySeconds == 0 {
		config.HTTP.RetryDelaySeconds = 2
	}
	if config.Inventory.BoxTimeoutSeconds == 0 {
		config.Inventory.BoxTimeoutSeconds = 60
	}
	if config.CPE.MaxConcurrentRequests == 0 {
		config.CPE.MaxConcurrentRequests = 10
	}
}

func validateConfig(config *Config) error {
	if config.Inventory.BaseURL == "" {
		return fmt.Errorf("inventory base_url is required")
	}
	if config.Inventory.Token == "" {
		return fmt.Errorf("inventory token is required")
	}
	if config.CPE.BaseURL == "" {
		return fmt.Errorf("cpe base_url is required")
	}
	if config.ISP.BaseURL == "" {
		return fmt.Errorf("isp base_url is required")
	}
	return nil
}
