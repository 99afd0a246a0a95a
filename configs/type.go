package config

type Config struct {
	Agent     AgentConfig
	HTTP      HTTPConfig
	Inventory InventoryConfig
	CPE       CPEConfig
	ISP       ISPConfig
	OnCall    OnCallConfig
	AuthDB    AuthDBConfig
}

type AgentConfig struct {
	LogLevel    string `ini:"log_level"`
	MetricsAddr string `ini:"metrics_addr"`
}

type HTTPConfig struct {
	TimeoutSeconds    int `ini:"timeout_seconds"`
	Retries           int `ini:"retries"`
	RetryDelaySeconds int `ini:"retry_delay_seconds"`
}

// InventoryConfig covers the box/point/reservation API. Box payloads can be
// large, so their fetch carries its own extended timeout.
type InventoryConfig struct {
	BaseURL           string `ini:"base_url"`
	Token             string `ini:"token"`
	BoxTimeoutSeconds int    `ini:"box_timeout_seconds"`
}

type CPEConfig struct {
	BaseURL               string `ini:"base_url"`
	MaxConcurrentRequests int    `ini:"max_concurrent_requests"`
}

type ISPConfig struct {
	BaseURL string `ini:"base_url"`
}

type OnCallConfig struct {
	BaseURL string `ini:"base_url"`
}

// AuthDBConfig points at the operator permission table. An empty DSN
// disables the authorization check entirely.
type AuthDBConfig struct {
	DSN string `ini:"dsn"`
}
