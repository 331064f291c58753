package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Dynamo   DynamoConfig   `mapstructure:"dynamo"`
	Billing  BillingConfig  `mapstructure:"billing"`
	Renderer RendererConfig `mapstructure:"renderer"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DynamoConfig holds DynamoDB configuration
type DynamoConfig struct {
	Region            string `mapstructure:"region"`
	Endpoint          string `mapstructure:"endpoint"`
	AccessKeyID       string `mapstructure:"access_key_id"`
	SecretAccessKey   string `mapstructure:"secret_access_key"`
	QuotesTable       string `mapstructure:"quotes_table"`
	ApprovalsTable    string `mapstructure:"approvals_table"`
	CountersTable     string `mapstructure:"counters_table"`
	WorkRequestsTable string `mapstructure:"work_requests_table"`
	AuditTable        string `mapstructure:"audit_table"`
}

// BillingConfig holds the pricing policy fixed onto quotes at creation
type BillingConfig struct {
	VATRate      float64 `mapstructure:"vat_rate"`
	HourlyRate   float64 `mapstructure:"hourly_rate"`
	ValidityDays int     `mapstructure:"validity_days"`
	Currency     string  `mapstructure:"currency"`
}

// RendererConfig holds the document renderer endpoint configuration
type RendererConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// NotifierConfig holds notification webhook configuration
type NotifierConfig struct {
	WebhookURL        string        `mapstructure:"webhook_url"`
	InternalRecipient string        `mapstructure:"internal_recipient"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("dynamo.region", "eu-west-1")
	viper.SetDefault("dynamo.quotes_table", "quotes")
	viper.SetDefault("dynamo.approvals_table", "quote_approvals")
	viper.SetDefault("dynamo.counters_table", "quote_counters")
	viper.SetDefault("dynamo.work_requests_table", "work_requests")
	viper.SetDefault("dynamo.audit_table", "quote_audit")

	viper.SetDefault("billing.vat_rate", 0.21)
	viper.SetDefault("billing.hourly_rate", 85.0)
	viper.SetDefault("billing.validity_days", 30)
	viper.SetDefault("billing.currency", "EUR")

	viper.SetDefault("renderer.timeout", 15*time.Second)
	viper.SetDefault("notifier.timeout", 10*time.Second)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables for deployment overrides
func bindEnvVars() {
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("dynamo.region", "AWS_REGION")
	viper.BindEnv("dynamo.endpoint", "DYNAMODB_ENDPOINT")
	viper.BindEnv("dynamo.access_key_id", "AWS_ACCESS_KEY_ID")
	viper.BindEnv("dynamo.secret_access_key", "AWS_SECRET_ACCESS_KEY")
	viper.BindEnv("renderer.base_url", "RENDERER_BASE_URL")
	viper.BindEnv("notifier.webhook_url", "NOTIFIER_WEBHOOK_URL")
	viper.BindEnv("notifier.internal_recipient", "NOTIFIER_INTERNAL_RECIPIENT")
	viper.BindEnv("logger.level", "LOG_LEVEL")
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Billing.VATRate < 0 {
		return fmt.Errorf("invalid vat rate: %v", c.Billing.VATRate)
	}
	if c.Billing.HourlyRate < 0 {
		return fmt.Errorf("invalid hourly rate: %v", c.Billing.HourlyRate)
	}
	if c.Billing.ValidityDays <= 0 {
		return fmt.Errorf("invalid validity window: %d days", c.Billing.ValidityDays)
	}
	if c.Renderer.BaseURL == "" {
		return fmt.Errorf("renderer base_url is required")
	}
	if c.Renderer.Timeout <= 0 {
		return fmt.Errorf("renderer timeout must be positive")
	}
	return nil
}
