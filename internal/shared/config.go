package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Web      WebConfig      `toml:"web"`
	Database DatabaseConfig `toml:"database"`
	Push     PushConfig     `toml:"push"`
	Log      LogConfig      `toml:"log"`
}

// APIConfig contains the movie API endpoint and client limits.
type APIConfig struct {
	BaseURL           string  `toml:"base_url" validate:"required,url"`
	TimeoutSeconds    int     `toml:"timeout_seconds" validate:"gte=0"`
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"gte=0"`
	Burst             int     `toml:"burst" validate:"gte=0"`
}

// Timeout returns the per-request timeout; zero disables it.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WebConfig points at the browser front-end for routes the terminal does not render.
type WebConfig struct {
	BaseURL string `toml:"base_url" validate:"omitempty,url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" validate:"required"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// PushConfig contains the push provider identity and transport settings.
type PushConfig struct {
	Provider  string        `toml:"provider" validate:"omitempty,oneof=redis amqp webhook"`
	APIKey    string        `toml:"api_key"`
	ProjectID string        `toml:"project_id"`
	SenderID  string        `toml:"sender_id"`
	AppID     string        `toml:"app_id"`
	Icon      string        `toml:"icon"`
	Redis     RedisConfig   `toml:"redis"`
	AMQP      AMQPConfig    `toml:"amqp"`
	Webhook   WebhookConfig `toml:"webhook"`
}

// RedisConfig contains settings for the Redis pub/sub push source.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// AMQPConfig contains settings for the AMQP push source.
type AMQPConfig struct {
	URL               string `toml:"url"`
	Retries           int    `toml:"retries"`
	RetryDelaySeconds int    `toml:"retry_delay_seconds"`
}

// WebhookConfig contains the listen address for the HTTP push source.
type WebhookConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port" validate:"gte=0,lte=65535"`
}

// Addr returns host:port.
func (w WebhookConfig) Addr() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

// LogConfig controls the rotating file logger used while a TUI owns the terminal.
type LogConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
}

// LoadConfig reads, parses and validates a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks field constraints declared in struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
