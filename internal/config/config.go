package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/compositectl/internal/composite"
	"github.com/pelletier/go-toml/v2"
)

// ServerConfig configures the inspection service.
type ServerConfig struct {
	Name           string   `toml:"name"`
	Addr           string   `toml:"addr"`
	CorsOrigins    []string `toml:"cors_origins"`
	MaxBufferBytes int      `toml:"max_buffer_bytes"`
	MaxComponents  int      `toml:"max_components"`

	// AuthToken, when set, is required as a bearer token on decode routes.
	AuthToken string `toml:"auth_token"`
}

// DefaultServerConfig returns the config used when a file leaves fields
// unset.
func DefaultServerConfig() ServerConfig {
	limits := composite.DefaultLimits()
	return ServerConfig{
		Name:           "compositectl",
		Addr:           ":9200",
		MaxBufferBytes: limits.MaxBufferBytes,
		MaxComponents:  limits.MaxComponents,
	}
}

// Limits returns the decoder limits carried by cfg.
func (c ServerConfig) Limits() composite.Limits {
	return composite.Limits{
		MaxBufferBytes: c.MaxBufferBytes,
		MaxComponents:  c.MaxComponents,
	}
}

func LoadServerConfig(path string) (ServerConfig, error) {
	var cfg ServerConfig
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	applyServerDefaults(&cfg)
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func applyServerDefaults(cfg *ServerConfig) {
	defaults := DefaultServerConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.MaxBufferBytes == 0 {
		cfg.MaxBufferBytes = defaults.MaxBufferBytes
	}
	if cfg.MaxComponents == 0 {
		cfg.MaxComponents = defaults.MaxComponents
	}
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("server config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.MaxBufferBytes < 0 {
		return fmt.Errorf("server config max_buffer_bytes must not be negative")
	}
	if cfg.MaxComponents < 0 {
		return fmt.Errorf("server config max_components must not be negative")
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	return nil
}
