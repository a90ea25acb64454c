package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/compositectl/internal/view"
)

const (
	formatText  = "text"
	formatJSON  = "json"
	encodingRaw = "raw"
)

// cliConfig holds decode defaults; flags given on the command line win.
type cliConfig struct {
	Encoding string
	Dynamic  bool
	Format   string
}

type fileConfig struct {
	Encoding string `toml:"encoding"`
	Dynamic  bool   `toml:"dynamic"`
	Format   string `toml:"format"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		Encoding: view.EncodingHex,
		Format:   formatText,
	}
}

func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load cli config: %w", err)
	}

	if meta.IsDefined("encoding") {
		cfg.Encoding = strings.ToLower(strings.TrimSpace(raw.Encoding))
	}
	if meta.IsDefined("dynamic") {
		cfg.Dynamic = raw.Dynamic
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}

	if err := validateCLIConfig(cfg); err != nil {
		return cliConfig{}, fmt.Errorf("cli config %s: %w", path, err)
	}
	return cfg, nil
}

func validateCLIConfig(cfg cliConfig) error {
	switch cfg.Encoding {
	case view.EncodingHex, view.EncodingBase64, encodingRaw:
	default:
		return fmt.Errorf("unsupported encoding %q", cfg.Encoding)
	}
	switch cfg.Format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
	return nil
}
