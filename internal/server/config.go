package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the service configuration, loaded from an HCL file.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Rake   RakeSettings   `hcl:"rake,block"`
	Tables []TableBlock   `hcl:"table,block"`
}

// ServerSettings contains listener-level configuration
type ServerSettings struct {
	Address       string `hcl:"address,optional"`
	Port          int    `hcl:"port,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	ActionTimeout int    `hcl:"action_timeout_seconds,optional"`
}

// RakeSettings is the platform rake rule
type RakeSettings struct {
	Percent uint64 `hcl:"percent,optional"`
	Cap     uint64 `hcl:"cap,optional"`
}

// TableBlock defines one table
type TableBlock struct {
	Name       string `hcl:"name,label"`
	SmallBlind uint64 `hcl:"small_blind"`
	BigBlind   uint64 `hcl:"big_blind"`
	BuyIn      uint64 `hcl:"buy_in"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:       "localhost",
			Port:          8080,
			LogLevel:      "info",
			ActionTimeout: 30,
		},
		Rake: RakeSettings{Percent: 0, Cap: 0},
		Tables: []TableBlock{
			{Name: "main", SmallBlind: 5, BigBlind: 10, BuyIn: 1000},
		},
	}
}

// LoadConfig loads configuration from an HCL file, filling unset fields
// from the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("config file %s: %w", filename, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}

	config := &Config{}
	if diags := gohcl.DecodeBody(file.Body, nil, config); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %s", filename, diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Server.ActionTimeout == 0 {
		config.Server.ActionTimeout = defaults.Server.ActionTimeout
	}
	if len(config.Tables) == 0 {
		config.Tables = defaults.Tables
	}
	return config, nil
}
