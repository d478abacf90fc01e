// Package config provides YAML configuration file loading and validation.
// It handles environment variable expansion and ensures all required
// fields are present.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	RPC      RPC      `yaml:"rpc"`
	Contract Contract `yaml:"contract"`
	Ingest   Ingest   `yaml:"ingest"`
	Cache    Cache    `yaml:"cache"`
	Server   Server   `yaml:"server"`
}

// RPC configures the Ethereum JSON-RPC endpoint.
type RPC struct {
	Name       string        `yaml:"name"`        // endpoint identifier for logs (e.g., "alchemy")
	URL        string        `yaml:"url"`         // endpoint URL (supports ${VAR} env expansion)
	Timeout    time.Duration `yaml:"timeout"`     // per-request timeout (e.g., "10s")
	MaxRetries int           `yaml:"max_retries"` // retry attempts for transport failures (0 = no retries)
}

// Contract locates the lottery contract on chain.
type Contract struct {
	Address     string `yaml:"address"`      // lottery contract address
	DeployBlock uint64 `yaml:"deploy_block"` // earliest block settlement events can appear in
}

// Ingest configures the settlement event poller.
type Ingest struct {
	PollInterval time.Duration `yaml:"poll_interval"` // delay between log scans (e.g., "15s")
}

// Cache configures the settlement cache store.
type Cache struct {
	Path string `yaml:"path"` // directory for the badger database
}

// Server configures the HTTP API.
type Server struct {
	Listen string `yaml:"listen"` // listen address (e.g., ":7000")
}

// Validate checks all required fields. Strict validation, no fallbacks.
func (c *Config) Validate() error {
	if c.RPC.URL == "" {
		return fmt.Errorf("rpc.url is required")
	}
	u, err := url.Parse(c.RPC.URL)
	if err != nil {
		return fmt.Errorf("rpc.url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("rpc.url scheme %q invalid (expected http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("rpc.url is missing a host")
	}
	if c.RPC.Timeout == 0 {
		return fmt.Errorf("rpc.timeout is required")
	}
	if c.RPC.MaxRetries < 0 {
		return fmt.Errorf("rpc.max_retries must be >= 0")
	}
	if c.Contract.Address == "" {
		return fmt.Errorf("contract.address is required")
	}
	if c.Ingest.PollInterval == 0 {
		return fmt.Errorf("ingest.poll_interval is required")
	}
	if c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required")
	}
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	return nil
}

// Load reads and parses a YAML configuration file, expanding environment
// variables and validating all required fields.
//
// URLs and addresses can use ${VAR} syntax, expanded via os.ExpandEnv.
// Example: url: ${RPC_URL}
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnv reads environment variables from a .env file in the current
// working directory and sets them with os.Setenv, so secrets like RPC
// keys stay out of the YAML file.
//
// File format: KEY=VALUE lines; blank lines and #-comments are skipped;
// surrounding quotes are stripped. A missing .env file is not an error;
// system environment variables still apply.
func LoadEnv() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			value = strings.Trim(value, `"'`)
			os.Setenv(key, value)
		}
	}
}
