package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults applied by ApplyDefaults when the corresponding field is unset.
const (
	DefaultAddr           = ":8080"
	DefaultServerURL      = "ltnm.learncppthroughprojects.com"
	DefaultServerPort     = "443"
	DefaultEndpoint       = "/network-events"
	DefaultDestination    = "/passengers"
	DefaultLayoutURL      = "https://ltnm.learncppthroughprojects.com/network-layout.json"
	DefaultLayoutFile     = "network-layout.json"
	DefaultReconnectDelay = 5
)

// Config holds runtime parameters for the monitor.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr        string   `json:"addr" yaml:"addr" toml:"addr"`
	ServerURL   string   `json:"server_url" yaml:"server_url" toml:"server_url"`
	ServerPort  string   `json:"server_port" yaml:"server_port" toml:"server_port"`
	Endpoint    string   `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	Destination string   `json:"destination" yaml:"destination" toml:"destination"`
	Username    string   `json:"username" yaml:"username" toml:"username"`
	Password    string   `json:"password" yaml:"password" toml:"password"`
	CACertFile  string   `json:"cacert_file" yaml:"cacert_file" toml:"cacert_file"`
	LayoutURL   string   `json:"layout_url" yaml:"layout_url" toml:"layout_url"`
	LayoutFile  string   `json:"layout_file" yaml:"layout_file" toml:"layout_file"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	// ReconnectDelaySeconds is the pause between connection attempts.
	ReconnectDelaySeconds int `json:"reconnect_delay_seconds" yaml:"reconnect_delay_seconds" toml:"reconnect_delay_seconds"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvServerURL  = "LTNM_SERVER_URL"
	EnvServerPort = "LTNM_SERVER_PORT"
	EnvUsername   = "LTNM_USERNAME"
	EnvPassword   = "LTNM_PASSWORD"
	EnvCACert     = "LTNM_CACERT"
	EnvAddr       = "NETWORK_MONITOR_ADDR"
)

// ApplyEnv overlays non-empty environment values onto cfg. lookup is usually os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&cfg.ServerURL, EnvServerURL)
	set(&cfg.ServerPort, EnvServerPort)
	set(&cfg.Username, EnvUsername)
	set(&cfg.Password, EnvPassword)
	set(&cfg.CACertFile, EnvCACert)
	set(&cfg.Addr, EnvAddr)
	if cfg.ServerPort != "" {
		if _, err := strconv.ParseUint(cfg.ServerPort, 10, 16); err != nil {
			return fmt.Errorf("invalid server port %q", cfg.ServerPort)
		}
	}
	return nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	def := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	def(&c.Addr, DefaultAddr)
	def(&c.ServerURL, DefaultServerURL)
	def(&c.ServerPort, DefaultServerPort)
	def(&c.Endpoint, DefaultEndpoint)
	def(&c.Destination, DefaultDestination)
	def(&c.LayoutURL, DefaultLayoutURL)
	def(&c.LayoutFile, DefaultLayoutFile)
	if c.ReconnectDelaySeconds <= 0 {
		c.ReconnectDelaySeconds = DefaultReconnectDelay
	}
}

// Defaults returns a Config with every default applied.
func Defaults() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ReconnectDelay returns ReconnectDelaySeconds as a duration.
func (c Config) ReconnectDelay() time.Duration {
	return time.Duration(c.ReconnectDelaySeconds) * time.Second
}
