package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Token store backends
const (
	TokenStoreFile    = "file"
	TokenStoreKeyring = "keyring"
)

// DefaultReplayRate is the number of replayed requests sent per second
const DefaultReplayRate = 2.0

// Config holds the CLI configuration
type Config struct {
	HistoryFile   string `json:"history_file,omitempty"`
	TokenFile     string `json:"token_file,omitempty"`
	ExportFile    string `json:"export_file,omitempty"`
	TokenStore    string `json:"token_store,omitempty"`
	Timeout       string `json:"timeout,omitempty"`
	ReplayRate    string `json:"replay_rate,omitempty"`
	DefaultOutput string `json:"default_output,omitempty"`

	path string
}

// Default returns a config with every path resolved to its default location
func Default() *Config {
	cfg := &Config{path: ConfigPath()}
	cfg.applyDefaults()
	return cfg
}

// Load reads config from XDG path, returns defaults if file doesn't exist
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path, returns defaults if file doesn't exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{path: path}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills every empty path and backend with its default
func (c *Config) applyDefaults() {
	if c.HistoryFile == "" {
		c.HistoryFile = HomeFile(HistoryFileName)
	}
	if c.TokenFile == "" {
		c.TokenFile = HomeFile(TokenFileName)
	}
	if c.ExportFile == "" {
		c.ExportFile = HomeFile(ExportFileName)
	}
	c.HistoryFile = ExpandHome(c.HistoryFile)
	c.TokenFile = ExpandHome(c.TokenFile)
	c.ExportFile = ExpandHome(c.ExportFile)
	if c.TokenStore == "" {
		c.TokenStore = TokenStoreFile
	}
}

// Validate checks values that are parsed lazily by their consumers
func (c *Config) Validate() error {
	switch c.TokenStore {
	case "", TokenStoreFile, TokenStoreKeyring:
	default:
		return fmt.Errorf("invalid token_store %q (want %q or %q)", c.TokenStore, TokenStoreFile, TokenStoreKeyring)
	}
	switch c.DefaultOutput {
	case "", "auto", "json", "plain", "rich":
	default:
		return fmt.Errorf("invalid default_output %q (want json, plain, rich or auto)", c.DefaultOutput)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	if _, err := c.ReplayRatePerSecond(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout returns the configured HTTP timeout, zero meaning none
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}

// ReplayRatePerSecond returns the replay pacing, DefaultReplayRate when unset
func (c *Config) ReplayRatePerSecond() (float64, error) {
	if c.ReplayRate == "" {
		return DefaultReplayRate, nil
	}
	r, err := strconv.ParseFloat(c.ReplayRate, 64)
	if err != nil || r <= 0 {
		return 0, fmt.Errorf("invalid replay_rate %q: must be a positive number", c.ReplayRate)
	}
	return r, nil
}

// Path returns the file this config was loaded from
func (c *Config) Path() string {
	if c.path == "" {
		return ConfigPath()
	}
	return c.path
}

// Save writes the config to the path it was loaded from
func (c *Config) Save() error {
	path := c.Path()

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// JSON is valid JSON5
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Keys returns every config key in declaration order
func (c *Config) Keys() []string {
	t := reflect.TypeOf(*c)
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if key := jsonKey(t.Field(i)); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Get retrieves a config value by key name
func (c *Config) Get(key string) (string, error) {
	field, ok := c.field(key)
	if !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return field.String(), nil
}

// Set sets a config value by key name and saves
func (c *Config) Set(key, value string) error {
	field, ok := c.field(key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}

	prev := field.String()
	field.SetString(value)
	if err := c.Validate(); err != nil {
		field.SetString(prev)
		return err
	}
	return c.Save()
}

// Unset sets a config value to its zero value and saves
func (c *Config) Unset(key string) error {
	field, ok := c.field(key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	field.SetString("")
	return c.Save()
}

func (c *Config) field(key string) (reflect.Value, bool) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		if jsonKey(t.Field(i)) == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func jsonKey(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("json")
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i]
		}
	}
	return tag
}
