// Package config loads structviz settings from defaults, an optional YAML
// file and STRUCTVIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidPort       = errors.New("invalid server port")
	ErrInvalidTableSize  = errors.New("hash table size must be positive")
	ErrInvalidUniverse   = errors.New("dsu universe must be positive")
	ErrInvalidHistory    = errors.New("history max entries cannot be negative")
	ErrInvalidDelay      = errors.New("animation delays cannot be negative")
	ErrInvalidLogLevel   = errors.New("unknown log level")
	ErrInvalidLogFormat  = errors.New("unknown log format")
	ErrInvalidDescribeTO = errors.New("describe timeout must be positive")
)

// Default configuration values.
const (
	defaultHost         = "127.0.0.1"
	defaultPort         = 8080
	defaultTimeout      = 30 * time.Second
	defaultStepDelay    = 500 * time.Millisecond
	defaultSwapDelay    = 400 * time.Millisecond
	defaultTrieDelay    = 200 * time.Millisecond
	defaultDSUHopDelay  = 300 * time.Millisecond
	defaultSettleDelay  = time.Second
	defaultHistory      = 100
	defaultTableSize    = 7
	defaultUniverse     = 10
	defaultModel        = "gemini-2.5-flash"
	maxPort             = 65535
	configName          = "structviz"
	configType          = "yaml"
	envPrefix           = "STRUCTVIZ"
	envKeySeparator     = "_"
	apiKeyEnv           = "API_KEY"
	describeAPIKeyField = "describe.api_key"
)

// Config holds all structviz configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Animation AnimationConfig `mapstructure:"animation"`
	History   HistoryConfig   `mapstructure:"history"`
	HashTable HashTableConfig `mapstructure:"hashtable"`
	DSU       DSUConfig       `mapstructure:"dsu"`
	Server    ServerConfig    `mapstructure:"server"`
	Describe  DescribeConfig  `mapstructure:"describe"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AnimationConfig holds the pauses between trace steps.
type AnimationConfig struct {
	StepDelay   time.Duration `mapstructure:"step_delay"`
	SwapDelay   time.Duration `mapstructure:"swap_delay"`
	TrieDelay   time.Duration `mapstructure:"trie_delay"`
	DSUHopDelay time.Duration `mapstructure:"dsu_hop_delay"`
	SettleDelay time.Duration `mapstructure:"settle_delay"`
}

// HistoryConfig bounds undo stacks; 0 means unbounded.
type HistoryConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// HashTableConfig sizes the hash table engine.
type HashTableConfig struct {
	Size int `mapstructure:"size"`
}

// DSUConfig sizes the disjoint-set engine.
type DSUConfig struct {
	Universe int `mapstructure:"universe"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

// DescribeConfig holds the descriptive-info provider settings.
type DescribeConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Animation: AnimationConfig{
			StepDelay:   defaultStepDelay,
			SwapDelay:   defaultSwapDelay,
			TrieDelay:   defaultTrieDelay,
			DSUHopDelay: defaultDSUHopDelay,
			SettleDelay: defaultSettleDelay,
		},
		History:   HistoryConfig{MaxEntries: defaultHistory},
		HashTable: HashTableConfig{Size: defaultTableSize},
		DSU:       DSUConfig{Universe: defaultUniverse},
		Server: ServerConfig{
			Host:         defaultHost,
			Port:         defaultPort,
			ReadTimeout:  defaultTimeout,
			WriteTimeout: defaultTimeout,
		},
		Describe: DescribeConfig{Model: defaultModel, Timeout: defaultTimeout},
	}
}

// Load reads configuration. If configPath is empty, structviz.yaml is
// searched in ".", "./config" and "$HOME/.config/structviz"; a missing file
// is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()
	// the API key is also read from the bare variable
	if err := v.BindEnv(describeAPIKeyField, envPrefix+"_DESCRIBE_API_KEY", apiKeyEnv); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("animation.step_delay", d.Animation.StepDelay)
	v.SetDefault("animation.swap_delay", d.Animation.SwapDelay)
	v.SetDefault("animation.trie_delay", d.Animation.TrieDelay)
	v.SetDefault("animation.dsu_hop_delay", d.Animation.DSUHopDelay)
	v.SetDefault("animation.settle_delay", d.Animation.SettleDelay)

	v.SetDefault("history.max_entries", d.History.MaxEntries)
	v.SetDefault("hashtable.size", d.HashTable.Size)
	v.SetDefault("dsu.universe", d.DSU.Universe)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)

	v.SetDefault(describeAPIKeyField, "")
	v.SetDefault("describe.model", d.Describe.Model)
	v.SetDefault("describe.timeout", d.Describe.Timeout)
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	if c.HashTable.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTableSize, c.HashTable.Size)
	}
	if c.DSU.Universe <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUniverse, c.DSU.Universe)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHistory, c.History.MaxEntries)
	}
	a := c.Animation
	for _, d := range []time.Duration{a.StepDelay, a.SwapDelay, a.TrieDelay, a.DSUHopDelay, a.SettleDelay} {
		if d < 0 {
			return fmt.Errorf("%w: %s", ErrInvalidDelay, d)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
	if c.Describe.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDescribeTO, c.Describe.Timeout)
	}

	return nil
}
