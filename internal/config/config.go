package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/qr-signal/internal/analysis"
	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/rules"
	"github.com/Veraticus/qr-signal/internal/storage"
)

// Configuration keys.
const (
	KeyLogLevel                = "logging.level"
	KeyLogFormat               = "logging.format"
	KeyVerifyDestinationNotice = "analysis.verify_destination_notice"
	KeyCacheSize               = "analysis.cache_size"
	KeyHistoryBackend          = "history.backend"
	KeyHistoryCapacity         = "history.capacity"
	KeyRules                   = "rules"
	KeyRulesReplace            = "rules.replace"
)

// HistoryConfig selects and sizes the history store.
type HistoryConfig struct {
	Backend  storage.Backend
	Capacity int
}

// LoggingConfig controls the global slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// Config is the resolved application configuration.
type Config struct {
	Logging  LoggingConfig
	History  HistoryConfig
	Rules    rules.Tables
	Analysis analysis.Config
	// CacheSize is the number of memoized payloads; 0 disables the cache.
	CacheSize    int
	ReplaceRules bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyVerifyDestinationNotice, analysis.DefaultConfig().VerifyDestinationNotice)
	v.SetDefault(KeyCacheSize, 0)
	v.SetDefault(KeyHistoryBackend, string(storage.BackendMemory))
	v.SetDefault(KeyHistoryCapacity, storage.DefaultHistoryCapacity)
	v.SetDefault(KeyRulesReplace, false)
}

// Load reads the configuration from v.
// Rule entries under "rules" extend the built-in tables unless
// rules.replace is set, in which case they replace them.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var tables rules.Tables
	if v.IsSet(KeyRules) {
		if err := v.UnmarshalKey(KeyRules, &tables); err != nil {
			return nil, fmt.Errorf("%w: failed to decode rules: %v", common.ErrInvalidConfig, err)
		}
	}

	cfg := &Config{
		Logging: LoggingConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		History: HistoryConfig{
			Backend:  storage.Backend(v.GetString(KeyHistoryBackend)),
			Capacity: v.GetInt(KeyHistoryCapacity),
		},
		Analysis: analysis.Config{
			VerifyDestinationNotice: v.GetBool(KeyVerifyDestinationNotice),
		},
		CacheSize:    v.GetInt(KeyCacheSize),
		ReplaceRules: v.GetBool(KeyRulesReplace),
		Rules:        tables,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return common.InvalidConfigf("invalid log format: %s", c.Logging.Format)
	}

	switch c.History.Backend {
	case storage.BackendMemory, storage.BackendSQLite:
	default:
		return common.InvalidConfigf("unknown history backend %q", c.History.Backend)
	}
	if c.History.Capacity < storage.MinHistoryCapacity || c.History.Capacity > storage.MaxHistoryCapacity {
		return common.InvalidConfigf("history capacity %d must be between %d and %d",
			c.History.Capacity, storage.MinHistoryCapacity, storage.MaxHistoryCapacity)
	}

	if c.CacheSize < 0 {
		return common.InvalidConfigf("cache size %d cannot be negative", c.CacheSize)
	}

	if c.ReplaceRules {
		return c.Rules.Normalize().Validate()
	}
	return nil
}

// EffectiveTables returns the rule tables the engine should use.
func (c *Config) EffectiveTables() rules.Tables {
	if c.ReplaceRules {
		return c.Rules.Normalize()
	}
	return rules.DefaultTables().Merge(c.Rules)
}

// RuleSet compiles the effective rule tables.
func (c *Config) RuleSet() (*rules.Set, error) {
	set, err := rules.Compile(c.EffectiveTables())
	if err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}
	return set, nil
}
