package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/rules"
	"github.com/Veraticus/qr-signal/internal/storage"
)

func loadYAML(t *testing.T, doc string) (*Config, error) {
	t.Helper()

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, storage.BackendMemory, cfg.History.Backend)
	assert.Equal(t, storage.DefaultHistoryCapacity, cfg.History.Capacity)
	assert.False(t, cfg.Analysis.VerifyDestinationNotice)
	assert.Zero(t, cfg.CacheSize)
	assert.Equal(t, rules.DefaultTables(), cfg.EffectiveTables())
}

func TestLoad_FromYAML(t *testing.T) {
	cfg, err := loadYAML(t, `
logging:
  level: debug
  format: json
analysis:
  verify_destination_notice: true
  cache_size: 64
history:
  backend: sqlite
  capacity: 12
rules:
  shorteners:
    - cutt.ly
  tracking_params:
    - ref
`)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Analysis.VerifyDestinationNotice)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, storage.BackendSQLite, cfg.History.Backend)
	assert.Equal(t, 12, cfg.History.Capacity)

	tables := cfg.EffectiveTables()
	assert.Contains(t, tables.Shorteners, "bit.ly")
	assert.Contains(t, tables.Shorteners, "cutt.ly")
	assert.Contains(t, tables.TrackingParams, "ref")

	set, err := cfg.RuleSet()
	require.NoError(t, err)
	_, ok := set.IsShortener("cutt.ly")
	assert.True(t, ok)
}

func TestLoad_ReplaceRules(t *testing.T) {
	full := `
rules:
  replace: true
  shorteners: [s.example]
  tracking_params: [ref]
  ip_loggers: [logger.example]
  payment_providers: [pay.example]
  transactional_keywords: [login]
  app_store_hosts: [store.example]
  app_store_schemes: [market]
  package_suffixes: [.apk]
`
	cfg, err := loadYAML(t, full)
	require.NoError(t, err)
	assert.Equal(t, []string{"s.example"}, cfg.EffectiveTables().Shorteners)

	_, err = loadYAML(t, `
rules:
  replace: true
  shorteners: [s.example]
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "log level", doc: "logging:\n  level: loud\n", want: "invalid log level"},
		{name: "log format", doc: "logging:\n  format: xml\n", want: "invalid log format"},
		{name: "backend", doc: "history:\n  backend: redis\n", want: "unknown history backend"},
		{name: "capacity", doc: "history:\n  capacity: 50\n", want: "must be between 10 and 20"},
		{name: "cache size", doc: "analysis:\n  cache_size: -1\n", want: "cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadYAML(t, tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("QRSIGNAL_TEST_DIR", "/tmp/qr")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/payloads.txt", want: filepath.Join(home, "payloads.txt")},
		{input: "$QRSIGNAL_TEST_DIR/in.txt", want: "/tmp/qr/in.txt"},
		{input: "/abs/path", want: "/abs/path"},
		{input: "~user/file", want: "~user/file"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/qrsignal", dir)
}
