package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	apperrors "github.com/zxnprotocol/zxn/app/errors"
)

const (
	// EnvPrefix prefixes the environment variables overriding the config
	// file, e.g. ZXN_LOG_LEVEL.
	EnvPrefix = "ZXN"

	ConfigFileName  = "config.toml"
	GenesisFileName = "genesis.json"
	DefaultChainID  = "zxn-1"
)

// DefaultNodeHome is the default home directory of the engine.
var DefaultNodeHome = func() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".zxn"
	}
	return filepath.Join(userHome, ".zxn")
}()

// Config is the engine host configuration read from config.toml.
type Config struct {
	// Home is the directory the config was loaded from.
	Home            string          `mapstructure:"-" toml:"-"`
	ChainID         string          `mapstructure:"chain_id" toml:"chain_id"`
	CheckInvariants bool            `mapstructure:"check_invariants" toml:"check_invariants"`
	DB              DBConfig        `mapstructure:"db" toml:"db"`
	Log             LogConfig       `mapstructure:"log" toml:"log"`
	Telemetry       TelemetryConfig `mapstructure:"telemetry" toml:"telemetry"`
	Engine          EngineConfig    `mapstructure:"engine" toml:"engine"`
}

type DBConfig struct {
	// Backend is one of goleveldb, pebbledb or memdb.
	Backend string `mapstructure:"backend" toml:"backend"`
	// Dir is resolved against Home when relative.
	Dir string `mapstructure:"dir" toml:"dir"`
}

type LogConfig struct {
	// Level accepts a single level or per-module filters such as
	// "x/burnmint:debug,*:info".
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	Color  bool   `mapstructure:"color" toml:"color"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled" toml:"enabled"`
	ServiceName string `mapstructure:"service_name" toml:"service_name"`
	// ListenAddress serves /metrics when non-empty.
	ListenAddress            string `mapstructure:"listen_address" toml:"listen_address"`
	RetentionSeconds         int64  `mapstructure:"retention_seconds" toml:"retention_seconds"`
	DiskSpaceIntervalSeconds int64  `mapstructure:"disk_space_interval_seconds" toml:"disk_space_interval_seconds"`
	EnableRuntimeMetrics     bool   `mapstructure:"enable_runtime_metrics" toml:"enable_runtime_metrics"`
}

// EngineConfig overrides the schedule of the genesis file on first start.
// Zero values keep the genesis values.
type EngineConfig struct {
	CycleLengthSeconds uint64 `mapstructure:"cycle_length_seconds" toml:"cycle_length_seconds"`
	// Origin is an RFC 3339 timestamp.
	Origin string `mapstructure:"origin" toml:"origin"`
}

const (
	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

// DefaultConfig returns the default host configuration rooted at
// DefaultNodeHome.
func DefaultConfig() Config {
	return Config{
		Home:    DefaultNodeHome,
		ChainID: DefaultChainID,
		DB: DBConfig{
			Backend: string(dbm.GoLevelDBBackend),
			Dir:     "data",
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatPlain,
		},
		Telemetry: TelemetryConfig{
			Enabled:                  true,
			ServiceName:              "zxn",
			ListenAddress:            "127.0.0.1:26660",
			RetentionSeconds:         60,
			DiskSpaceIntervalSeconds: 15,
		},
	}
}

// Validate returns an error if the configuration is unusable.
func (c Config) Validate() error {
	if c.Home == "" {
		return errorsmod.Wrap(apperrors.ErrInvalidConfig, "home must be set")
	}
	if c.ChainID == "" {
		return errorsmod.Wrap(apperrors.ErrInvalidConfig, "chain_id must be set")
	}

	switch dbm.BackendType(c.DB.Backend) {
	case dbm.GoLevelDBBackend, dbm.PebbleDBBackend, dbm.MemDBBackend:
	default:
		return errorsmod.Wrapf(apperrors.ErrInvalidConfig, "unsupported db backend %q", c.DB.Backend)
	}

	switch c.Log.Format {
	case LogFormatPlain, LogFormatJSON:
	default:
		return errorsmod.Wrapf(apperrors.ErrInvalidConfig, "unsupported log format %q", c.Log.Format)
	}

	if c.Telemetry.Enabled && c.Telemetry.ServiceName == "" {
		return errorsmod.Wrap(apperrors.ErrInvalidConfig, "telemetry.service_name must be set")
	}
	if c.Telemetry.RetentionSeconds < 0 || c.Telemetry.DiskSpaceIntervalSeconds < 0 {
		return errorsmod.Wrap(apperrors.ErrInvalidConfig, "telemetry intervals must not be negative")
	}

	if _, err := c.Engine.ParseOrigin(); err != nil {
		return err
	}
	return nil
}

// ParseOrigin returns the configured cycle origin, or the zero time when
// none is set.
func (e EngineConfig) ParseOrigin() (time.Time, error) {
	if e.Origin == "" {
		return time.Time{}, nil
	}
	origin, err := time.Parse(time.RFC3339, e.Origin)
	if err != nil {
		return time.Time{}, errorsmod.Wrapf(apperrors.ErrInvalidConfig, "engine.origin: %v", err)
	}
	return origin, nil
}

// DBDir returns the database directory.
func (c Config) DBDir() string {
	if filepath.IsAbs(c.DB.Dir) {
		return c.DB.Dir
	}
	return filepath.Join(c.Home, c.DB.Dir)
}

// ConfigFile returns the path of config.toml.
func (c Config) ConfigFile() string {
	return filepath.Join(c.Home, "config", ConfigFileName)
}

// GenesisFile returns the path of genesis.json.
func (c Config) GenesisFile() string {
	return filepath.Join(c.Home, "config", GenesisFileName)
}

// LoadConfig reads config.toml from home on top of the defaults. Environment
// variables prefixed with EnvPrefix take precedence over the file.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Home = home

	v := viper.New()
	v.SetConfigFile(cfg.ConfigFile())
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", cfg.ConfigFile(), err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Home = home
	return cfg, cfg.Validate()
}

// WriteConfigFile writes cfg as TOML to path, creating parent directories.
func WriteConfigFile(path string, cfg Config) error {
	bz, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o644)
}
