// Package config resolves the effective settings of the register command
// from flags, REGISTER_* environment variables, an optional register.yaml
// and built-in defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-register/internal/logging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Backend names
const (
	BackendText   = "text"
	BackendCSV    = "csv"
	BackendExcel  = "xlsx"
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
)

// Backends lists every backend name in the order shown in help text
var Backends = []string{BackendText, BackendCSV, BackendExcel, BackendSQLite, BackendSheets}

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	File          string    `yaml:"file" mapstructure:"file"`
	Backend       string    `yaml:"backend" mapstructure:"backend"`
	Sheet         string    `yaml:"sheet" mapstructure:"sheet"`
	Table         string    `yaml:"table" mapstructure:"table"`
	SpreadsheetID string    `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	Credentials   string    `yaml:"credentials" mapstructure:"credentials"`
	MaxRetries    int       `yaml:"max_retries" mapstructure:"max_retries"`
	Diff          bool      `yaml:"diff" mapstructure:"diff"`
	Log           LogConfig `yaml:"log" mapstructure:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		File:  "personalregister.csv",
		Sheet: "Register",
		Table: "register",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// NewViper returns a viper instance carrying the defaults and the
// environment binding. Callers bind their flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault("file", d.File)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("sheet", d.Sheet)
	v.SetDefault("table", d.Table)
	v.SetDefault("spreadsheet_id", d.SpreadsheetID)
	v.SetDefault("credentials", d.Credentials)
	v.SetDefault("max_retries", d.MaxRetries)
	v.SetDefault("diff", d.Diff)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix("REGISTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile, or searches for register.yaml when it is empty,
// and returns the validated configuration. A missing searched-for file is
// not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("register")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "register"))
		} else if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "register"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: reading config file: %w", ErrInvalidConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.Backend == "" {
		cfg.Backend = InferBackend(cfg.File)
	}
	cfg.Backend = strings.ToLower(cfg.Backend)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InferBackend picks a backend from the file extension. Anything it does
// not recognise, .csv included, is read as plain text.
func InferBackend(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xlsx", ".xlsm":
		return BackendExcel
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	default:
		return BackendText
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendText, BackendCSV, BackendExcel, BackendSQLite:
		if c.File == "" {
			return fmt.Errorf("%w: backend %s requires file", ErrInvalidConfig, c.Backend)
		}
	case BackendSheets:
		if c.SpreadsheetID == "" {
			return fmt.Errorf("%w: backend sheets requires spreadsheet_id", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q (must be one of %s)", ErrInvalidConfig, c.Backend, strings.Join(Backends, ", "))
	}

	if c.Backend == BackendExcel || c.Backend == BackendSheets {
		if c.Sheet == "" {
			return fmt.Errorf("%w: backend %s requires sheet", ErrInvalidConfig, c.Backend)
		}
	}
	if c.Backend == BackendSQLite && c.Table == "" {
		return fmt.Errorf("%w: backend sqlite requires table", ErrInvalidConfig)
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max_retries must be non-negative", ErrInvalidConfig)
	}

	if err := logging.Validate(c.Log.Level, c.Log.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// YAML renders the configuration the way register.yaml spells it
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
