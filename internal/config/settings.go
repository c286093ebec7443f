// Package config loads the demo settings from flags, TEXTBOOKRSA_* environment variables
// and an optional config file, and validates them.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bastionzero/textbookrsa/report"
)

const envPrefix = "TEXTBOOKRSA"

// Log format constants
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Settings holds everything the demo scripts can be configured with
type Settings struct {
	Bits       int    `mapstructure:"bits" validate:"min=4,max=4096"`
	Exponent   int64  `mapstructure:"exponent" validate:"min=3"`
	OutputMode string `mapstructure:"output_mode" validate:"required,oneof=none ok ng all"`
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat  string `mapstructure:"log_format" validate:"required,oneof=console json"`
	Keystore   string `mapstructure:"keystore"`
}

// Defaults mirrors the worked examples: 32-bit keys, e = 17, every result shown
func Defaults() Settings {
	return Settings{
		Bits:       32,
		Exponent:   17,
		OutputMode: report.All.String(),
		LogLevel:   "info",
		LogFormat:  LogFormatConsole,
		Keystore:   "textbookrsa.db",
	}
}

// Validate checks that all fields in Settings are valid
func (s *Settings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for Settings: %w", err)
	}
	// lcm(p-1, q-1) is always even, so an even exponent has no private counterpart
	if s.Exponent%2 == 0 {
		return fmt.Errorf("validation failed for Settings: exponent %d must be odd", s.Exponent)
	}
	return nil
}

// Mode returns the parsed output mode
func (s *Settings) Mode() report.OutputMode {
	// Validate guarantees the name is known
	mode, _ := report.ParseOutputMode(s.OutputMode)
	return mode
}

// RegisterFlags adds one persistent flag per setting, using the defaults
func RegisterFlags(flags *pflag.FlagSet) {
	d := Defaults()
	flags.Int("bits", d.Bits, "modulus length in bits")
	flags.Int64("exponent", d.Exponent, "public exponent e")
	flags.String("output-mode", d.OutputMode, "per-item detail to log: none, ok, ng or all")
	flags.String("log-level", d.LogLevel, "log level: debug, info, warn or error")
	flags.String("log-format", d.LogFormat, "log format: console or json")
	flags.String("keystore", d.Keystore, "path of the SQLite key store")
	flags.String("config", "", "optional config file (yaml, toml or json)")
}

// Load resolves the settings with precedence flags > environment > config file > defaults
func Load(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("bits", d.Bits)
	v.SetDefault("exponent", d.Exponent)
	v.SetDefault("output_mode", d.OutputMode)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("keystore", d.Keystore)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, flag := range map[string]string{
			"bits":        "bits",
			"exponent":    "exponent",
			"output_mode": "output-mode",
			"log_level":   "log-level",
			"log_format":  "log-format",
			"keystore":    "keystore",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}

		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", f.Value.String(), err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
