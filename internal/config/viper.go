package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete application configuration, loaded hierarchically:
// defaults, then an optional config.yaml, then UPISUBS_* environment
// variables.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Scan struct {
		MaxMessages     int  `mapstructure:"max_messages" yaml:"max_messages"`
		UseSenderFilter bool `mapstructure:"use_sender_filter" yaml:"use_sender_filter"`
	} `mapstructure:"scan" yaml:"scan"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"ai" yaml:"ai"`

	Data struct {
		MerchantsFile string `mapstructure:"merchants_file" yaml:"merchants_file"`
	} `mapstructure:"data" yaml:"data"`
}

// InitializeConfig loads the configuration. A missing config file is fine;
// defaults and environment variables carry the day.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/upi-subs")
	v.AddConfigPath(".upi-subs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("UPISUBS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The Gemini key always comes from the conventional unprefixed variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("scan.max_messages", 500)
	v.SetDefault("scan.use_sender_filter", true)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")

	v.SetDefault("data.merchants_file", "")
}

func validateConfig(c *Config) error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	if c.Scan.MaxMessages <= 0 {
		return fmt.Errorf("scan.max_messages must be positive, got %d", c.Scan.MaxMessages)
	}
	if len(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	if c.AI.Enabled && c.AI.Model == "" {
		return fmt.Errorf("ai.model must be set when ai.enabled is true")
	}
	return nil
}
