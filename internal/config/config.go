// Package config loads landing's settings from a YAML file, LANDING_*
// environment variables, an optional .env file and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/csheth/landing/internal/placeholder"
	"github.com/csheth/landing/internal/prompts"
	"github.com/csheth/landing/internal/tui"
)

const (
	envPrefix     = "LANDING"
	envConfigPath = "LANDING_CONFIG"
)

// Config is the full set of landing settings. The mapstructure tags name
// the viper keys; the yaml tags shape files written by Save.
type Config struct {
	Prompts     []string     `mapstructure:"prompts" yaml:"prompts"`
	PromptsFile string       `mapstructure:"prompts_file" yaml:"prompts_file"`
	HistoryFile string       `mapstructure:"history_file" yaml:"history_file"`
	Timing      TimingConfig `mapstructure:"timing" yaml:"timing"`
	UI          UIConfig     `mapstructure:"ui" yaml:"ui"`
	Log         LogConfig    `mapstructure:"log" yaml:"log"`
}

// TimingConfig holds the animator intervals as duration strings ("80ms").
type TimingConfig struct {
	TypeInterval   string `mapstructure:"type_interval" yaml:"type_interval"`
	Dwell          string `mapstructure:"dwell" yaml:"dwell"`
	DeleteInterval string `mapstructure:"delete_interval" yaml:"delete_interval"`
}

// UIConfig controls the hero copy and how the program uses the terminal.
type UIConfig struct {
	Headline     string `mapstructure:"headline" yaml:"headline"`
	Subtitle     string `mapstructure:"subtitle" yaml:"subtitle"`
	CompactWidth int    `mapstructure:"compact_width" yaml:"compact_width"`
	AltScreen    bool   `mapstructure:"alt_screen" yaml:"alt_screen"`
	Mouse        bool   `mapstructure:"mouse" yaml:"mouse"`
}

// LogConfig selects the log file, level and encoding.
type LogConfig struct {
	File   string `mapstructure:"file" yaml:"file"`
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Timing: TimingConfig{
			TypeInterval:   placeholder.DefaultTiming.TypeInterval.String(),
			Dwell:          placeholder.DefaultTiming.Dwell.String(),
			DeleteInterval: placeholder.DefaultTiming.DeleteInterval.String(),
		},
		UI: UIConfig{
			Headline:     tui.DefaultHeadline,
			Subtitle:     tui.DefaultSubtitle,
			CompactWidth: tui.DefaultCompactWidth,
			AltScreen:    true,
			Mouse:        true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Save writes cfg as YAML, creating parent directories as needed. The
// result can be read back with LoadWithEnv.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// DiscoverPath resolves the config file location: an existing flag path
// wins, then LANDING_CONFIG, then ~/.landing/config.yaml.
func DiscoverPath(flagPath string) string {
	if flagPath != "" {
		if _, err := os.Stat(flagPath); err == nil {
			return flagPath
		}
	}
	if envPath := os.Getenv(envConfigPath); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".landing", "config.yaml")
	}
	return filepath.Join(homeDir, ".landing", "config.yaml")
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// without overriding variables that are already set. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"prompts":   "prompts_file",
	"history":   "history_file",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// LoadWithEnv layers, from lowest to highest precedence: defaults, the
// config file at path (if present), LANDING_* environment variables and the
// flags in flags that were set explicitly.
func LoadWithEnv(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"prompts_file",
		"history_file",
		"timing.type_interval",
		"timing.dwell",
		"timing.delete_interval",
		"ui.headline",
		"ui.subtitle",
		"ui.compact_width",
		"ui.alt_screen",
		"ui.mouse",
		"log.file",
		"log.level",
		"log.format",
	} {
		_ = v.BindEnv(key)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("prompts", d.Prompts)
	v.SetDefault("prompts_file", d.PromptsFile)
	v.SetDefault("history_file", d.HistoryFile)
	v.SetDefault("timing.type_interval", d.Timing.TypeInterval)
	v.SetDefault("timing.dwell", d.Timing.Dwell)
	v.SetDefault("timing.delete_interval", d.Timing.DeleteInterval)
	v.SetDefault("ui.headline", d.UI.Headline)
	v.SetDefault("ui.subtitle", d.UI.Subtitle)
	v.SetDefault("ui.compact_width", d.UI.CompactWidth)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// PromptSet resolves the prompts to animate: a prompts file wins over
// inline prompts, which win over the built-in set.
func (c *Config) PromptSet() (prompts.Set, error) {
	if c.PromptsFile != "" {
		return prompts.Load(c.PromptsFile)
	}
	if len(c.Prompts) > 0 {
		return prompts.New(c.Prompts)
	}
	return prompts.Default(), nil
}

// AnimatorTiming parses the timing strings. Unparseable or non-positive
// values fall back to the defaults.
func (c *Config) AnimatorTiming() placeholder.Timing {
	return placeholder.Timing{
		TypeInterval:   parseDuration(c.Timing.TypeInterval, placeholder.DefaultTiming.TypeInterval),
		Dwell:          parseDuration(c.Timing.Dwell, placeholder.DefaultTiming.Dwell),
		DeleteInterval: parseDuration(c.Timing.DeleteInterval, placeholder.DefaultTiming.DeleteInterval),
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
