package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pomodux/pomodux/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Intervals     IntervalsConfig     `toml:"intervals"`
	Notifications NotificationsConfig `toml:"notifications"`
	Web           WebConfig           `toml:"web"`
	Digest        DigestConfig        `toml:"digest"`
}

// IntervalsConfig holds the default interval durations in minutes,
// applied to users on first contact. Per-user overrides live in the
// state store.
type IntervalsConfig struct {
	PomodoroMinutes   int `toml:"pomodoro_minutes"`
	ShortBreakMinutes int `toml:"short_break_minutes"`
	LongBreakMinutes  int `toml:"long_break_minutes"`
}

// NotificationsConfig holds notification settings
type NotificationsConfig struct {
	Desktop      bool   `toml:"desktop"`
	SlackWebhook string `toml:"slack_webhook"`
}

// WebConfig holds the API server settings
type WebConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// DigestConfig holds the scheduled stats summary settings
type DigestConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Intervals: IntervalsConfig{
			PomodoroMinutes:   25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
		},
		Notifications: NotificationsConfig{
			Desktop: true,
		},
		Web: WebConfig{
			Port: 8080,
			Host: "127.0.0.1",
		},
		Digest: DigestConfig{
			Enabled: false,
			Cron:    "0 9 * * *",
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultIntervals converts the configured minute values into the
// per-user interval record, ignoring non-positive entries.
func (c *Config) DefaultIntervals() domain.UserIntervals {
	iv := domain.DefaultIntervals()
	if c.Intervals.PomodoroMinutes > 0 {
		iv.Pomodoro = c.Intervals.PomodoroMinutes * 60
	}
	if c.Intervals.ShortBreakMinutes > 0 {
		iv.ShortBreak = c.Intervals.ShortBreakMinutes * 60
	}
	if c.Intervals.LongBreakMinutes > 0 {
		iv.LongBreak = c.Intervals.LongBreakMinutes * 60
	}
	return iv
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pomodux", "config.toml")
}
