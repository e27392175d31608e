package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DigestConfig controls the daily "what's left" summary.
type DigestConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "17:00"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue","Wed","Thu","Fri"]
	Holidays []string `mapstructure:"holidays"` // ["2025-01-26", "2025-08-15"]
}

type NotificationsConfig struct {
	Desktop  bool `mapstructure:"desktop"`  // OS notifications via beeep
	Sound    bool `mapstructure:"sound"`    // chime when a pomodoro session ends
	Pomodoro bool `mapstructure:"pomodoro"` // notify on session transitions
}

type SchedulerConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// PomodoroConfig holds the minutes of the built-in default preset.
type PomodoroConfig struct {
	Work       int `mapstructure:"work"`
	ShortBreak int `mapstructure:"short_break"`
	LongBreak  int `mapstructure:"long_break"`
}

type QuoteConfig struct {
	Source    string `mapstructure:"source"` // builtin | http
	Endpoint  string `mapstructure:"endpoint"`
	Model     string `mapstructure:"model"`
	APIKeyEnv string `mapstructure:"api_key_env"`
}

type Config struct {
	DataDir       string              `mapstructure:"data_dir"`
	Timezone      string              `mapstructure:"timezone"` // e.g. "Asia/Kolkata" (optional)
	LogLevel      string              `mapstructure:"log_level"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
	Digest        DigestConfig        `mapstructure:"digest"`
	Pomodoro      PomodoroConfig      `mapstructure:"pomodoro"`
	Quote         QuoteConfig         `mapstructure:"quote"`
}

func Default() Config {
	return Config{
		DataDir:  "",
		Timezone: "",
		LogLevel: "INFO",
		Notifications: NotificationsConfig{
			Desktop:  true,
			Sound:    true,
			Pomodoro: true,
		},
		Scheduler: SchedulerConfig{TickInterval: time.Second},
		Digest: DigestConfig{
			Enabled:  false,
			Time:     "17:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
			Holidays: []string{},
		},
		Pomodoro: PomodoroConfig{Work: 25, ShortBreak: 5, LongBreak: 15},
		Quote: QuoteConfig{
			Source:    "builtin",
			Endpoint:  "https://api.groq.com/openai/v1/chat/completions",
			Model:     "mixtral-8x7b-32768",
			APIKeyEnv: "GROQ_API_KEY",
		},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "prodhub")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads ~/.config/prodhub/config.yaml. A missing file is not an error;
// PRODHUB_* environment variables override file values.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("prodhub")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("notifications.desktop", cfg.Notifications.Desktop)
	v.SetDefault("notifications.sound", cfg.Notifications.Sound)
	v.SetDefault("notifications.pomodoro", cfg.Notifications.Pomodoro)
	v.SetDefault("scheduler.tick_interval", cfg.Scheduler.TickInterval)
	v.SetDefault("digest.enabled", cfg.Digest.Enabled)
	v.SetDefault("digest.time", cfg.Digest.Time)
	v.SetDefault("digest.workdays", cfg.Digest.Workdays)
	v.SetDefault("digest.holidays", cfg.Digest.Holidays)
	v.SetDefault("pomodoro.work", cfg.Pomodoro.Work)
	v.SetDefault("pomodoro.short_break", cfg.Pomodoro.ShortBreak)
	v.SetDefault("pomodoro.long_break", cfg.Pomodoro.LongBreak)
	v.SetDefault("quote.source", cfg.Quote.Source)
	v.SetDefault("quote.endpoint", cfg.Quote.Endpoint)
	v.SetDefault("quote.model", cfg.Quote.Model)
	v.SetDefault("quote.api_key_env", cfg.Quote.APIKeyEnv)

	_ = v.ReadInConfig() // ok if missing
	// mapstructure decodes lists into the existing backing array; start empty
	// so a shorter list replaces the defaults instead of overlaying them
	cfg.Digest.Workdays, cfg.Digest.Holidays = nil, nil
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("config unmarshal: %w", err)
	}

	// normalize workdays
	for i, d := range cfg.Digest.Workdays {
		cfg.Digest.Workdays[i] = normalizeDay(d)
	}
	if cfg.Scheduler.TickInterval <= 0 {
		cfg.Scheduler.TickInterval = time.Second
	}
	if cfg.Pomodoro.Work <= 0 {
		cfg.Pomodoro.Work = 25
	}
	if cfg.Pomodoro.ShortBreak <= 0 {
		cfg.Pomodoro.ShortBreak = 5
	}
	if cfg.Pomodoro.LongBreak <= 0 {
		cfg.Pomodoro.LongBreak = 15
	}
	return cfg, nil
}

func normalizeDay(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	if len(d) > 3 {
		d = d[:3]
	}
	if d == "" {
		return d
	}
	return strings.ToUpper(d[:1]) + d[1:]
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}
