package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Zachkp/portfolio/internal/typeanim"
)

const (
	defaultPort   = "8080"
	defaultDBPath = "portfolio.db"
	defaultTarget = "#animated-text"
)

// DefaultPhrases is what the home page types until an admin saves a list.
var DefaultPhrases = []string{
	"I am a web and Full stack developer",
	"I am a problem solver",
	"I am proficient in Go",
	"I am proficient in HTML, CSS and JS",
	"I am proficient in Python",
	"I know my way around a terminal",
	"I am constantly learning and improving myself",
	"I am creative",
}

// Config is the site configuration, read from an optional YAML file and
// PORTFOLIO_* environment variables.
type Config struct {
	Port       string
	DBPath     string
	Target     string
	Phrases    []string
	Timings    typeanim.Timings
	ConfigPath string
	// AdminToken fixes the admin login token. Empty means a random token
	// per process.
	AdminToken string
}

// Load reads configuration. A missing config file is not an error; values
// that are present must be valid.
func Load(configPath string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	defaults := typeanim.DefaultTimings()
	v.SetDefault("port", defaultPort)
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("target", defaultTarget)
	v.SetDefault("phrases", DefaultPhrases)
	v.SetDefault("typing-speed", defaults.TypingSpeed.Milliseconds())
	v.SetDefault("erase-speed", defaults.EraseSpeed.Milliseconds())
	v.SetDefault("wait-before-erase", defaults.WaitBeforeErase.Milliseconds())
	v.SetDefault("wait-before-next", defaults.WaitBeforeNext.Milliseconds())
	v.SetDefault("admin-token", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading %s: %w", configPath, err)
			}
		}
	}

	// plain PORT is what most hosting platforms set
	cfg.Port = v.GetString("port")
	if p := os.Getenv("PORT"); p != "" && os.Getenv("PORTFOLIO_PORT") == "" {
		cfg.Port = p
	}
	cfg.DBPath = v.GetString("db-path")
	cfg.Target = v.GetString("target")
	cfg.ConfigPath = v.ConfigFileUsed()
	cfg.AdminToken = v.GetString("admin-token")

	phrases, err := typeanim.PhrasesFromValue(v.Get("phrases"))
	if err != nil {
		return cfg, fmt.Errorf("phrases: %w", err)
	}
	cfg.Phrases = phrases

	if cfg.Timings.TypingSpeed, err = millis(v.Get("typing-speed")); err != nil {
		return cfg, fmt.Errorf("typing-speed: %w", err)
	}
	if cfg.Timings.EraseSpeed, err = millis(v.Get("erase-speed")); err != nil {
		return cfg, fmt.Errorf("erase-speed: %w", err)
	}
	if cfg.Timings.WaitBeforeErase, err = millis(v.Get("wait-before-erase")); err != nil {
		return cfg, fmt.Errorf("wait-before-erase: %w", err)
	}
	if cfg.Timings.WaitBeforeNext, err = millis(v.Get("wait-before-next")); err != nil {
		return cfg, fmt.Errorf("wait-before-next: %w", err)
	}

	if err := typeanim.CheckSelector(cfg.Target); err != nil {
		return cfg, fmt.Errorf("target: %w", err)
	}
	return cfg, nil
}

// millis reads a timing in milliseconds. Environment variables always
// arrive as strings, so those are converted here before validation.
func millis(v any) (time.Duration, error) {
	s, ok := v.(string)
	if !ok {
		return typeanim.ParseMillis(v)
	}
	ms, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, typeanim.ErrInvalidNumericParameter)
	}
	return typeanim.ParseMillis(ms)
}
