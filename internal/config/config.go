package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultQuizTTL    = 10 * time.Minute
	defaultSessionTTL = 2 * time.Hour
)

// Config is the service configuration. Every section is optional; an empty
// redis address or postgres url selects the in-process implementation.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Env string `yaml:"env"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL string `yaml:"ttl"`
	} `yaml:"quiz"`
	Session struct {
		TTL string `yaml:"ttl"`
	} `yaml:"session"`
	Ranking struct {
		Top int `yaml:"top"`
	} `yaml:"ranking"`
}

// Load reads YAML config from path, applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv lets deployments point at backing services without editing the file.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := lookup("DATABASE_URL"); ok {
		c.Postgres.URL = v
	}
	if v, ok := lookup("LOG_ENV"); ok {
		c.Log.Env = v
	}
}

// Validate rejects values that would otherwise be silently replaced by defaults.
func (c Config) Validate() error {
	if c.Ranking.Top < 0 {
		return fmt.Errorf("ranking.top must not be negative, got %d", c.Ranking.Top)
	}
	for name, raw := range map[string]string{"quiz.ttl": c.Quiz.TTL, "session.ttl": c.Session.TTL} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// QuizTTL is how long a loaded quiz stays cached.
func (c Config) QuizTTL() time.Duration {
	return TTLDuration(c.Quiz.TTL, defaultQuizTTL)
}

// SessionTTL is how long an unsubmitted attempt is kept before it counts as abandoned.
func (c Config) SessionTTL() time.Duration {
	return TTLDuration(c.Session.TTL, defaultSessionTTL)
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
