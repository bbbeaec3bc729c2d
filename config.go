package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Zachkp/portfolio-web/internal/logging"
	"github.com/Zachkp/portfolio-web/internal/typed"
)

// Config is everything the site reads from the environment.
type Config struct {
	Port        string
	DBPath      string
	ContentPath string
	LogLevel    slog.Level
	Typed       typed.Config

	phrasesFromEnv bool
}

// LoadConfig reads the environment (.env is autoloaded in main) and fills
// in defaults for anything unset.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		DBPath:      os.Getenv("DATABASE_PATH"),
		ContentPath: os.Getenv("CONTENT_PATH"),
		LogLevel:    logging.ParseLevel(os.Getenv("LOG_LEVEL")),
		Typed:       typed.DefaultConfig(),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "portfolio.db"
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"TYPED_INITIAL_DELAY_MS", &cfg.Typed.InitialDelay},
		{"TYPED_TYPING_INTERVAL_MS", &cfg.Typed.TypingInterval},
		{"TYPED_DWELL_AFTER_TYPE_MS", &cfg.Typed.DwellAfterType},
		{"TYPED_ERASING_INTERVAL_MS", &cfg.Typed.ErasingInterval},
		{"TYPED_DWELL_AFTER_ERASE_MS", &cfg.Typed.DwellAfterErase},
	}
	for _, d := range durations {
		raw := os.Getenv(d.key)
		if raw == "" {
			continue
		}
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return Config{}, fmt.Errorf("invalid %s %q: must be a non-negative integer", d.key, raw)
		}
		*d.dst = time.Duration(ms) * time.Millisecond
	}

	if raw := os.Getenv("TYPED_PHRASES"); raw != "" {
		cfg.Typed.Phrases = splitPhrases(raw)
		cfg.phrasesFromEnv = true
	}
	return cfg, nil
}

// splitPhrases splits a "|"-separated list, dropping blank entries.
func splitPhrases(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, "|") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ApplyContent takes the phrase list from the content file unless
// TYPED_PHRASES already set one.
func (c *Config) ApplyContent(content Content) {
	if !c.phrasesFromEnv {
		c.Typed.Phrases = content.Phrases
	}
}
