// internal/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment keys read by Load.
const (
	EnvLogLevel  = "BRIDGE_LOG_LEVEL"
	EnvLogFormat = "BRIDGE_LOG_FORMAT"
	EnvDealSeed  = "BRIDGE_DEAL_SEED"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings for one adjudicator process.
type Config struct {
	LogLevel  logrus.Level
	LogFormat string
	// DealSeed seeds the deal shuffler. Zero means "pick one at startup".
	DealSeed uint64
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:  logrus.InfoLevel,
		LogFormat: FormatText,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and builds a Config from it. Missing files are not an
// error; variables already set in the environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else {
		for _, f := range files {
			if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: loading %s: %w", f, err)
			}
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := getenv(EnvLogLevel); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}

	if v := strings.ToLower(getenv(EnvLogFormat)); v != "" {
		switch v {
		case FormatText, FormatJSON:
			cfg.LogFormat = v
		default:
			return Config{}, fmt.Errorf("config: %s: unknown format %q", EnvLogFormat, v)
		}
	}

	if v := getenv(EnvDealSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvDealSeed, err)
		}
		cfg.DealSeed = seed
	}

	return cfg, nil
}

// NewLogger returns a logrus logger writing to w (stderr when nil) with the
// configured level and format.
func (c Config) NewLogger(w io.Writer) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(c.LogLevel)
	if c.LogFormat == FormatJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return l
}

func getenv(k string) string {
	return strings.TrimSpace(os.Getenv(k))
}
