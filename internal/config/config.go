package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDB          = "EASYNUTRI_DB"
	EnvAddr        = "EASYNUTRI_ADDR"
	EnvLogLevel    = "EASYNUTRI_LOG_LEVEL"
	EnvSeed        = "EASYNUTRI_SEED"
	EnvCORSOrigins = "EASYNUTRI_CORS_ORIGINS"

	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
)

var logLevels = []string{"debug", "info", "warn", "error"}

type Config struct {
	// DBPath is empty when unset; callers resolve the default location.
	DBPath      string
	HTTPAddr    string
	LogLevel    string
	Seed        *int64
	CORSOrigins []string
}

// Load reads configuration from the environment after loading env files
// (.env in the working directory when none are named). Missing files are
// ignored. Variables already set in the environment win over file values.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := Config{
		DBPath:   get(EnvDB),
		HTTPAddr: get(EnvAddr),
		LogLevel: strings.ToLower(get(EnvLogLevel)),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if !validLogLevel(cfg.LogLevel) {
		return Config{}, fmt.Errorf("%s: unknown level %q (expected one of %s)", EnvLogLevel, cfg.LogLevel, strings.Join(logLevels, ", "))
	}

	if raw := get(EnvSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: parse seed %q: %w", EnvSeed, raw, err)
		}
		cfg.Seed = &seed
	}

	for _, origin := range strings.Split(get(EnvCORSOrigins), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	return cfg, nil
}

func validLogLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}
