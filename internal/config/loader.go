package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognised by ApplyEnv and the CLI.
const (
	EnvSeed      = "STARFIELD_SEED"
	EnvDB        = "STARFIELD_DB"
	EnvPreset    = "STARFIELD_PRESET"
	EnvAltitude  = "STARFIELD_ALTITUDE"
	EnvDensity   = "STARFIELD_DENSITY"
	EnvLayers    = "STARFIELD_LAYERS"
	EnvBaseColor = "STARFIELD_BASE_COLOR"
)

const configFile = "starfield.yaml"

// Load loads the starfield configuration.
// Search order: customPath -> ~/.starfield/configs/starfield.yaml -> ./configs/starfield.yaml -> embedded default
func Load(customPath string) (StarFieldConfig, error) {
	var cfg StarFieldConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return Parse(data)
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultStarFieldYAML)
	if err != nil {
		return DefaultStarFieldConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hardcoded defaults, so a partial file only
// overrides the keys it names.
func Parse(data []byte) (StarFieldConfig, error) {
	cfg := DefaultStarFieldConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg StarFieldConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from STARFIELD_* variables.
func ApplyEnv(cfg *StarFieldConfig) error {
	if v, ok := os.LookupEnv(EnvAltitude); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAltitude, err)
		}
		cfg.Camera.Altitude = f
	}
	if v, ok := os.LookupEnv(EnvDensity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDensity, err)
		}
		cfg.Field.Density = n
	}
	if v, ok := os.LookupEnv(EnvLayers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLayers, err)
		}
		cfg.Field.Layers = n
	}
	if v, ok := os.LookupEnv(EnvBaseColor); ok {
		cfg.Field.BaseColor = v
	}
	return nil
}

// EnvString returns the value of key, or def when unset or empty.
func EnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvInt64 returns key parsed as int64, or def when unset or malformed.
func EnvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".starfield", "configs", filename)
}
