package config

import (
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"github.com/anas-shakeel/bmpview/internal/filters"
)

type Config struct {
	Path          string        `mapstructure:"path"`
	Display       string        `mapstructure:"display"` // window, terminal or none
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	Title         string        `mapstructure:"title"`
	Scale         int           `mapstructure:"scale"` // window and export enlargement
	Step          int           `mapstructure:"step"`  // terminal sampling
	Filter        string        `mapstructure:"filter"`
	Factor        float64       `mapstructure:"factor"`
	Method        string        `mapstructure:"method"`
	Check         string        `mapstructure:"check"` // consistency rule, empty to skip
	Export        string        `mapstructure:"export"`
	HeaderOnly    bool          `mapstructure:"header_only"`
	Info          bool          `mapstructure:"info"`
}

var Displays = []string{"window", "terminal", "none"}

// Defaults returns the settings used when neither the file nor the command
// line set a key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"path":           "",
		"display":        "window",
		"frame_interval": "5s",
		"title":          "bmp",
		"scale":          1,
		"step":           4,
		"filter":         "none",
		"factor":         1.0,
		"method":         "multiply",
		"check":          "",
		"export":         "",
		"header_only":    false,
		"info":           false,
	}
}

// Load merges the defaults, the YAML file at configPath (if it exists) and
// overrides, in that order. An empty configPath skips the file.
func Load(configPath string, overrides map[string]interface{}) (Config, error) {
	settings := Defaults()

	if configPath != "" {
		fromFile, err := readFile(configPath)
		if err != nil {
			return Config{}, err
		}
		for k, v := range fromFile {
			settings[k] = v
		}
	}

	for k, v := range overrides {
		settings[k] = v
	}

	var cfg Config
	if err := decode(settings, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(configPath string) (map[string]interface{}, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Configuration file '%s' not found. Using defaults.", configPath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read configuration file '%s': %w", configPath, err)
	}

	settings := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file '%s': %w", configPath, err)
	}
	log.Printf("Loaded %d setting(s) from %s.", len(settings), configPath)
	return settings, nil
}

func decode(settings map[string]interface{}, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(settings)
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	switch {
	case !slices.Contains(Displays, c.Display):
		return fmt.Errorf("unknown display %q, want one of %v", c.Display, Displays)
	case !slices.Contains(filters.Names, c.Filter):
		return fmt.Errorf("unknown filter %q, want one of %v", c.Filter, filters.Names)
	case c.FrameInterval <= 0:
		return fmt.Errorf("frame_interval must be positive, got %v", c.FrameInterval)
	case c.Scale < 1:
		return fmt.Errorf("scale must be at least 1, got %d", c.Scale)
	case c.Step < 1:
		return fmt.Errorf("step must be at least 1, got %d", c.Step)
	}
	return nil
}
