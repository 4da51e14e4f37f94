// SPDX-License-Identifier: MIT

// Package config loads the settings of the harness tools from a YAML file
// with HARNESS_* environment overrides, and turns them into document
// options and a logger.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/katalvlaran/harness"
	"github.com/katalvlaran/harness/autoroute"
	"github.com/katalvlaran/harness/bundleroute"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/wire"
)

// EnvPrefix starts every environment override, e.g. HARNESS_ROUTING_HUB_THRESHOLD.
const EnvPrefix = "HARNESS_"

// Config is the top-level configuration, corresponding to harness.yml.
type Config struct {
	Routing Routing `yaml:"routing" koanf:"routing"`
	IDs     IDs     `yaml:"ids" koanf:"ids"`
	Log     Log     `yaml:"log" koanf:"log"`
}

// Routing holds router and wire defaults.
type Routing struct {
	HubThreshold        int     `yaml:"hub_threshold" koanf:"hub_threshold" validate:"gte=0"`
	BranchOffsetX       float64 `yaml:"branch_offset_x" koanf:"branch_offset_x"`
	BranchOffsetY       float64 `yaml:"branch_offset_y" koanf:"branch_offset_y"`
	SnapRadius          float64 `yaml:"snap_radius" koanf:"snap_radius" validate:"gte=0"`
	DefaultColor        string  `yaml:"default_color" koanf:"default_color" validate:"required,wirecolor"`
	DefaultCrossSection float64 `yaml:"default_cross_section" koanf:"default_cross_section" validate:"gt=0"`
}

// IDs selects how new entity ids are generated.
type IDs struct {
	Scheme string `yaml:"scheme" koanf:"scheme" validate:"oneof=sequential uuid"`
}

// Log configures the logger built by Logger.
type Log struct {
	Level  string `yaml:"level" koanf:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" koanf:"format" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	auto := autoroute.DefaultConfig()
	return &Config{
		Routing: Routing{
			HubThreshold:        auto.HubThreshold,
			BranchOffsetX:       auto.BranchOffset.X,
			BranchOffsetY:       auto.BranchOffset.Y,
			SnapRadius:          bundleroute.DefaultSnapRadius,
			DefaultColor:        wire.DefaultColor,
			DefaultCrossSection: wire.DefaultCrossSection,
		},
		IDs: IDs{Scheme: "sequential"},
		Log: Log{Level: "info", Format: "text"},
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("wirecolor", func(fl validator.FieldLevel) bool {
		_, err := wire.ParseColor(fl.Field().String())
		return err == nil
	})
}

// Load reads configuration from the YAML file at path, when it exists,
// then overlays HARNESS_* environment variables and validates the result.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// HARNESS_ROUTING_HUB_THRESHOLD -> routing.hub_threshold
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the YAML file at path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// IDSource returns the id generator selected by ids.scheme.
func (c *Config) IDSource() core.IDSource {
	if c.IDs.Scheme == "uuid" {
		return core.RandomIDs{}
	}
	return core.NewSequentialIDs()
}

// DocumentOptions turns the routing and id settings into options for
// harness.New and harness.FromSnapshot.
func (c *Config) DocumentOptions() []harness.Option {
	r := c.Routing
	return []harness.Option{
		harness.WithIDSource(c.IDSource()),
		harness.WithAutoRoute(autoroute.WithConfig(autoroute.Config{
			HubThreshold: r.HubThreshold,
			BranchOffset: core.Point{X: r.BranchOffsetX, Y: r.BranchOffsetY},
		})),
		harness.WithSnapRadius(r.SnapRadius),
		harness.WithWireDefaults(r.DefaultColor, r.DefaultCrossSection),
	}
}

// Logger builds a slog logger writing to w in the configured format and
// level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) level() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
