// Package config loads algoviz settings with viper: defaults, then an
// optional config file, then ALGOVIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g.
// ALGOVIZ_SERVICE_BASE_URL for service.base_url.
const EnvPrefix = "ALGOVIZ"

// Config is the full configuration.
type Config struct {
	Service  ServiceConfig     `mapstructure:"service"`
	Canvas   CanvasConfig      `mapstructure:"canvas"`
	Render   RenderConfig      `mapstructure:"render"`
	Dataset  DatasetConfig     `mapstructure:"dataset"`
	Server   ServerConfig      `mapstructure:"server"`
	IDs      IDConfig          `mapstructure:"ids"`
	Variants map[string]string `mapstructure:"variants"`
}

// ServiceConfig locates the compute service.
type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CanvasConfig sizes the drawing surface.
type CanvasConfig struct {
	Width        int     `mapstructure:"width"`
	Height       int     `mapstructure:"height"`
	Margin       float64 `mapstructure:"margin"`
	MarkerRadius float64 `mapstructure:"marker_radius"`
}

// RenderConfig toggles optional drawing elements.
type RenderConfig struct {
	Caption bool `mapstructure:"caption"`
}

// DatasetConfig bounds ingestion.
type DatasetConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// ServerConfig configures the dashboard.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// IDConfig configures request ID generation.
type IDConfig struct {
	MachineID uint16 `mapstructure:"machine_id"`
	StartTime string `mapstructure:"start_time"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("service.base_url", "http://localhost:8000")
	v.SetDefault("service.timeout", time.Duration(0))
	v.SetDefault("canvas.width", 800)
	v.SetDefault("canvas.height", 600)
	v.SetDefault("canvas.margin", 20.0)
	v.SetDefault("canvas.marker_radius", 5.0)
	v.SetDefault("render.caption", false)
	v.SetDefault("dataset.max_bytes", int64(32<<20))
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("ids.machine_id", 0)
	v.SetDefault("ids.start_time", "2024-01-01")
	v.SetDefault("variants", map[string]any{
		"tsp":      "tour",
		"dijkstra": "shortest_path",
	})
}

// New returns a viper instance with defaults and environment binding. A
// non-empty path is read as the config file; its format follows the
// extension.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return v, nil
}

// Load builds and validates a Config.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.Service.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("service.base_url %q is not an absolute URL", c.Service.BaseURL))
	}
	if c.Service.Timeout < 0 {
		errs = append(errs, fmt.Errorf("service.timeout %v is negative", c.Service.Timeout))
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Canvas.Margin < 0 || 2*c.Canvas.Margin >= float64(min(c.Canvas.Width, c.Canvas.Height)) {
		errs = append(errs, fmt.Errorf("canvas.margin %v does not fit a %dx%d canvas", c.Canvas.Margin, c.Canvas.Width, c.Canvas.Height))
	}
	if c.Canvas.MarkerRadius <= 0 {
		errs = append(errs, fmt.Errorf("canvas.marker_radius %v must be positive", c.Canvas.MarkerRadius))
	}
	if c.Dataset.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("dataset.max_bytes %d must be positive", c.Dataset.MaxBytes))
	}
	if c.IDs.StartTime != "" {
		if _, err := time.Parse(time.DateOnly, c.IDs.StartTime); err != nil {
			errs = append(errs, fmt.Errorf("ids.start_time: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
