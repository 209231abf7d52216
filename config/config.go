package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/enomcdcdash/enomdash/engine"
	"github.com/enomcdcdash/enomdash/loader"
	"github.com/enomcdcdash/enomdash/schema"
)

// Config is the full runtime configuration.
type Config struct {
	LogLevel  string                   `mapstructure:"log_level"`
	Server    ServerConfig             `mapstructure:"server"`
	Data      DataConfig               `mapstructure:"data"`
	ViewsFile string                   `mapstructure:"views_file"`
	Sources   map[string]loader.Source `mapstructure:"sources"`

	// Views is resolved from ViewsFile, or the presets when it is unset.
	Views []schema.View `mapstructure:"-"`
}

// ServerConfig configures the HTTP shell.
type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	Mode       string `mapstructure:"mode"` // gin mode: debug, release, test
	DefaultTab string `mapstructure:"default_tab"`
}

// DataConfig configures dataset loading and the engine.
type DataConfig struct {
	Dir           string `mapstructure:"dir"`
	MonthColumn   string `mapstructure:"month_column"`
	ReferenceYear int    `mapstructure:"reference_year"`
	Seed          uint64 `mapstructure:"seed"` // 0 seeds from the clock
}

// Load loads configuration with priority order:
// 1. Environment variables (ENOMDASH_ prefix)
// 2. Configuration file (path, or enomdash.yaml in the search paths)
// 3. Default values
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("enomdash")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/enomdash/")
		v.AddConfigPath("./configs/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ENOMDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - continue with env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ViewsFile != "" {
		views, err := schema.LoadViewsFile(cfg.ViewsFile)
		if err != nil {
			return nil, err
		}
		cfg.Views = views
	} else {
		cfg.Views = schema.Presets()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets reasonable default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.default_tab", "regional")

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.month_column", loader.DefaultMonthColumn)
	v.SetDefault("data.reference_year", engine.DefaultReferenceYear)
	v.SetDefault("data.seed", 0)

	v.SetDefault("views_file", "")

	v.SetDefault("sources.regional.path", "availability_regional.csv")
	v.SetDefault("sources.nop.path", "availability_nop.csv")
	v.SetDefault("sources.site.path", "availability_site.csv")
	v.SetDefault("sources.kpi.path", "kpi_nop.xlsx")
	v.SetDefault("sources.kpi.sheet", "")
}

// Validate checks ranges and that every view has a source.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Data.ReferenceYear < 1 || c.Data.ReferenceYear > 9999 {
		return fmt.Errorf("data.reference_year %d out of range", c.Data.ReferenceYear)
	}
	if len(c.Views) == 0 {
		return errors.New("no views configured")
	}
	for _, view := range c.Views {
		src, ok := c.Sources[view.Name]
		if !ok || src.Path == "" {
			return fmt.Errorf("view %q has no source (sources.%s.path)", view.Name, view.Name)
		}
	}
	if _, ok := schema.Find(c.Views, c.Server.DefaultTab); !ok {
		return fmt.Errorf("server.default_tab %q is not a configured view", c.Server.DefaultTab)
	}
	return nil
}

// Source returns the resolved source for a view. Relative paths are
// joined to data.dir.
func (c *Config) Source(view string) (loader.Source, bool) {
	src, ok := c.Sources[view]
	if !ok {
		return loader.Source{}, false
	}
	src.Name = view
	if !filepath.IsAbs(src.Path) && c.Data.Dir != "" {
		src.Path = filepath.Join(c.Data.Dir, src.Path)
	}
	return src, true
}

// View returns a configured view by name.
func (c *Config) View(name string) (schema.View, bool) {
	return schema.Find(c.Views, name)
}

// LoaderOptions returns the options every dataset load uses.
func (c *Config) LoaderOptions() []loader.Option {
	return []loader.Option{loader.WithMonthColumn(c.Data.MonthColumn)}
}
