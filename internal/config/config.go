// Package config handles application configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/raykavin/fluid/pkg/dashboard"
	"github.com/raykavin/fluid/pkg/directory"
	"github.com/raykavin/fluid/pkg/provider/fred"
	"github.com/raykavin/fluid/pkg/provider/yahoo"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix         = "FLUID"
	DefaultConfigName = "fluid"

	// DefaultCacheRefresh purges the cache after the US close on trading days.
	DefaultCacheRefresh = "30 21 * * 1-5"
)

// Config holds the application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	Tickers   TickersConfig
	Prices    PricesConfig
	Yahoo     YahooConfig
	Fred      FredConfig
	Fetch     FetchConfig
	Cache     CacheConfig
	Dashboard DashboardConfig
	Economic  EconomicConfig
}

type AppConfig struct {
	Name  string
	Port  int
	Debug bool
}

type LogConfig struct {
	Level      string
	TimeFormat string
	Color      bool
	JSON       bool
}

// TickersConfig locates the ticker list workbook
type TickersConfig struct {
	File   string
	Sheet  string
	Column string
}

// Price sources
const (
	SourceYahoo = "yahoo"
	SourceCSV   = "csv"
)

// PricesConfig selects the price source. The csv source reads CSVDir/SYMBOL.csv.
type PricesConfig struct {
	Source string
	CSVDir string
}

type YahooConfig struct {
	BaseURL   string
	CookieURL string
	UserAgent string
}

// FredConfig holds the FRED API settings. The key has no default.
type FredConfig struct {
	BaseURL string
	APIKey  string
}

type FetchConfig struct {
	Timeout time.Duration
	Retries int
}

// CacheConfig controls the fetch cache. Path ":memory:" keeps nothing on disk.
// Refresh is a cron expression (UTC) at which the whole cache is purged.
type CacheConfig struct {
	Enabled bool
	Path    string
	TTL     time.Duration
	Refresh string
}

type DashboardConfig struct {
	DefaultStart time.Time
}

type EconomicConfig struct {
	Sections []dashboard.Section
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Fluid Investing")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.time_format", "2006-01-02 15:04:05")
	v.SetDefault("log.color", true)
	v.SetDefault("log.json", false)

	v.SetDefault("tickers.file", directory.DefaultFile)
	v.SetDefault("tickers.sheet", directory.DefaultSheet)
	v.SetDefault("tickers.column", directory.DefaultColumn)

	v.SetDefault("prices.source", SourceYahoo)
	v.SetDefault("prices.csv_dir", "data")

	v.SetDefault("yahoo.base_url", yahoo.DefaultBaseURL)
	v.SetDefault("yahoo.cookie_url", yahoo.DefaultCookieURL)
	v.SetDefault("yahoo.user_agent", yahoo.DefaultUserAgent)

	v.SetDefault("fred.base_url", fred.DefaultBaseURL)
	v.SetDefault("fred.api_key", "")

	v.SetDefault("fetch.timeout", "20s")
	v.SetDefault("fetch.retries", 2)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", ":memory:")
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.refresh", DefaultCacheRefresh)

	v.SetDefault("dashboard.default_start", dashboard.DefaultStart.Format(time.DateOnly))
}

// LoadDotenv loads .env style files into the process environment. Missing
// files are ignored and variables already set are kept.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads the configuration from path (optional, any format viper knows)
// and from FLUID_* environment variables, which take precedence.
// Without a path, ./fluid.yaml is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:  v.GetString("app.name"),
			Port:  v.GetInt("app.port"),
			Debug: v.GetBool("app.debug"),
		},
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			TimeFormat: v.GetString("log.time_format"),
			Color:      v.GetBool("log.color"),
			JSON:       v.GetBool("log.json"),
		},
		Tickers: TickersConfig{
			File:   v.GetString("tickers.file"),
			Sheet:  v.GetString("tickers.sheet"),
			Column: v.GetString("tickers.column"),
		},
		Prices: PricesConfig{
			Source: strings.ToLower(v.GetString("prices.source")),
			CSVDir: v.GetString("prices.csv_dir"),
		},
		Yahoo: YahooConfig{
			BaseURL:   v.GetString("yahoo.base_url"),
			CookieURL: v.GetString("yahoo.cookie_url"),
			UserAgent: v.GetString("yahoo.user_agent"),
		},
		Fred: FredConfig{
			BaseURL: v.GetString("fred.base_url"),
			APIKey:  v.GetString("fred.api_key"),
		},
		Fetch: FetchConfig{Retries: v.GetInt("fetch.retries")},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			Path:    v.GetString("cache.path"),
			Refresh: v.GetString("cache.refresh"),
		},
	}

	var err error
	if cfg.Fetch.Timeout, err = duration(v, "fetch.timeout"); err != nil {
		return nil, err
	}
	if cfg.Cache.TTL, err = duration(v, "cache.ttl"); err != nil {
		return nil, err
	}

	start := v.GetString("dashboard.default_start")
	if cfg.Dashboard.DefaultStart, err = time.Parse(time.DateOnly, start); err != nil {
		return nil, fmt.Errorf("dashboard.default_start %q: %w", start, err)
	}

	if v.IsSet("economic.sections") {
		if err := v.UnmarshalKey("economic.sections", &cfg.Economic.Sections); err != nil {
			return nil, fmt.Errorf("economic.sections: %w", err)
		}
	}

	return cfg, nil
}

// duration parses values such as "30s", "1h30m" or "1d".
func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := str2duration.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, raw, err)
	}
	return d, nil
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.port must be in 1..65535, got %d", c.App.Port))
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be positive"))
	}
	if c.Fetch.Retries < 0 {
		errs = append(errs, errors.New("fetch.retries must not be negative"))
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}
	if c.Prices.Source != SourceYahoo && c.Prices.Source != SourceCSV {
		errs = append(errs, fmt.Errorf("prices.source must be %q or %q, got %q", SourceYahoo, SourceCSV, c.Prices.Source))
	}
	if c.Cache.Enabled && c.Cache.Refresh != "" {
		if _, err := cron.ParseStandard(c.Cache.Refresh); err != nil {
			errs = append(errs, fmt.Errorf("cache.refresh: %w", err))
		}
	}
	if c.Tickers.File == "" {
		errs = append(errs, errors.New("tickers.file is required"))
	}
	for i, section := range c.Economic.Sections {
		if err := section.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("economic.sections[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

// Sections returns the configured economic catalog, or the default one.
func (c *Config) Sections() []dashboard.Section {
	if len(c.Economic.Sections) == 0 {
		return dashboard.DefaultCatalog()
	}
	return c.Economic.Sections
}

// WriteSections writes sections as the economic block of a configuration file.
func WriteSections(w io.Writer, sections []dashboard.Section) error {
	doc := map[string]any{
		"economic": map[string]any{"sections": sections},
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}
