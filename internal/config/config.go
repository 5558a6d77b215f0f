package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/GustavoCaso/storefront/internal/logger"
)

type DBConfig struct {
	Source          string        `toml:"source"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	JournalMode     string        `toml:"journal_mode"`
	BusyTimeout     int           `toml:"busy_timeout"`
}

type BackendConfig struct {
	// URL of the REST backend. Empty means fixtures only.
	URL     string        `toml:"url"`
	Timeout time.Duration `toml:"timeout"`
}

type CurrencyConfig struct {
	Default string `toml:"default"`
	// ServiceURL defaults to the backend URL.
	ServiceURL string        `toml:"service_url"`
	Timeout    time.Duration `toml:"timeout"`
	// CacheSize below zero disables the conversion cache.
	CacheSize int           `toml:"cache_size"`
	CacheTTL  time.Duration `toml:"cache_ttl"`
}

type ServerConfig struct {
	Port              string        `toml:"port"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout"`
	LiveReload        bool          `toml:"live_reload"`
	AllowEmbedding    bool          `toml:"allow_embedding"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	DB       DBConfig       `toml:"db"`
	Backend  BackendConfig  `toml:"backend"`
	Currency CurrencyConfig `toml:"currency"`
	Logger   logger.Config  `toml:"logger"`
}

const (
	DefaultPath = "storefront.toml"

	defaultPort              = "8080"
	defaultReadHeaderTimeout = 3 * time.Second
	defaultDBSource          = "storefront.db"
	defaultBackendTimeout    = 5 * time.Second
	defaultCurrency          = "USD"
	defaultCacheSize         = 512
	defaultCacheTTL          = 10 * time.Minute
	defaultLogLevel          = logger.LevelInfo
	defaultLogFormat         = logger.FormatText
	defaultLogOutput         = "stdout"
)

// Parse reads the TOML file at path, applies STOREFRONT_* environment overrides and
// fills in defaults. A missing file at DefaultPath is not an error.
func Parse(path string) (*Config, error) {
	conf := &Config{}

	if path == "" {
		path = DefaultPath
	}

	_, err := toml.DecodeFile(path, conf)
	if err != nil {
		if !(errors.Is(err, fs.ErrNotExist) && path == DefaultPath) {
			return nil, fmt.Errorf("unable to read config file %s: %w", path, err)
		}
	}

	if err = conf.parseEnv(); err != nil {
		return nil, err
	}

	conf.setDefaults()

	if err = conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) parseEnv() error {
	if port := os.Getenv("STOREFRONT_PORT"); port != "" {
		c.Server.Port = port
	}

	if reload := os.Getenv("STOREFRONT_LIVERELOAD"); reload != "" {
		c.Server.LiveReload = reload == "true"
	}

	if embedding := os.Getenv("STOREFRONT_ALLOW_EMBEDDING"); embedding != "" {
		c.Server.AllowEmbedding = embedding == "true"
	}

	if db := os.Getenv("STOREFRONT_DB"); db != "" {
		c.DB.Source = db
	}

	if backend := os.Getenv("STOREFRONT_BACKEND_URL"); backend != "" {
		c.Backend.URL = backend
	}

	if timeout := os.Getenv("STOREFRONT_BACKEND_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid STOREFRONT_BACKEND_TIMEOUT: %w", err)
		}
		c.Backend.Timeout = d
	}

	if currency := os.Getenv("STOREFRONT_CURRENCY"); currency != "" {
		c.Currency.Default = currency
	}

	if serviceURL := os.Getenv("STOREFRONT_CURRENCY_URL"); serviceURL != "" {
		c.Currency.ServiceURL = serviceURL
	}

	if size := os.Getenv("STOREFRONT_CURRENCY_CACHE_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return fmt.Errorf("invalid STOREFRONT_CURRENCY_CACHE_SIZE: %w", err)
		}
		c.Currency.CacheSize = n
	}

	if level := os.Getenv("STOREFRONT_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := os.Getenv("STOREFRONT_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := os.Getenv("STOREFRONT_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}

	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = defaultReadHeaderTimeout
	}

	if c.DB.Source == "" {
		c.DB.Source = defaultDBSource
	}

	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = defaultBackendTimeout
	}

	if c.Currency.Default == "" {
		c.Currency.Default = defaultCurrency
	}
	c.Currency.Default = strings.ToUpper(c.Currency.Default)

	if c.Currency.ServiceURL == "" {
		c.Currency.ServiceURL = c.Backend.URL
	}

	if c.Currency.Timeout == 0 {
		c.Currency.Timeout = c.Backend.Timeout
	}

	if c.Currency.CacheSize == 0 {
		c.Currency.CacheSize = defaultCacheSize
	}

	if c.Currency.CacheTTL == 0 {
		c.Currency.CacheTTL = defaultCacheTTL
	}

	if c.Logger.Level == "" {
		c.Logger.Level = defaultLogLevel
	}

	if c.Logger.Format == "" {
		c.Logger.Format = defaultLogFormat
	}

	if c.Logger.Output == "" {
		c.Logger.Output = defaultLogOutput
	}
}

func (c *Config) validate() error {
	if len(c.Currency.Default) != 3 {
		return fmt.Errorf("currency.default must be a 3 letter code, got %q", c.Currency.Default)
	}

	if c.Backend.Timeout < 0 || c.Currency.Timeout < 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	return nil
}
