package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/currency"
	"github.com/GustavoCaso/storefront/internal/datasource"
	"github.com/GustavoCaso/storefront/internal/logger"
	"github.com/GustavoCaso/storefront/internal/storage"
	"github.com/GustavoCaso/storefront/internal/storage/sqlite"
)

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(conf *config.Config, logger *logger.Logger) error
}

// OpenStorage opens the fixture store and brings its schema up to date.
func OpenStorage(ctx context.Context, conf *config.Config, logger *logger.Logger) (storage.Storage, error) {
	logger.Debug("Using database", "path", conf.DB.Source)

	store, err := sqlite.New(conf.DB)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	if err = store.ApplyMigrations(ctx, logger); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("unable to create schema: %w", err)
	}

	return store, nil
}

// NewSource reads from the configured backend, falling back to store. Without
// a backend URL only fixtures are served.
func NewSource(conf *config.Config, store storage.Storage, logger *logger.Logger) *datasource.FallbackSource {
	var client *datasource.Client
	if conf.Backend.URL != "" {
		client = datasource.NewClient(conf.Backend.URL, conf.Backend.Timeout)
	} else {
		logger.Info("No backend configured, serving fixture listings")
	}

	return datasource.NewFallbackSource(client, store, logger)
}

// NewConverter wires the conversion service. Without a service URL every
// price is shown in its source amount.
func NewConverter(conf *config.Config, logger *logger.Logger) (*currency.Converter, error) {
	if conf.Currency.ServiceURL == "" {
		logger.Info("No currency service configured, prices will not be converted")
		return currency.NewConverter(nil, logger), nil
	}

	var service currency.Service = currency.NewHTTPService(conf.Currency.ServiceURL, conf.Currency.Timeout)

	if conf.Currency.CacheSize > 0 {
		cached, err := currency.NewCachedService(service, conf.Currency.CacheSize, conf.Currency.CacheTTL)
		if err != nil {
			return nil, err
		}
		service = cached
	}

	return currency.NewConverter(service, logger), nil
}
