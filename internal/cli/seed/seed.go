package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GustavoCaso/storefront/internal/cli"
	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/fixtures"
	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/logger"
	"github.com/GustavoCaso/storefront/internal/storage"
	"github.com/GustavoCaso/storefront/internal/util"
)

type seedCommand struct {
}

func NewCommand() cli.Command {
	return seedCommand{}
}

func (c seedCommand) Description() string {
	return "Reload the fixture listings so auction end times are relative to now"
}

var kind string

func (c seedCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&kind, "kind", "", "only reseed this collection")
}

func (c seedCommand) Run(conf *config.Config, logger *logger.Logger) error {
	kinds := listing.Kinds
	if kind != "" {
		k, err := listing.ParseKind(kind)
		if err != nil {
			return err
		}
		kinds = []listing.Kind{k}
	}

	ctx := context.Background()

	store, err := cli.OpenStorage(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return seed(ctx, os.Stdout, store, kinds, time.Now(), logger)
}

// seed replaces the stored listings of kinds with fresh fixtures.
func seed(ctx context.Context, out io.Writer, store storage.Storage, kinds []listing.Kind, now time.Time, logger *logger.Logger) error {
	for _, k := range kinds {
		records, err := fixtures.Load(k, now)
		if err != nil {
			return fmt.Errorf("unable to load %s fixtures: %w", k.Collection(), err)
		}

		deleted, err := store.DeleteListings(ctx, k)
		if err != nil {
			return fmt.Errorf("unable to delete %s: %w", k.Collection(), err)
		}

		inserted, err := store.InsertListings(ctx, records)
		if err != nil {
			return fmt.Errorf("unable to insert %s: %w", k.Collection(), err)
		}

		logger.Debug("Reseeded listings", "collection", k.Collection(), "deleted", deleted, "inserted", inserted)
	}

	counts, err := store.CountListings(ctx)
	if err != nil {
		return fmt.Errorf("unable to count listings: %w", err)
	}

	for _, k := range listing.Kinds {
		fmt.Fprintf(out, "%-12s %s\n", k.Collection(), util.ColorOutput(fmt.Sprint(counts[k]), util.StyleAmount))
	}

	return nil
}
