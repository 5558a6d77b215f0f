package export

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GustavoCaso/storefront/internal/cli"
	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/datasource"
	exporter "github.com/GustavoCaso/storefront/internal/export"
	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/logger"
)

type source interface {
	Listings(ctx context.Context, kind listing.Kind) datasource.Collection
}

type exportCommand struct {
}

func NewCommand() cli.Command {
	return exportCommand{}
}

func (c exportCommand) Description() string {
	return "Export a listing collection as CSV or JSON"
}

var kind string
var format string
var outputPath string

func (c exportCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&kind, "kind", string(listing.KindAuction), "collection to export")
	fs.StringVar(&format, "format", "csv", "output format: csv or json")
	fs.StringVar(&outputPath, "o", "", "output file, defaults to stdout")
}

func (c exportCommand) Run(conf *config.Config, logger *logger.Logger) error {
	k, err := listing.ParseKind(kind)
	if err != nil {
		return err
	}

	ctx := context.Background()

	store, err := cli.OpenStorage(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var out io.Writer = os.Stdout
	if outputPath != "" {
		file, createErr := os.Create(outputPath)
		if createErr != nil {
			return fmt.Errorf("unable to create %s: %w", outputPath, createErr)
		}
		defer file.Close()
		out = file
	}

	return export(ctx, out, cli.NewSource(conf, store, logger), k, format, logger)
}

func export(ctx context.Context, out io.Writer, src source, k listing.Kind, format string, logger *logger.Logger) error {
	collection := src.Listings(ctx, k)
	logger.Info("Exporting listings", "collection", k.Collection(), "count", len(collection.Records), "origin", collection.Origin)

	switch format {
	case "csv":
		return exporter.CSV(out, collection.Records)
	case "json":
		return exporter.JSON(out, collection.Records)
	}

	return fmt.Errorf("unsupported export format %q", format)
}
