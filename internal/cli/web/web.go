package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GustavoCaso/storefront/internal/cli"
	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/logger"
	"github.com/GustavoCaso/storefront/internal/router"
	"github.com/GustavoCaso/storefront/internal/storage"
)

const shutdownTimeout = 5 * time.Second

type webCommand struct {
}

func NewCommand() cli.Command {
	return webCommand{}
}

func (c webCommand) Description() string {
	return "Web storefront"
}

var port string
var reload bool

func (c webCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&port, "p", "", "port, overrides the configuration")
	fs.BoolVar(&reload, "reload", false, "reload templates from disk on every request")
}

func (c webCommand) Run(conf *config.Config, logger *logger.Logger) error {
	if port != "" {
		conf.Server.Port = port
	}
	if reload {
		conf.Server.LiveReload = true
	}

	store, err := cli.OpenStorage(context.Background(), conf, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("Error closing storage", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, conf, store, logger)
}

// serve runs the storefront until ctx is done, then shuts the server down.
func serve(ctx context.Context, conf *config.Config, store storage.Storage, logger *logger.Logger) error {
	server, err := newServer(conf, store, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Open storefront on http://localhost:%s", conf.Server.Port))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down storefront")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}

func newServer(conf *config.Config, store storage.Storage, logger *logger.Logger) (*http.Server, error) {
	converter, err := cli.NewConverter(conf, logger)
	if err != nil {
		return nil, err
	}

	source := cli.NewSource(conf, store, logger)
	handler, _ := router.New(conf, source, converter, logger)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", conf.Server.Port),
		ReadHeaderTimeout: conf.Server.ReadHeaderTimeout,
		Handler:           handler,
	}, nil
}
