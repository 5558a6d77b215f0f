package main

import (
	"fmt"
	"os"

	"github.com/GustavoCaso/storefront/internal/cli/web"
	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/logger"
)

func main() {
	configPath := os.Getenv("STOREFRONT_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath
	}

	conf, err := config.Parse(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration. %s", err.Error())
		os.Exit(1)
	}

	appLogger := logger.New(conf.Logger)

	err = web.NewCommand().Run(conf, appLogger)
	if err != nil {
		appLogger.Error("failed to run the storefront web service", "error", err)
		os.Exit(1)
	}

	os.Exit(0)
}
