package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/GustavoCaso/storefront/internal/cli"
	"github.com/GustavoCaso/storefront/internal/cli/export"
	"github.com/GustavoCaso/storefront/internal/cli/search"
	"github.com/GustavoCaso/storefront/internal/cli/seed"
	"github.com/GustavoCaso/storefront/internal/cli/web"
	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/logger"
)

var configPath string

var subcommands = map[string]cli.Command{
	"web":    web.NewCommand(),
	"search": search.NewCommand(),
	"seed":   seed.NewCommand(),
	"export": export.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{
	"web":    nil,
	"search": nil,
	"seed":   nil,
	"export": nil,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	defaultConfig := os.Getenv("STOREFRONT_CONFIG")
	if defaultConfig == "" {
		defaultConfig = config.DefaultPath
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", defaultConfig, "Configuration file")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "unsupported command %s.\nUse 'help' command to print information about supported commands\n", commandName)
		os.Exit(1)
	}

	_ = subcommandsFlagSets[commandName].Parse(os.Args[2:])

	conf, err := config.Parse(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration: %s\n", err.Error())
		os.Exit(1)
	}

	appLogger := logger.New(conf.Logger)

	if err = command.Run(conf, appLogger); err != nil {
		appLogger.Error("Command failed", "command", commandName, "error", err)
		os.Exit(1)
	}
}

func printHelp() {
	printUsage()

	for c, cLogic := range subcommands {
		fmt.Printf("subcommand <%s>: %s\n", c, cLogic.Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: storefront <subcommand> [flags]\n\n")
}
