package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal"
	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/logger"
)

var log = logger.Get("Main")

func main() {
	configPath := flag.String("config", "", "path to a YAML config file; when omitted, configuration is read from the environment")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	if *verbose {
		logger.SetMinLoggingLevel(logger.VERBOSE)
	}

	var config internal.PortalConfig
	var err error
	if *configPath != "" {
		err = config.LoadFromFile(*configPath)
	} else {
		err = config.LoadFromEnv()
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v\n", err)
	}

	portal, err := internal.New(config)
	if err != nil {
		log.Fatalf("Failed to initialise portal: %v\n", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := portal.Run(ctx); err != nil {
		log.Fatalf("Portal exited with error: %v\n", err)
	}
}
