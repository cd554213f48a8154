package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/stardevs/community-backend/internal/bootstrap"
	"github.com/stardevs/community-backend/internal/cli"
	"github.com/stardevs/community-backend/internal/config"
	"github.com/stardevs/community-backend/internal/logging"
)

func main() {
	// Command output owns stdout
	logger := logging.Discard()
	slog.SetDefault(logger)

	cfg := config.Load()
	open := func() (*bootstrap.Runtime, error) {
		return bootstrap.Open(cfg, logger, bootstrap.Options{})
	}

	if err := cli.RootCmd(open).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
