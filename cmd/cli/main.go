package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/flashly/flashly/internal/buildinfo"
	"github.com/flashly/flashly/internal/client/cli"
	"github.com/flashly/flashly/internal/client/client"
	"github.com/flashly/flashly/internal/client/config"
	"github.com/flashly/flashly/internal/client/services"
	"github.com/flashly/flashly/internal/flagx"
	"github.com/flashly/flashly/internal/logging"
)

func main() {
	args := os.Args[1:]
	if flagx.HasFlag(args, "-v", "-version", "--version") {
		buildinfo.PrintBuildData(os.Stdout)
		return
	}

	if err := run(args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "flashly:", err)
		os.Exit(1)
	}
}

// run wires config, logging, the local cache and the services, then runs the
// REPL on in and out until the user exits.
func run(args []string, in io.Reader, out io.Writer) error {
	ctx := context.Background()

	cfg := config.LoadConfig(args)
	if err := cfg.ResolvePaths(); err != nil {
		return err
	}

	logger, closer, err := logging.NewFileLogger(logging.FileOptions{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()
	logger.Info(ctx, "starting", "version", buildinfo.Version(), "server", cfg.ServerURL)

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	defer db.Close()
	repos := client.NewRepositories(db)

	tokens := &client.TokenHolder{}
	api, err := client.NewHTTPClient(cfg.ServerURL, tokens, cfg.RequestTimeout, client.WithLogger(logger))
	if err != nil {
		return err
	}

	auth := services.NewAuthService(api, tokens, db, logger)
	sets := services.NewStudySetService(api, repos.StudySets, logger)
	gen := services.NewGenerateService(api, sets, logger)

	return cli.NewApp(cfg, auth, sets, gen, logger, cli.WithIO(in, out)).Run(ctx)
}
