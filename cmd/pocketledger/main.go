package main

import (
	"context"

	"github.com/alecthomas/kong"

	"pocketledger/internal/cli"
	"pocketledger/internal/log"
)

// commands / global flags available
var commandLine struct {
	Verbose bool   `short:"v" help:"Enable debug logging (overrides LOG_LEVEL)."`
	EnvFile string `name:"env-file" default:".env" help:"Optional dotenv file to load before reading configuration."`

	Add        addCmd        `cmd:"" help:"Record an income or expense."`
	List       listCmd       `cmd:"" help:"List transactions, newest first."`
	Show       showCmd       `cmd:"" help:"Show one transaction."`
	Delete     deleteCmd     `cmd:"" help:"Delete a transaction by id."`
	Clear      clearCmd      `cmd:"" help:"Delete every transaction."`
	Summary    summaryCmd    `cmd:"" help:"Show total income, expenses and balance."`
	Breakdown  breakdownCmd  `cmd:"" help:"Show expenses grouped by category."`
	Insights   insightsCmd   `cmd:"" help:"Ask the insight engine for a short commentary."`
	Categories categoriesCmd `cmd:"" help:"List the built-in categories."`
}

func main() {
	kctx := kong.Parse(&commandLine,
		kong.Name("pocketledger"),
		kong.Description("Track personal income and expenses."),
		kong.UsageOnError(),
	)

	cli.LoadEnvFile(commandLine.EnvFile)

	app, cleanup, err := setup(commandLine.Verbose)
	kctx.FatalIfErrorf(err)

	err = kctx.Run(app)
	if cerr := cleanup(); cerr != nil {
		app.logger.Warn("Failed to close storage", log.FieldError, cerr)
	}
	kctx.FatalIfErrorf(err)
}

func setup(verbose bool) (*appContext, func() error, error) {
	bootLogger := cli.SetupLogger("info", "text")
	cfg, err := cli.LoadAndValidateConfig(bootLogger)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := cli.SetupLogger(level, cfg.LogFormat)

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	store, closeStore, err := cli.OpenLedger(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	logger.Debug("Ledger opened",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.DataBackend,
		log.FieldKey, store.Key())

	app := newAppContext(ctx, store, cli.NewInsightService(cfg, logger), logger)
	cleanup := func() error {
		cancel()
		return closeStore()
	}
	return app, cleanup, nil
}
