package main

import (
	"os"

	"github.com/breez/feereport/build"
	"github.com/breez/feereport/cln_plugin"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func main() {
	log := newStderrLogger(false)
	defer log.Sync()

	app := cli.NewApp()
	app.Name = "feereport"
	app.Version = build.GetVersion()
	app.Usage = "CLN plugin reporting channel fee policies and earned " +
		"routing fees, like `lncli feereport`"
	app.Description = "Activate the plugin with " +
		"`lightningd --plugin=/path/to/feereport` and call it with " +
		"`lightning-cli feereport`."
	app.Action = func(ctx *cli.Context) error {
		plugin := cln_plugin.NewClnPlugin(
			os.Stdin,
			os.Stdout,
			cln_plugin.NewClnClientFactory(),
		)
		return plugin.Start()
	}
	app.Commands = []cli.Command{
		reportCommand,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal("feereport failed", zap.Error(err))
	}
}

func newStderrLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return log
}
