package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/breez/feereport/cln"
	"github.com/breez/feereport/config"
	"github.com/breez/feereport/feereport"
	"github.com/urfave/cli"
)

var reportCommand = cli.Command{
	Name:  "report",
	Usage: "Connect to the lightningd rpc socket directly and print the fee report.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "socket",
			Usage: "Path to the lightningd rpc socket. Overrides lightning-dir and rpc-file.",
		},
		cli.StringFlag{
			Name:  "lightning-dir",
			Value: "~/.lightning/bitcoin",
			Usage: "The lightning directory of the node.",
		},
		cli.StringFlag{
			Name:  "rpc-file",
			Value: "lightning-rpc",
			Usage: "Name of the rpc socket inside the lightning directory.",
		},
		cli.DurationFlag{
			Name:  "rpc-timeout",
			Value: time.Minute,
			Usage: "Maximum duration of a single rpc call.",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log debug output to stderr.",
		},
	},
	Action: report,
}

func report(ctx *cli.Context) error {
	log := newStderrLogger(ctx.Bool("verbose"))
	defer log.Sync()

	cfg, err := getConfig(ctx)
	if err != nil {
		return err
	}

	client, err := cln.NewClnClient(cfg.SocketPath(), cfg.RpcTimeout, log.Named("cln"))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.SocketPath(), err)
	}

	info, err := client.GetInfo()
	if err != nil {
		return fmt.Errorf("getinfo: %w", err)
	}
	cln.CheckVersion(log, info.Version)

	generator := feereport.NewGenerator(
		client,
		info.Pubkey,
		feereport.WithLogger(log.Named("feereport")),
	)
	r, err := generator.GenerateReport()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}

func getConfig(ctx *cli.Context) (*config.PluginConfig, error) {
	timeout := ctx.Duration("rpc-timeout")
	var cfg *config.PluginConfig
	if socket := ctx.String("socket"); socket != "" {
		path, err := expandHome(socket)
		if err != nil {
			return nil, err
		}
		cfg = config.FromSocketPath(path, timeout)
	} else {
		dir, err := expandHome(ctx.String("lightning-dir"))
		if err != nil {
			return nil, err
		}
		cfg = &config.PluginConfig{
			LightningDir: dir,
			RpcFile:      ctx.String("rpc-file"),
			RpcTimeout:   timeout,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
