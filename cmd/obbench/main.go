package main

import (
	"context"
	"fmt"
	"os"

	"github.com/johnnygoblue/orderbook/log"
	"github.com/johnnygoblue/orderbook/signaler"
	"github.com/urfave/cli/v2"
)

const version = "v1.0.0"

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "obbench"
	app.Version = version
	app.EnableBashCompletion = true
	app.Usage = "benchmark the level indexing strategies of the limit order book"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a JSON or YAML config file",
			EnvVars: []string{"OBBENCH_CONFIG"},
		},
	}
	app.Commands = []*cli.Command{
		runCommand,
		strategiesCommand,
	}
	app.DefaultCommand = runCommand.Name
	return app
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	sigC := signaler.WaitForInterrupt()
	go func() {
		// Capture cancel for interrupt, the harness stops between runs
		if _, ok := <-sigC; ok {
			log.Warnf(log.Global, "interrupt received, stopping after the current run")
			cancel()
		}
	}()

	err := newApp().RunContext(ctx, os.Args)
	signaler.Stop(sigC)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
