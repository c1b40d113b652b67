package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/AgnopraxLab/mutkit/flags"
)

var app = initApp()

func initApp() *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "Test case mutation toolkit"
	app.Flags = append(app.Flags, flags.VerbosityFlag)
	app.Before = setupLogging
	app.Commands = []*cli.Command{
		mutateCommand,
		fuzzCommand,
		listCommand,
		benchCommand,
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) error {
	loglevel := slog.Level(ctx.Int(flags.VerbosityFlag.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, loglevel, true)))
	log.Debug("Set loglevel", "level", loglevel)
	return nil
}
