package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/statement-tools/cba-pdf-to-csv/internal/api"
	"github.com/statement-tools/cba-pdf-to-csv/internal/commands"
)

type CLI struct {
	commands.CommonConfig

	Addr string `help:"Address to listen on" default:":8080" env:"ADDR"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("cba-statement-server"),
		kong.Description("HTTP API for converting Commonwealth Bank statement PDFs"),
		kong.UsageOnError(),
	)

	logger := log.New(os.Stderr)
	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		logger.Fatal("Invalid log level", "error", err)
	}
	logger.SetLevel(level)

	app := api.NewServer(logger).App()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down gracefully", "signal", sig)
		if err := app.Shutdown(); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}()

	logger.Info("Listening", "addr", cli.Addr)
	if err := app.Listen(cli.Addr); err != nil {
		logger.Fatal("Server failed", "error", err)
	}
}
