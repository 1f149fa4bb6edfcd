package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/statement-tools/cba-pdf-to-csv/internal/commands"
	"github.com/statement-tools/cba-pdf-to-csv/internal/convert"
	"github.com/statement-tools/cba-pdf-to-csv/internal/writer"
)

type CLI struct {
	commands.CommonConfig

	Files       []string `arg:"" help:"Statement PDFs to convert" type:"existingfile"`
	Format      string   `help:"Statement format to read" required:"" enum:"account,card"`
	OutputDir   string   `help:"Directory for CSV output; defaults to each input's directory" type:"existingdir" optional:""`
	Concurrency int      `help:"Number of statements to convert concurrently" default:"4"`
	NoProgress  bool     `help:"Disable progress bar" default:"false"`
}

func (c *CLI) Run() error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	// A single statement prints to stdout so the tool chains into pipelines;
	// anything else writes one CSV per input.
	if len(c.Files) == 1 && c.OutputDir == "" {
		txns, err := convert.Statement(c.Files[0], c.Format, logger)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Files[0], err)
		}
		return writer.WriteCSV(os.Stdout, txns)
	}

	var progress commands.Progress = commands.NewNoopProgress()
	if !c.NoProgress {
		progress = commands.NewBarProgress(len(c.Files))
	}
	defer progress.Close()

	g := new(errgroup.Group)
	g.SetLimit(c.Concurrency)
	for _, file := range c.Files {
		file := file
		g.Go(func() error {
			txns, err := convert.Statement(file, c.Format, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			outPath := c.outputPath(file)
			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := writer.WriteCSV(out, txns); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			logger.Info("Converted statement", "input", file, "output", outPath, "transactions", len(txns))
			return progress.Done(file)
		})
	}
	return g.Wait()
}

func (c *CLI) outputPath(file string) string {
	if c.OutputDir != "" {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		return filepath.Join(c.OutputDir, base+".csv")
	}
	return strings.TrimSuffix(file, filepath.Ext(file)) + ".csv"
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cba-pdf-to-csv"),
		kong.Description("Converts Commonwealth Bank statement PDFs into validated transaction CSVs"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
