package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/stocklens/stocklens/pkg/infrastructure/config"
	"github.com/stocklens/stocklens/pkg/infrastructure/logging"
	"github.com/stocklens/stocklens/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		dataFile   = flag.String("data", "", "Path to the ledger CSV file")
		product    = flag.String("product", "", "Product identifier")
		days       = flag.Int("days", 30, "Stats window in days")
		threshold  = flag.Int("threshold", 0, "Restock threshold in days of stock")
		format     = flag.String("format", "text", "Output format: text, json")
		report     = flag.String("report", "", "Report type: inventory, product")
		exportFile = flag.String("export", "", "Export the ledger to this CSV file")
		outFile    = flag.String("out", "", "Write report output to this file")
		lowStock   = flag.Bool("lowstock", false, "Show products below the restock threshold")
		serve      = flag.Bool("serve", false, "Serve the read-only query API")
		addr       = flag.String("addr", "", "Serve mode bind address")
		insightURL = flag.String("insight", "", "Base URL of the insight service")
		envFile    = flag.String("env", "", "Path to an optional .env file")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Must(logging.New(*verbose))
	defer logger.Sync() //nolint:errcheck

	// Flags override environment configuration.
	cmdConfig := commands.Config{
		DataFile:      firstNonEmpty(*dataFile, cfg.DataPath),
		Product:       *product,
		Days:          *days,
		ThresholdDays: *threshold,
		Format:        *format,
		Report:        *report,
		ExportFile:    *exportFile,
		OutFile:       *outFile,
		LowStock:      *lowStock,
		Serve:         *serve,
		Addr:          firstNonEmpty(*addr, cfg.ListenAddr),
		InsightURL:    firstNonEmpty(*insightURL, cfg.InsightBaseURL),
		Verbose:       *verbose,
		Help:          *help,
	}
	if cmdConfig.ThresholdDays <= 0 {
		cmdConfig.ThresholdDays = cfg.ThresholdDays
	}

	cmd := commands.NewLedgerCommand(cmdConfig, logger)
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
