package commands

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/stocklens/stocklens/pkg/application/services"
	"github.com/stocklens/stocklens/pkg/domain/collaborators"
	"github.com/stocklens/stocklens/pkg/domain/entities"
	"github.com/stocklens/stocklens/pkg/infrastructure/clients/insight"
	"github.com/stocklens/stocklens/pkg/infrastructure/repositories/csv"
	"github.com/stocklens/stocklens/pkg/infrastructure/repositories/memory"
	"github.com/stocklens/stocklens/pkg/interfaces/api"
	"github.com/stocklens/stocklens/pkg/interfaces/cli/output"
)

// Config holds configuration for the ledger command.
type Config struct {
	DataFile      string
	Product       string
	Days          int
	ThresholdDays int
	Format        string
	Report        string
	ExportFile    string
	OutFile       string
	LowStock      bool
	Serve         bool
	Addr          string
	InsightURL    string
	Verbose       bool
	Help          bool
}

// LedgerCommand loads the ledger and dispatches one analyst operation:
// summary, product stats, restock advisory, report generation, export,
// or serve mode.
type LedgerCommand struct {
	config Config
	logger *zap.Logger
}

// NewLedgerCommand creates a new ledger command with the given
// configuration.
func NewLedgerCommand(config Config, logger *zap.Logger) *LedgerCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerCommand{config: config, logger: logger}
}

// Execute runs the ledger command.
func (c *LedgerCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.DataFile == "" {
		return fmt.Errorf("must specify a ledger CSV with -data (or STOCKLENS_DATA)")
	}

	loader := csv.NewLoader(c.logger.Named("loader"))
	table, err := loader.Load(c.config.DataFile)
	if err != nil {
		return fmt.Errorf("error loading ledger: %w", err)
	}

	ledger, err := memory.NewLedgerRepository(table)
	if err != nil {
		return fmt.Errorf("error building ledger: %w", err)
	}

	c.logger.Debug("ledger ready",
		zap.Int("records", ledger.Len()),
		zap.Int("products", len(ledger.Products())))

	queries := services.NewQueryService(ledger)
	restock := services.NewRestockService(ledger)

	switch {
	case c.config.Serve:
		server := api.NewServer(ledger, c.logger.Named("api"))
		c.logger.Info("serving ledger queries", zap.String("addr", c.config.Addr))
		return server.Run(c.config.Addr)

	case c.config.ExportFile != "":
		exporter := csv.NewExporter(c.logger.Named("exporter"))
		if err := exporter.Export(c.config.ExportFile, ledger.Schema(), ledger.Records()); err != nil {
			return err
		}
		fmt.Printf("Exported %d records to %s\n", ledger.Len(), c.config.ExportFile)
		return nil

	case c.config.Report != "":
		return c.runReport(ctx, queries, restock)

	case c.config.LowStock:
		return output.RenderLowStock(os.Stdout, restock.LowStock(c.config.ThresholdDays), c.config.Format)

	case c.config.Product != "":
		stats := queries.ProductStats(entities.ProductID(c.config.Product), c.config.Days)
		return output.RenderProductStats(os.Stdout, stats, c.config.Format)

	default:
		return output.RenderSummary(os.Stdout, queries.Summary(), c.config.Format)
	}
}

func (c *LedgerCommand) runReport(ctx context.Context, queries *services.QueryService, restock *services.RestockService) error {
	var forecasts collaborators.ForecastProvider
	var anomalies collaborators.AnomalyDetector
	var sentiment collaborators.SentimentAnalyzer
	if c.config.InsightURL != "" {
		client := insight.NewClient(c.config.InsightURL, c.logger.Named("insight"))
		forecasts, anomalies, sentiment = client, client, client
	}

	generator := output.NewReportGenerator(queries, restock, forecasts, anomalies, sentiment, c.logger.Named("report"))

	var report string
	switch c.config.Report {
	case "inventory":
		report = generator.InventoryReport(ctx)
	case "product":
		if c.config.Product == "" {
			return fmt.Errorf("product report requires -product")
		}
		report = generator.ProductReport(ctx, entities.ProductID(c.config.Product))
	default:
		return fmt.Errorf("unsupported report type: %s (expected: inventory or product)", c.config.Report)
	}

	if c.config.OutFile != "" {
		if err := os.WriteFile(c.config.OutFile, []byte(report), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report saved to %s\n", c.config.OutFile)
		return nil
	}

	fmt.Print(report)
	return nil
}

// showHelp displays the help message.
func (c *LedgerCommand) showHelp() {
	fmt.Printf(`stocklens - Inventory ledger analytics

USAGE:
    stocklens -data <ledger.csv> [operation flags]

OPERATIONS (first match wins):
    -serve                 Serve read-only query API over the loaded ledger
    -export <file>         Export the ledger to a CSV file
    -report <type>         Generate a text report: inventory, product
    -lowstock              Show products below the restock threshold
    -product <id>          Show stats for one product
    (none)                 Show the global ledger summary

OPTIONS:
    -data <file>           Ledger CSV file (or STOCKLENS_DATA)
    -product <id>          Product filter for -report product and stats
    -days <n>              Stats window in days (default: 30)
    -threshold <n>         Restock threshold in days of stock (default: 7)
    -format <fmt>          Output format: text, json (default: text)
    -out <file>            Write report output to a file
    -addr <addr>           Serve mode bind address (default: :8080)
    -insight <url>         Base URL of the forecast/anomaly/sentiment service
    -verbose               Enable debug logging
    -help                  Show this help message

LEDGER CSV FORMAT:
    Required columns: product, date, current_stock_level, daily_sold_units
    Optional columns: daily_production_units, temp_celsius,
    weather_condition, promotion_active, is_stockout
    All other columns are preserved as pass-through attributes.

EXAMPLES:
    stocklens -data data/ledger.csv
    stocklens -data data/ledger.csv -product "haircare" -days 30
    stocklens -data data/ledger.csv -lowstock -threshold 10 -format json
    stocklens -data data/ledger.csv -report inventory -out report.txt
    stocklens -data data/ledger.csv -export backup.csv
    stocklens -data data/ledger.csv -serve -addr :9000
`)
}
