package output

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stocklens/stocklens/pkg/application/services"
	"github.com/stocklens/stocklens/pkg/domain/collaborators"
	"github.com/stocklens/stocklens/pkg/domain/entities"
)

const (
	reportRule    = "============================================================"
	sectionRule   = "------------------------------------------------------------"
	forecastDays  = 14
	maxReportRows = 5
)

// ReportGenerator renders analyst-facing text reports from engine
// outputs. Collaborator fields are optional; a nil collaborator or a
// failing call simply leaves its section out, since reports must stay
// usable without the external analysis service.
type ReportGenerator struct {
	queries   *services.QueryService
	restock   *services.RestockService
	forecasts collaborators.ForecastProvider
	anomalies collaborators.AnomalyDetector
	sentiment collaborators.SentimentAnalyzer
	logger    *zap.Logger
}

// NewReportGenerator wires a report generator. Collaborators may be nil.
func NewReportGenerator(
	queries *services.QueryService,
	restock *services.RestockService,
	forecasts collaborators.ForecastProvider,
	anomalies collaborators.AnomalyDetector,
	sentiment collaborators.SentimentAnalyzer,
	logger *zap.Logger,
) *ReportGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportGenerator{
		queries:   queries,
		restock:   restock,
		forecasts: forecasts,
		anomalies: anomalies,
		sentiment: sentiment,
		logger:    logger,
	}
}

// InventoryReport renders the full inventory analysis report: general
// statistics, per-product analysis, detected anomalies, and the
// restock plan.
func (g *ReportGenerator) InventoryReport(ctx context.Context) string {
	var b strings.Builder

	summary := g.queries.Summary()

	fmt.Fprintln(&b, reportRule)
	fmt.Fprintln(&b, "INVENTORY ANALYSIS REPORT")
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	if summary.Records > 0 {
		fmt.Fprintf(&b, "Period: %s to %s\n",
			summary.StartDate.Format(entities.DateLayout),
			summary.EndDate.Format(entities.DateLayout))
	}
	fmt.Fprintln(&b)

	g.writeGeneralStats(&b, summary)
	g.writeProductAnalysis(ctx, &b)
	g.writeAnomalySection(ctx, &b, "")
	g.writeRestockPlan(&b)

	fmt.Fprintln(&b, reportRule)
	return b.String()
}

// ProductReport renders a detail report for one product: 30-day stats,
// a 14-day demand forecast, and recent anomalies.
func (g *ReportGenerator) ProductReport(ctx context.Context, product entities.ProductID) string {
	var b strings.Builder

	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "PRODUCT REPORT - %s\n", product)
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	stats := g.queries.ProductStats(product, services.DefaultStatsDays)
	if stats != nil {
		fmt.Fprintln(&b, "STATISTICS (last 30 days)")
		fmt.Fprintln(&b, sectionRule)
		fmt.Fprintf(&b, "Total sold: %.0f units\n", stats.TotalSold)
		fmt.Fprintf(&b, "Avg daily sold: %.2f units\n", stats.AvgDailySold)
		fmt.Fprintf(&b, "Current stock: %d units\n", stats.CurrentStock)
		fmt.Fprintf(&b, "Stock range: %d - %d units\n", stats.MinStock, stats.MaxStock)
		fmt.Fprintf(&b, "Stockout days: %d\n\n", stats.StockoutDays)
	} else {
		fmt.Fprintf(&b, "No records for %s in the last %d days.\n\n", product, services.DefaultStatsDays)
	}

	g.writeForecastSection(ctx, &b, product)
	g.writeAnomalySection(ctx, &b, product)

	fmt.Fprintln(&b, reportRule)
	return b.String()
}

func (g *ReportGenerator) writeGeneralStats(b *strings.Builder, summary entities.Summary) {
	fmt.Fprintln(b, "GENERAL STATISTICS")
	fmt.Fprintln(b, sectionRule)
	fmt.Fprintf(b, "Records: %d\n", summary.Records)
	fmt.Fprintf(b, "Products: %d\n", summary.Products)
	fmt.Fprintf(b, "Total sales: %.0f units\n", summary.TotalSold)
	fmt.Fprintf(b, "Total stock: %d units\n", summary.TotalCurrentStock)
	fmt.Fprintf(b, "Stockout incidents: %d\n", summary.StockoutIncidents)
	if summary.TotalRevenue != nil {
		fmt.Fprintf(b, "Total revenue: %s\n", summary.TotalRevenue.StringFixed(2))
	}
	fmt.Fprintln(b)
}

func (g *ReportGenerator) writeProductAnalysis(ctx context.Context, b *strings.Builder) {
	fmt.Fprintln(b, "PRODUCT ANALYSIS")
	fmt.Fprintln(b, sectionRule)

	for _, product := range g.queries.Products() {
		stats := g.queries.ProductStats(product, services.DefaultStatsDays)
		if stats == nil {
			continue
		}
		fmt.Fprintf(b, "\n%s:\n", product)
		fmt.Fprintf(b, "  Sales (30d): %.0f units\n", stats.TotalSold)
		fmt.Fprintf(b, "  Avg/day: %.2f units\n", stats.AvgDailySold)
		fmt.Fprintf(b, "  Current stock: %d units\n", stats.CurrentStock)

		if g.sentiment != nil {
			sentiment, err := g.sentiment.Sentiment(ctx, product)
			if err != nil {
				g.logger.Debug("sentiment unavailable", zap.String("product", string(product)), zap.Error(err))
			} else if sentiment != nil {
				fmt.Fprintf(b, "  Sentiment: %s (%.0f%%)\n", sentiment.Label, sentiment.Score*100)
			}
		}
	}
	fmt.Fprintln(b)
}

func (g *ReportGenerator) writeAnomalySection(ctx context.Context, b *strings.Builder, product entities.ProductID) {
	fmt.Fprintln(b, "DETECTED ANOMALIES")
	fmt.Fprintln(b, sectionRule)

	if g.anomalies == nil {
		fmt.Fprintln(b, "Anomaly detection not configured.")
		fmt.Fprintln(b)
		return
	}

	anomalies, err := g.anomalies.Anomalies(ctx, product)
	if err != nil {
		g.logger.Debug("anomaly detection unavailable", zap.Error(err))
		fmt.Fprintln(b, "Anomaly detection unavailable.")
		fmt.Fprintln(b)
		return
	}
	if len(anomalies) == 0 {
		fmt.Fprintln(b, "No anomalies detected.")
		fmt.Fprintln(b)
		return
	}

	collaborators.SortAnomalies(anomalies)
	fmt.Fprintf(b, "Total: %d anomalies\n", len(anomalies))
	for i, anomaly := range anomalies {
		if i == maxReportRows {
			break
		}
		fmt.Fprintf(b, "\n  %s - %s [%s]:\n", anomaly.Date.Format(entities.DateLayout), anomaly.Product, anomaly.Severity)
		fmt.Fprintf(b, "    %s - %s\n", anomaly.Type, anomaly.Message)
	}
	fmt.Fprintln(b)
}

func (g *ReportGenerator) writeForecastSection(ctx context.Context, b *strings.Builder, product entities.ProductID) {
	fmt.Fprintf(b, "FORECAST (%d days)\n", forecastDays)
	fmt.Fprintln(b, sectionRule)

	if g.forecasts == nil {
		fmt.Fprintln(b, "Forecasting not configured.")
		fmt.Fprintln(b)
		return
	}

	points, err := g.forecasts.Forecast(ctx, product, forecastDays, "")
	if err != nil || len(points) == 0 {
		if err != nil {
			g.logger.Debug("forecast unavailable", zap.String("product", string(product)), zap.Error(err))
		}
		fmt.Fprintln(b, "Forecast unavailable.")
		fmt.Fprintln(b)
		return
	}

	var total float64
	for _, p := range points {
		total += p.PredictedDemand
	}
	fmt.Fprintf(b, "Total predicted demand: %.0f units\n", total)
	fmt.Fprintf(b, "Avg predicted/day: %.2f units\n", total/float64(len(points)))
	fmt.Fprintf(b, "Method: %s\n\n", points[0].Method)
}

func (g *ReportGenerator) writeRestockPlan(b *strings.Builder) {
	fmt.Fprintln(b, "RESTOCK PLAN")
	fmt.Fprintln(b, sectionRule)

	entries := g.restock.LowStock(services.DefaultThresholdDays)
	if len(entries) == 0 {
		fmt.Fprintln(b, "Stock levels satisfactory.")
		fmt.Fprintln(b)
		return
	}

	fmt.Fprintf(b, "%d products need attention:\n", len(entries))
	for _, entry := range entries {
		fmt.Fprintf(b, "\n  %s:\n", entry.Product)
		fmt.Fprintf(b, "    Stock: %d units\n", entry.CurrentStock)
		fmt.Fprintf(b, "    Days of stock: %.1f\n", entry.DaysOfStock)
		fmt.Fprintf(b, "    Avg daily sales: %.2f units\n", entry.AvgDailySales)
	}
	fmt.Fprintln(b)
}
