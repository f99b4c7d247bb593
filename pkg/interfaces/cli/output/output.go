package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/stocklens/stocklens/pkg/domain/entities"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// RenderSummary writes store-wide totals in the requested format.
func RenderSummary(w io.Writer, summary entities.Summary, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		fmt.Fprintf(w, "Ledger Summary\n")
		fmt.Fprintf(w, "==============\n\n")
		fmt.Fprintf(w, "Records:            %d\n", summary.Records)
		fmt.Fprintf(w, "Products:           %d\n", summary.Products)
		if summary.Records > 0 {
			fmt.Fprintf(w, "Period:             %s to %s\n",
				summary.StartDate.Format(entities.DateLayout),
				summary.EndDate.Format(entities.DateLayout))
		}
		fmt.Fprintf(w, "Total sold:         %.0f units\n", summary.TotalSold)
		fmt.Fprintf(w, "Avg daily sold:     %.2f units\n", summary.AvgDailySold)
		fmt.Fprintf(w, "Total stock:        %d units\n", summary.TotalCurrentStock)
		fmt.Fprintf(w, "Stockout incidents: %d\n", summary.StockoutIncidents)
		if summary.TotalRevenue != nil {
			fmt.Fprintf(w, "Total revenue:      %s\n", summary.TotalRevenue.StringFixed(2))
		}
		if summary.TotalProduced != nil {
			fmt.Fprintf(w, "Total produced:     %.0f units\n", *summary.TotalProduced)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderProductStats writes one product's window statistics.
func RenderProductStats(w io.Writer, stats *entities.ProductStats, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, stats)
	case FormatText:
		if stats == nil {
			fmt.Fprintln(w, "No records in window.")
			return nil
		}
		fmt.Fprintf(w, "Product Stats - %s (last %d days)\n", stats.Product, stats.WindowDays)
		fmt.Fprintf(w, "=================================\n\n")
		fmt.Fprintf(w, "Total sold:    %.0f units\n", stats.TotalSold)
		fmt.Fprintf(w, "Avg/day:       %.2f units\n", stats.AvgDailySold)
		fmt.Fprintf(w, "Current stock: %d units\n", stats.CurrentStock)
		fmt.Fprintf(w, "Stock range:   %d - %d units\n", stats.MinStock, stats.MaxStock)
		fmt.Fprintf(w, "Stockout days: %d\n", stats.StockoutDays)
		if stats.TotalRevenue != nil {
			fmt.Fprintf(w, "Revenue:       %s\n", stats.TotalRevenue.StringFixed(2))
		}
		if stats.MeanPrice != nil {
			fmt.Fprintf(w, "Mean price:    %s\n", stats.MeanPrice.StringFixed(2))
		}
		if stats.TotalProduced != nil {
			fmt.Fprintf(w, "Produced:      %.0f units\n", *stats.TotalProduced)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderLowStock writes the restock advisory table, most urgent first.
func RenderLowStock(w io.Writer, entries []entities.RestockEntry, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatText:
		if len(entries) == 0 {
			fmt.Fprintln(w, "All stock levels are satisfactory.")
			return nil
		}
		fmt.Fprintf(w, "%-25s %-14s %-14s %-14s\n", "Product", "Stock", "Days of Stock", "Avg Sales/Day")
		fmt.Fprintf(w, "%-25s %-14s %-14s %-14s\n", "-------------------------", "--------------", "--------------", "--------------")
		for _, entry := range entries {
			fmt.Fprintf(w, "%-25s %-14d %-14.1f %-14.2f\n",
				entry.Product, entry.CurrentStock, entry.DaysOfStock, entry.AvgDailySales)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderRecords writes a filtered record set.
func RenderRecords(w io.Writer, records []entities.Record, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatText:
		if len(records) == 0 {
			fmt.Fprintln(w, "No matching records.")
			return nil
		}
		fmt.Fprintf(w, "%-12s %-25s %-10s %-10s %-9s\n", "Date", "Product", "Stock", "Sold", "Stockout")
		fmt.Fprintf(w, "%-12s %-25s %-10s %-10s %-9s\n", "------------", "-------------------------", "----------", "----------", "---------")
		for _, rec := range records {
			fmt.Fprintf(w, "%-12s %-25s %-10d %-10.1f %-9t\n",
				rec.Date.Format(entities.DateLayout), rec.Product, rec.StockLevel, rec.SoldUnits, rec.Stockout)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
