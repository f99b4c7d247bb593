package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocklens/stocklens/pkg/domain/entities"
)

func TestRenderSummary_Text(t *testing.T) {
	revenue := decimal.NewFromFloat(1234.5)
	summary := entities.Summary{
		Records:           10,
		Products:          3,
		StartDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TotalSold:         120,
		AvgDailySold:      12,
		TotalCurrentStock: 55,
		StockoutIncidents: 2,
		TotalRevenue:      &revenue,
	}

	var buf bytes.Buffer
	if err := RenderSummary(&buf, summary, FormatText); err != nil {
		t.Fatalf("Failed to render summary: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Records:            10",
		"Products:           3",
		"Period:             2025-06-01 to 2025-06-10",
		"Stockout incidents: 2",
		"Total revenue:      1234.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderSummary_JSON(t *testing.T) {
	summary := entities.Summary{Records: 4, Products: 2}

	var buf bytes.Buffer
	if err := RenderSummary(&buf, summary, FormatJSON); err != nil {
		t.Fatalf("Failed to render summary: %v", err)
	}

	var back entities.Summary
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if back.Records != 4 || back.Products != 2 {
		t.Errorf("JSON round trip changed summary: %+v", back)
	}
}

func TestRenderSummary_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, entities.Summary{}, "yaml"); err == nil {
		t.Fatal("Expected error for unsupported format, got nil")
	}
}

func TestRenderProductStats_Text(t *testing.T) {
	price := decimal.NewFromFloat(9.99)
	stats := &entities.ProductStats{
		Product:      "haircare",
		WindowDays:   30,
		TotalSold:    150,
		AvgDailySold: 5,
		CurrentStock: 12,
		MinStock:     0,
		MaxStock:     40,
		StockoutDays: 3,
		MeanPrice:    &price,
	}

	var buf bytes.Buffer
	if err := RenderProductStats(&buf, stats, FormatText); err != nil {
		t.Fatalf("Failed to render stats: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Product Stats - haircare (last 30 days)",
		"Total sold:    150 units",
		"Stock range:   0 - 40 units",
		"Stockout days: 3",
		"Mean price:    9.99",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Revenue:") {
		t.Error("Expected absent revenue to be omitted")
	}
}

func TestRenderProductStats_NilStats(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderProductStats(&buf, nil, FormatText); err != nil {
		t.Fatalf("Failed to render nil stats: %v", err)
	}
	if !strings.Contains(buf.String(), "No records in window.") {
		t.Errorf("Expected empty-window message, got %q", buf.String())
	}
}

func TestRenderLowStock_Text(t *testing.T) {
	entries := []entities.RestockEntry{
		{Product: "haircare", CurrentStock: 4, DaysOfStock: 0.8, AvgDailySales: 5},
		{Product: "skincare", CurrentStock: 10, DaysOfStock: 3.3, AvgDailySales: 3},
	}

	var buf bytes.Buffer
	if err := RenderLowStock(&buf, entries, FormatText); err != nil {
		t.Fatalf("Failed to render low stock: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "haircare") || !strings.Contains(out, "skincare") {
		t.Errorf("Expected both products listed, got:\n%s", out)
	}
	if !strings.Contains(out, "Days of Stock") {
		t.Errorf("Expected table header, got:\n%s", out)
	}
}

func TestRenderLowStock_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLowStock(&buf, nil, FormatText); err != nil {
		t.Fatalf("Failed to render empty low stock: %v", err)
	}
	if !strings.Contains(buf.String(), "satisfactory") {
		t.Errorf("Expected satisfactory message, got %q", buf.String())
	}
}

func TestRenderRecords_Text(t *testing.T) {
	records := []entities.Record{
		{Product: "haircare", Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), StockLevel: 0, SoldUnits: 5, Stockout: true},
	}

	var buf bytes.Buffer
	if err := RenderRecords(&buf, records, FormatText); err != nil {
		t.Fatalf("Failed to render records: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "2025-06-03") || !strings.Contains(out, "true") {
		t.Errorf("Expected record row with date and stockout flag, got:\n%s", out)
	}
}

func TestRenderRecords_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRecords(&buf, nil, FormatText); err != nil {
		t.Fatalf("Failed to render empty records: %v", err)
	}
	if !strings.Contains(buf.String(), "No matching records.") {
		t.Errorf("Expected no-match message, got %q", buf.String())
	}
}
