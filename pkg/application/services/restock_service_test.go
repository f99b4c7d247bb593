package services

import (
	"testing"
)

func TestRestockService_LowStock(t *testing.T) {
	// A sells 10/day with 20 in stock (2 days), B sells 2/day with 30
	// in stock (15 days), C sells 4/day with 10 in stock (2.5 days).
	restock := NewRestockService(newTestLedger(t, []testRow{
		{product: "A", date: day(1), stock: "30", sold: "10"},
		{product: "A", date: day(2), stock: "20", sold: "10"},
		{product: "B", date: day(1), stock: "32", sold: "2"},
		{product: "B", date: day(2), stock: "30", sold: "2"},
		{product: "C", date: day(1), stock: "14", sold: "4"},
		{product: "C", date: day(2), stock: "10", sold: "4"},
	}))

	entries := restock.LowStock(7)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 flagged products, got %d", len(entries))
	}

	// Ascending by days of stock: A (2.0) before C (2.5).
	if entries[0].Product != "A" || entries[1].Product != "C" {
		t.Fatalf("Expected [A C], got %v", entries)
	}
	if entries[0].DaysOfStock != 2.0 {
		t.Errorf("Expected 2.0 days of stock for A, got %f", entries[0].DaysOfStock)
	}
	if entries[1].DaysOfStock != 2.5 {
		t.Errorf("Expected 2.5 days of stock for C, got %f", entries[1].DaysOfStock)
	}
	if entries[0].AvgDailySales != 10 {
		t.Errorf("Expected avg daily sales 10 for A, got %f", entries[0].AvgDailySales)
	}
}

func TestRestockService_ZeroSalesExcluded(t *testing.T) {
	// C has stock but zero sales: infinite runway, never flagged.
	restock := NewRestockService(newTestLedger(t, []testRow{
		{product: "C", date: day(1), stock: "100", sold: "0"},
		{product: "C", date: day(2), stock: "100", sold: "0"},
	}))

	if entries := restock.LowStock(7); len(entries) != 0 {
		t.Errorf("Expected zero-sales product excluded, got %v", entries)
	}
}

func TestRestockService_ThresholdBoundary(t *testing.T) {
	// Exactly at the threshold is not below it.
	restock := NewRestockService(newTestLedger(t, []testRow{
		{product: "A", date: day(1), stock: "70", sold: "10"},
	}))

	if entries := restock.LowStock(7); len(entries) != 0 {
		t.Errorf("Expected product at exactly 7.0 days excluded, got %v", entries)
	}
	if entries := restock.LowStock(8); len(entries) != 1 {
		t.Errorf("Expected product flagged below an 8-day threshold, got %v", entries)
	}
}

func TestRestockService_DefaultThreshold(t *testing.T) {
	restock := NewRestockService(newTestLedger(t, []testRow{
		{product: "A", date: day(1), stock: "5", sold: "10"},
	}))

	if entries := restock.LowStock(0); len(entries) != 1 {
		t.Errorf("Expected default threshold to apply, got %v", entries)
	}
}

func TestRestockService_Rounding(t *testing.T) {
	// 10 in stock at 3/day = 3.333... days, reported as 3.3.
	restock := NewRestockService(newTestLedger(t, []testRow{
		{product: "A", date: day(1), stock: "10", sold: "3"},
	}))

	entries := restock.LowStock(7)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].DaysOfStock != 3.3 {
		t.Errorf("Expected days of stock rounded to 3.3, got %f", entries[0].DaysOfStock)
	}
	if entries[0].AvgDailySales != 3 {
		t.Errorf("Expected avg daily sales 3, got %f", entries[0].AvgDailySales)
	}
}
