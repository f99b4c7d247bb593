package entities

import (
	"testing"
	"time"
)

func TestRecord_FieldText(t *testing.T) {
	temp := 21.5
	rec := Record{
		Product:         "haircare",
		Date:            time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StockLevel:      42,
		SoldUnits:       7.5,
		Temperature:     &temp,
		Weather:         "sunny",
		PromotionActive: true,
		Attrs: map[string]Value{
			"Price":         NumberValue(12.5),
			"Supplier name": StringValue("Acme"),
		},
	}

	tests := []struct {
		field string
		want  string
	}{
		{ColProduct, "haircare"},
		{ColDate, "2025-06-01"},
		{ColStockLevel, "42"},
		{ColSoldUnits, "7.5"},
		{ColTemperature, "21.5"},
		{ColWeather, "sunny"},
		{ColPromotion, "true"},
		{ColStockout, "false"},
		{"Price", "12.5"},
		{"Supplier name", "Acme"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := rec.FieldText(tt.field)
			if !ok {
				t.Fatalf("Expected field %q present", tt.field)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRecord_FieldTextAbsent(t *testing.T) {
	rec := Record{Product: "A", Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}

	for _, field := range []string{ColTemperature, ColWeather, "Supplier name"} {
		if _, ok := rec.FieldText(field); ok {
			t.Errorf("Expected field %q absent", field)
		}
	}
}

func TestRecord_CloneAttrs(t *testing.T) {
	rec := Record{Attrs: map[string]Value{"Price": NumberValue(5)}}

	clone := rec.CloneAttrs()
	clone["Price"] = NumberValue(99)

	if v, _ := rec.AttrNumber("Price"); v != 5 {
		t.Errorf("Expected original attrs untouched, got %f", v)
	}
}

func TestRecord_CloneAttrsNil(t *testing.T) {
	rec := Record{}
	if clone := rec.CloneAttrs(); clone != nil {
		t.Errorf("Expected nil clone for nil attrs, got %v", clone)
	}
}

func TestDay(t *testing.T) {
	got := Day(time.Date(2025, 6, 1, 14, 30, 45, 0, time.UTC))
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
