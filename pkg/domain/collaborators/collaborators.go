// Package collaborators defines the contracts of the external analysis
// services the engine's consumers draw on: demand forecasting, stock
// anomaly detection, and market sentiment scoring. The engine never
// calls outward through these; report and API layers consume them as
// opaque black boxes and only sort or filter their results.
package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stocklens/stocklens/pkg/domain/entities"
)

// Severity classifies an anomaly.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityDanger
	SeverityCritical
)

// String method for Severity enum
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityDanger:
		return "danger"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a severity label to its enum value.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "warning":
		return SeverityWarning, nil
	case "danger":
		return SeverityDanger, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityWarning, fmt.Errorf("invalid severity: %s (expected: critical, danger, or warning)", s)
	}
}

// MarshalJSON renders the severity label.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ForecastPoint is one day of a demand forecast horizon.
type ForecastPoint struct {
	Date            time.Time `json:"date"`
	PredictedDemand float64   `json:"predicted_demand"`
	LowerBound      float64   `json:"lower_bound"`
	UpperBound      float64   `json:"upper_bound"`
	Method          string    `json:"method"`
}

// Anomaly is one detected stock irregularity.
type Anomaly struct {
	Date       time.Time          `json:"date"`
	Product    entities.ProductID `json:"product"`
	Type       string             `json:"type"`
	Severity   Severity           `json:"severity"`
	StockLevel int64              `json:"stock_level"`
	Message    string             `json:"message"`
}

// Sentiment is a market sentiment classification for one product.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ForecastProvider produces a per-day demand forecast over a horizon.
type ForecastProvider interface {
	Forecast(ctx context.Context, product entities.ProductID, horizonDays int, method string) ([]ForecastPoint, error)
}

// AnomalyDetector returns detected anomalies, optionally filtered to
// one product (empty product means all).
type AnomalyDetector interface {
	Anomalies(ctx context.Context, product entities.ProductID) ([]Anomaly, error)
}

// SentimentAnalyzer scores market sentiment for a product. A nil
// result means no sentiment is available, which is not an error.
type SentimentAnalyzer interface {
	Sentiment(ctx context.Context, product entities.ProductID) (*Sentiment, error)
}

// SortAnomalies orders anomalies most severe first, then by ascending
// date within each severity.
func SortAnomalies(anomalies []Anomaly) {
	sort.SliceStable(anomalies, func(i, j int) bool {
		if anomalies[i].Severity != anomalies[j].Severity {
			return anomalies[i].Severity > anomalies[j].Severity
		}
		return anomalies[i].Date.Before(anomalies[j].Date)
	})
}
