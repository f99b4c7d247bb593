// Package insight is an HTTP adapter for the external analysis service
// implementing the forecast, anomaly, and sentiment collaborator
// contracts. The engine treats the service as an opaque black box; this
// client only decodes its payloads into domain value objects.
package insight

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/stocklens/stocklens/pkg/domain/collaborators"
	"github.com/stocklens/stocklens/pkg/domain/entities"
)

const defaultTimeout = 10 * time.Second

// Client talks to the insight service over HTTP.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// Verify interface compliance
var (
	_ collaborators.ForecastProvider  = (*Client)(nil)
	_ collaborators.AnomalyDetector   = (*Client)(nil)
	_ collaborators.SentimentAnalyzer = (*Client)(nil)
)

// NewClient creates an insight client against the given base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
		logger: logger,
	}
}

type forecastPointDTO struct {
	Date            string  `json:"date"`
	PredictedDemand float64 `json:"predicted_demand"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
	Method          string  `json:"method"`
}

type anomalyDTO struct {
	Date       string  `json:"date"`
	Product    string  `json:"product"`
	Type       string  `json:"type"`
	Severity   string  `json:"severity"`
	StockLevel int64   `json:"stock_level"`
	Message    string  `json:"message"`
}

type sentimentDTO struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Forecast fetches a per-day demand forecast over the horizon window.
func (c *Client) Forecast(ctx context.Context, product entities.ProductID, horizonDays int, method string) ([]collaborators.ForecastPoint, error) {
	var payload []forecastPointDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("product", string(product)).
		SetQueryParam("horizon", strconv.Itoa(horizonDays)).
		SetQueryParam("method", method).
		SetResult(&payload).
		Get("/v1/forecast")
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("forecast request returned %s", resp.Status())
	}

	points := make([]collaborators.ForecastPoint, 0, len(payload))
	for _, dto := range payload {
		date, err := time.Parse(entities.DateLayout, dto.Date)
		if err != nil {
			return nil, fmt.Errorf("forecast payload has invalid date %q: %w", dto.Date, err)
		}
		points = append(points, collaborators.ForecastPoint{
			Date:            date,
			PredictedDemand: dto.PredictedDemand,
			LowerBound:      dto.LowerBound,
			UpperBound:      dto.UpperBound,
			Method:          dto.Method,
		})
	}
	return points, nil
}

// Anomalies fetches detected stock anomalies, optionally filtered to
// one product. Entries with unknown severity labels are skipped rather
// than failing the whole result.
func (c *Client) Anomalies(ctx context.Context, product entities.ProductID) ([]collaborators.Anomaly, error) {
	var payload []anomalyDTO
	req := c.http.R().SetContext(ctx).SetResult(&payload)
	if product != "" {
		req.SetQueryParam("product", string(product))
	}
	resp, err := req.Get("/v1/anomalies")
	if err != nil {
		return nil, fmt.Errorf("anomaly request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("anomaly request returned %s", resp.Status())
	}

	anomalies := make([]collaborators.Anomaly, 0, len(payload))
	for _, dto := range payload {
		severity, err := collaborators.ParseSeverity(dto.Severity)
		if err != nil {
			c.logger.Warn("skipping anomaly with unknown severity",
				zap.String("product", dto.Product),
				zap.String("severity", dto.Severity))
			continue
		}
		date, err := time.Parse(entities.DateLayout, dto.Date)
		if err != nil {
			return nil, fmt.Errorf("anomaly payload has invalid date %q: %w", dto.Date, err)
		}
		anomalies = append(anomalies, collaborators.Anomaly{
			Date:       date,
			Product:    entities.ProductID(dto.Product),
			Type:       dto.Type,
			Severity:   severity,
			StockLevel: dto.StockLevel,
			Message:    dto.Message,
		})
	}
	return anomalies, nil
}

// Sentiment fetches a market sentiment score for a product. A 404 from
// the service means no sentiment is available and yields a nil result.
func (c *Client) Sentiment(ctx context.Context, product entities.ProductID) (*collaborators.Sentiment, error) {
	var payload sentimentDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("product", string(product)).
		SetResult(&payload).
		Get("/v1/sentiment")
	if err != nil {
		return nil, fmt.Errorf("sentiment request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sentiment request returned %s", resp.Status())
	}

	return &collaborators.Sentiment{Label: payload.Label, Score: payload.Score}, nil
}
