package insight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stocklens/stocklens/pkg/domain/collaborators"
)

func TestClient_Forecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("product"); got != "haircare" {
			t.Errorf("Expected product haircare, got %q", got)
		}
		if got := r.URL.Query().Get("horizon"); got != "14" {
			t.Errorf("Expected horizon 14, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2025-06-10","predicted_demand":12.5,"lower_bound":10,"upper_bound":15,"method":"moving_average"},
			{"date":"2025-06-11","predicted_demand":13,"lower_bound":11,"upper_bound":16,"method":"moving_average"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	points, err := client.Forecast(context.Background(), "haircare", 14, "moving_average")
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(points))
	}
	if points[0].PredictedDemand != 12.5 {
		t.Errorf("Expected predicted demand 12.5, got %f", points[0].PredictedDemand)
	}
	if points[1].Date.Format("2006-01-02") != "2025-06-11" {
		t.Errorf("Expected second point on 2025-06-11, got %v", points[1].Date)
	}
}

func TestClient_ForecastServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, nil).Forecast(context.Background(), "haircare", 14, ""); err == nil {
		t.Fatal("Expected error for 500 response, got nil")
	}
}

func TestClient_AnomaliesSkipsUnknownSeverity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2025-06-10","product":"haircare","type":"sudden_drop","severity":"critical","stock_level":0,"message":"stock exhausted"},
			{"date":"2025-06-11","product":"haircare","type":"sudden_drop","severity":"apocalyptic","stock_level":1,"message":"bad label"},
			{"date":"2025-06-12","product":"skincare","type":"overstock","severity":"warning","stock_level":900,"message":"slow mover"}
		]`))
	}))
	defer server.Close()

	anomalies, err := NewClient(server.URL, nil).Anomalies(context.Background(), "")
	if err != nil {
		t.Fatalf("Anomalies failed: %v", err)
	}

	if len(anomalies) != 2 {
		t.Fatalf("Expected unknown severity skipped, got %d anomalies", len(anomalies))
	}
	if anomalies[0].Severity != collaborators.SeverityCritical {
		t.Errorf("Expected first anomaly critical, got %v", anomalies[0].Severity)
	}
	if anomalies[1].Product != "skincare" {
		t.Errorf("Expected second anomaly for skincare, got %s", anomalies[1].Product)
	}
}

func TestClient_AnomaliesProductFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("product"); got != "haircare" {
			t.Errorf("Expected product filter haircare, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, nil).Anomalies(context.Background(), "haircare"); err != nil {
		t.Fatalf("Anomalies failed: %v", err)
	}
}

func TestClient_Sentiment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"label":"positive","score":0.82}`))
	}))
	defer server.Close()

	sentiment, err := NewClient(server.URL, nil).Sentiment(context.Background(), "haircare")
	if err != nil {
		t.Fatalf("Sentiment failed: %v", err)
	}
	if sentiment == nil {
		t.Fatal("Expected sentiment, got nil")
	}
	if sentiment.Label != "positive" || sentiment.Score != 0.82 {
		t.Errorf("Unexpected sentiment %+v", sentiment)
	}
}

func TestClient_SentimentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	sentiment, err := NewClient(server.URL, nil).Sentiment(context.Background(), "haircare")
	if err != nil {
		t.Fatalf("Expected 404 to be treated as no sentiment, got error: %v", err)
	}
	if sentiment != nil {
		t.Errorf("Expected nil sentiment, got %+v", sentiment)
	}
}
