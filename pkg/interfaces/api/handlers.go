package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stocklens/stocklens/pkg/domain/entities"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.queries.Summary())
}

func (s *Server) handleProducts(c *gin.Context) {
	products := s.queries.Products()
	if products == nil {
		products = []entities.ProductID{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) handleProductStats(c *gin.Context) {
	product := entities.ProductID(c.Param("product"))
	days := queryInt(c, "days", 30)

	stats := s.queries.ProductStats(product, days)
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no records in window"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleStockouts(c *gin.Context) {
	product := entities.ProductID(c.Param("product"))
	days := queryInt(c, "days", 90)

	stockouts := s.queries.StockoutHistory(product, days)
	if stockouts == nil {
		stockouts = []entities.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"stockouts": stockouts})
}

func (s *Server) handlePromotionImpact(c *gin.Context) {
	product := entities.ProductID(c.Param("product"))
	days := queryInt(c, "days", 90)

	impact := s.queries.PromotionImpact(product, days)
	if impact == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "promotion impact undefined for this window"})
		return
	}
	c.JSON(http.StatusOK, impact)
}

func (s *Server) handleSalesByCategory(c *gin.Context) {
	product := entities.ProductID(c.Param("product"))
	field := c.DefaultQuery("field", entities.ColWeather)
	days := queryInt(c, "days", 90)

	groups, ok := s.queries.SalesByCategory(product, field, days)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "category field not in schema"})
		return
	}
	if groups == nil {
		groups = []entities.CategoryStats{}
	}
	c.JSON(http.StatusOK, gin.H{"field": field, "groups": groups})
}

func (s *Server) handleLowStock(c *gin.Context) {
	threshold := queryInt(c, "threshold", 7)

	entries := s.restock.LowStock(threshold)
	if entries == nil {
		entries = []entities.RestockEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// handleSearch maps every query parameter to a field filter;
// multi-valued parameters become membership filters. Unknown fields
// are ignored by the query layer.
func (s *Server) handleSearch(c *gin.Context) {
	filters := make(map[string][]string)
	for field, values := range c.Request.URL.Query() {
		filters[field] = values
	}

	records := s.queries.Search(filters)
	if records == nil {
		records = []entities.Record{}
	}
	s.logger.Debug("search served", zap.Int("filters", len(filters)), zap.Int("matches", len(records)))
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
