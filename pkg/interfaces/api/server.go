// Package api exposes read-only ledger queries over HTTP for the serve
// mode of the CLI. The server holds one loaded ledger snapshot; there
// are no mutation endpoints, matching the engine's single-writer model.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stocklens/stocklens/pkg/application/services"
	"github.com/stocklens/stocklens/pkg/domain/repositories"
)

// Server wraps a gin engine over the query services.
type Server struct {
	engine  *gin.Engine
	queries *services.QueryService
	restock *services.RestockService
	logger  *zap.Logger
}

// NewServer wires the router over the given ledger.
func NewServer(ledger repositories.LedgerRepository, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		engine:  gin.New(),
		queries: services.NewQueryService(ledger),
		restock: services.NewRestockService(ledger),
		logger:  logger,
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/summary", s.handleSummary)
		v1.GET("/products", s.handleProducts)
		v1.GET("/products/:product/stats", s.handleProductStats)
		v1.GET("/products/:product/stockouts", s.handleStockouts)
		v1.GET("/products/:product/promotion-impact", s.handlePromotionImpact)
		v1.GET("/products/:product/sales-by", s.handleSalesByCategory)
		v1.GET("/lowstock", s.handleLowStock)
		v1.GET("/records", s.handleSearch)
	}
}

// Run starts the HTTP server on the given address and blocks.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}
