package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/example/snackmarket/pkg/config"
	"github.com/example/snackmarket/pkg/market"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Server is the HTTP surface of the marketplace. Authentication happens
// upstream; the identity middleware trusts the forwarded headers.
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *gin.Engine
	market *market.Service
	users  market.UserStore
}

func NewServer(cfg *config.Config, logger *zap.Logger, svc *market.Service, users market.UserStore) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
		market: svc,
		users:  users,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/api/v1")

	// The catalog is browsable without signing in.
	v1.GET("/products", s.listProducts)

	auth := v1.Group("")
	auth.Use(s.identityMiddleware())
	{
		auth.POST("/products", s.createProduct)
		auth.PUT("/products/:id", s.updateProduct)
		auth.DELETE("/products/:id", s.deleteProduct)

		auth.POST("/orders", s.createOrder)
		auth.GET("/orders", s.listOrders)
		auth.PUT("/orders/:id/status", s.updateOrderStatus)
		auth.PUT("/orders/:id/seller-status", s.updateOrderStatus)

		auth.GET("/seller/products", s.ownProducts)
		auth.GET("/seller/notifications", s.unreadNotifications)
		auth.GET("/admin/orders/:id/audit", s.orderAudit)

		auth.GET("/me", s.profile)
		auth.PUT("/me", s.updateProfile)
	}

	// Swagger
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("API server starting", zap.String("address", addr))
	return s.router.Run(addr)
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
