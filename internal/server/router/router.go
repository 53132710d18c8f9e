package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/access"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
)

// RoleHeader is the request header carrying the upstream auth proxy's role
// claim. A missing or unknown value resolves to the read-only role.
const RoleHeader = "X-Stockroom-Role"

// New wires the Gin engine with required routes and middlewares.
func New(inventoryHandler *handlers.InventoryHandler, issuanceHandler *handlers.IssuanceHandler, reportHandler *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(sessionMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/categories", inventoryHandler.ListCategories)
		api.POST("/categories", inventoryHandler.AddCategory)
		api.DELETE("/categories/:id", inventoryHandler.DeleteCategory)

		api.GET("/items", inventoryHandler.ListItems)
		api.POST("/items", inventoryHandler.AddItem)
		api.GET("/items/:id", inventoryHandler.GetItem)
		api.PATCH("/items/:id", inventoryHandler.UpdateItem)
		api.DELETE("/items/:id", inventoryHandler.DeleteItem)
		api.POST("/items/:id/issue", issuanceHandler.Issue)
		api.POST("/items/:id/restock", issuanceHandler.Restock)

		api.GET("/issuances", issuanceHandler.ListRecords)
		api.GET("/issuances/recent", issuanceHandler.RecentMovements)
		api.PATCH("/issuances/:id", issuanceHandler.CorrectRecord)
		api.DELETE("/issuances/:id", issuanceHandler.DeleteRecord)

		api.GET("/reports/stock", reportHandler.StockSummary)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// sessionMiddleware resolves the role claim into an explicit session value
// for the handlers; no ambient role state is consulted downstream.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(handlers.SessionKey, access.NewSession(c.GetHeader(RoleHeader)))
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
