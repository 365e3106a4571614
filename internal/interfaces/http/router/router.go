package router

import (
	"github.com/gin-gonic/gin"
	"github.com/retailops/backend/internal/infrastructure/logger"
	"github.com/retailops/backend/internal/interfaces/http/handler"
	"go.uber.org/zap"
)

// Setup builds the gin engine with middleware and report routes
func Setup(log *zap.Logger, reportHandler *handler.ReportHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	{
		reports := v1.Group("/reports")
		{
			reports.POST("", reportHandler.Create)
			reports.GET("", reportHandler.List)
			reports.GET("/:id", reportHandler.Get)
			reports.GET("/:id/download", reportHandler.Download)
		}

		v1.GET("/statistics/:type", reportHandler.Statistics)
	}

	return engine
}
