package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rjnotas/notas-api/internal/config"
	"github.com/rjnotas/notas-api/internal/presentation/http/handler"
	"github.com/rjnotas/notas-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Invoice  *handler.InvoiceHandler
	Settings *handler.SettingsHandler
	Export   *handler.ExportHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		invoices := v1.Group("/invoices")
		{
			invoices.GET("", h.Invoice.List)
			invoices.POST("", h.Invoice.Create)
			invoices.GET("/active", h.Invoice.Active)
			invoices.GET("/:id", h.Invoice.Get)
			invoices.PUT("/:id", h.Invoice.Update)
			invoices.DELETE("/:id", h.Invoice.Delete)
			invoices.POST("/:id/select", h.Invoice.Select)
			invoices.GET("/:id/export/jpeg", h.Export.JPEG)
			invoices.GET("/:id/export/pdf", h.Export.PDF)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("/company-name", h.Settings.GetCompanyName)
			settings.PUT("/company-name", h.Settings.UpdateCompanyName)
			settings.GET("/logo", h.Settings.GetLogo)
			settings.PUT("/logo", h.Settings.UpdateLogo)
			settings.DELETE("/logo", h.Settings.DeleteLogo)
		}
	}

	return router
}
