package routes

import (
	"taller_manager/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathServices  = "/services"
	PathQuotes    = "/quotes"
	PathCosts     = "/costs"
	PathDashboard = "/dashboard"
	PathSettings  = "/settings"
	PathTransfer  = "/transfer"
)

func addTallerRoutes(
	rg *gin.RouterGroup,
	serviceHandler *handlers.ServiceHandler,
	quoteHandler *handlers.QuoteHandler,
	costHandler *handlers.CostHandler,
	dashboardHandler *handlers.DashboardHandler,
	settingsHandler *handlers.SettingsHandler,
	transferHandler *handlers.TransferHandler,
) {
	services := rg.Group(PathServices)
	{
		services.GET("", serviceHandler.ListServices)
		services.GET("/:id", serviceHandler.GetService)
		services.POST("", serviceHandler.SaveService)
		services.PUT("/:id", serviceHandler.SaveService)
		services.PATCH("/:id/status", serviceHandler.UpdateServiceStatus)
		services.PATCH("/:id/complete", serviceHandler.CompleteService)
		services.DELETE("/:id", serviceHandler.DeleteService)
		services.GET("/:id/whatsapp", serviceHandler.ServiceWhatsAppMessage)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.POST("", quoteHandler.SaveQuote)
		quotes.PUT("/:id", quoteHandler.SaveQuote)
		quotes.PATCH("/:id/accept", quoteHandler.AcceptQuote)
		quotes.PATCH("/:id/reject", quoteHandler.RejectQuote)
		quotes.DELETE("/:id", quoteHandler.DeleteQuote)
		quotes.GET("/:id/whatsapp", quoteHandler.QuoteWhatsAppMessage)
	}

	costs := rg.Group(PathCosts)
	{
		costs.GET("", costHandler.ListCosts)
		costs.POST("", costHandler.SaveCost)
		costs.PUT("/:id", costHandler.SaveCost)
		costs.DELETE("/:id", costHandler.DeleteCost)
	}

	dashboard := rg.Group(PathDashboard)
	{
		dashboard.GET("/trend", dashboardHandler.Trend)
		dashboard.GET("/movements", dashboardHandler.Movements)
		dashboard.GET("/summary", dashboardHandler.Summary)
	}

	settings := rg.Group(PathSettings)
	{
		settings.GET("", settingsHandler.GetSettings)
		settings.PUT("", settingsHandler.UpdateSettings)
		settings.POST("/reset", settingsHandler.ResetSettings)
	}

	transfer := rg.Group(PathTransfer)
	{
		transfer.GET("/export/:collection", transferHandler.Export)
		transfer.POST("/import/:collection", transferHandler.Import)
	}
}
