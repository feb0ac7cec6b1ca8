package routes

import (
	"log"
	"strconv"

	_ "taller_manager/docs" // This will be auto-generated
	"taller_manager/internal/adapter/http/handlers"
	repository "taller_manager/internal/adapter/persistence/repository"
	"taller_manager/internal/infrastructure/database"
	"taller_manager/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	serviceRepo := repository.NewServiceDynamoRepository(ddb)
	costRepo := repository.NewCostDynamoRepository(ddb)
	quoteRepo := repository.NewQuoteDynamoRepository(ddb)
	settingsRepo := repository.NewSettingsDynamoRepository(ddb)

	serviceUseCase := usecase.NewServiceUseCase(serviceRepo)
	costUseCase := usecase.NewCostUseCase(costRepo)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, serviceRepo)
	reportUseCase := usecase.NewReportUseCase(serviceRepo, costRepo)
	settingsUseCase := usecase.NewSettingsUseCase(settingsRepo)
	whatsappUseCase := usecase.NewWhatsAppUseCase(settingsRepo, serviceRepo, quoteRepo)
	transferUseCase := usecase.NewTransferUseCase(serviceRepo, costRepo, quoteRepo)

	serviceHandler := handlers.NewServiceHandler(serviceUseCase, whatsappUseCase)
	quoteHandler := handlers.NewQuoteHandler(quoteUseCase, whatsappUseCase)
	costHandler := handlers.NewCostHandler(costUseCase)
	dashboardHandler := handlers.NewDashboardHandler(reportUseCase)
	settingsHandler := handlers.NewSettingsHandler(settingsUseCase)
	transferHandler := handlers.NewTransferHandler(transferUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addTallerRoutes(v1, serviceHandler, quoteHandler, costHandler, dashboardHandler, settingsHandler, transferHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
