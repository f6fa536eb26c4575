package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/lottotrack/backoffice/docs"
	v1 "github.com/lottotrack/backoffice/internal/api/handler/v1"
	"github.com/lottotrack/backoffice/internal/api/middleware"
	"github.com/lottotrack/backoffice/internal/config"
	"github.com/lottotrack/backoffice/internal/repository"
	"github.com/lottotrack/backoffice/internal/repository/dao"
	"github.com/lottotrack/backoffice/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	storeSvc := s.initStoreService(db)

	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	storeHandler := v1.NewStoreHandler(storeSvc, userSvc)
	scanHandler := s.initScanHandler(db, storeSvc, userSvc)
	reportHandler := s.initReportHandler(db, storeSvc, userSvc)
	catalogHandler := s.initCatalogHandler(db, userSvc)
	chatHandler := v1.NewChatHandler(service.NewChatService(conf.Chat), userSvc)

	s.MountHandlers(authHandler, userHandler, storeHandler, scanHandler, reportHandler, catalogHandler, chatHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	storeRepo := repository.NewStoreRepository(dao.NewStoreDAO(db))
	svc := service.NewAuthService(userRepo, storeRepo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initStoreService(db *gorm.DB) *service.StoreService {
	storeRepo := repository.NewStoreRepository(dao.NewStoreDAO(db))
	inventoryRepo := repository.NewInventoryRepository(dao.NewInventoryDAO(db))

	return service.NewStoreService(storeRepo, inventoryRepo)
}

func (s *Server) initScanHandler(db *gorm.DB, storeSvc *service.StoreService, userSvc *service.UserService) *v1.ScanHandler {
	lotteryRepo := repository.NewLotteryRepository(dao.NewLotteryDAO(db))
	inventoryRepo := repository.NewInventoryRepository(dao.NewInventoryDAO(db))
	scanRepo := repository.NewScanRepository(dao.NewScanDAO(db))
	reportRepo := repository.NewReportRepository(dao.NewReportDAO(db))
	svc := service.NewScanService(lotteryRepo, inventoryRepo, scanRepo, reportRepo)

	return v1.NewScanHandler(svc, storeSvc, userSvc)
}

func (s *Server) initReportHandler(db *gorm.DB, storeSvc *service.StoreService, userSvc *service.UserService) *v1.ReportHandler {
	reportRepo := repository.NewReportRepository(dao.NewReportDAO(db))
	svc := service.NewReportService(reportRepo)

	return v1.NewReportHandler(svc, storeSvc, userSvc)
}

func (s *Server) initCatalogHandler(db *gorm.DB, userSvc *service.UserService) *v1.CatalogHandler {
	lotteryRepo := repository.NewLotteryRepository(dao.NewLotteryDAO(db))
	svc := service.NewCatalogService(lotteryRepo)

	return v1.NewCatalogHandler(svc, userSvc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	storeHandler *v1.StoreHandler,
	scanHandler *v1.ScanHandler,
	reportHandler *v1.ReportHandler,
	catalogHandler *v1.CatalogHandler,
	chatHandler *v1.ChatHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.GET("/users/:userID", userHandler.HandleGetUser)
		protected.DELETE("/users/:userID", userHandler.HandleDeleteUser)

		protected.POST("/stores", storeHandler.HandleCreateStore)
		protected.GET("/stores", storeHandler.HandleGetStores)
		protected.PUT("/stores/:storeID", storeHandler.HandleUpdateStore)
		protected.DELETE("/stores/:storeID", storeHandler.HandleDeleteStore)
		protected.GET("/stores/:storeID/inventory", storeHandler.HandleGetInventory)
		protected.GET("/stores/:storeID/notifications", storeHandler.HandleGetNotificationSetting)
		protected.PUT("/stores/:storeID/notifications", storeHandler.HandleUpdateNotificationSetting)

		protected.POST("/scan", scanHandler.HandleScan)
		protected.GET("/scan/history/:storeID", scanHandler.HandleGetScanHistory)

		protected.GET("/reports/store/:storeID/daily", reportHandler.HandleGetDailyReport)
		protected.GET("/reports/store/:storeID/monthly", reportHandler.HandleGetMonthlyReport)

		protected.GET("/lotteries", catalogHandler.HandleGetLotteries)
		protected.POST("/admin/lotteries", catalogHandler.HandleCreateLottery)
		protected.PUT("/admin/lotteries/:lotteryID", catalogHandler.HandleUpdateLottery)
		protected.DELETE("/admin/lotteries/:lotteryID", catalogHandler.HandleDeleteLottery)

		protected.POST("/chat", chatHandler.HandleChat)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Lottery Back Office API"
	docs.SwaggerInfo.Description = "Inventory reconciliation and reporting for retail lottery stores."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
