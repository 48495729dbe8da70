package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"solar-crm/internal/controllers"
	"solar-crm/internal/repositories"
	"solar-crm/internal/services"
	"solar-crm/pkg/config"
	"solar-crm/pkg/docstore"
	"solar-crm/pkg/middleware"
	"solar-crm/pkg/service"
	appwebsocket "solar-crm/pkg/websocket"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	hub *appwebsocket.Hub,
	docstoreClient *docstore.Client,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- Репозитории ---
	clientRepo := repositories.NewClientRepository(dbConn)
	employeeRepo := repositories.NewEmployeeRepository(dbConn, logger)
	installationRepo := repositories.NewInstallationRepository(dbConn, logger)
	stageRepo := repositories.NewStageRepository(dbConn, logger)
	eventRepo := repositories.NewStageEventRepository(dbConn, logger)
	microtaskRepo := repositories.NewMicrotaskRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	visitRepo := repositories.NewVisitRepository(dbConn, logger)
	reportRepo := repositories.NewReportRepository(dbConn, logger)

	// --- Сервисы ---
	authService := services.NewAuthService(employeeRepo, cacheRepo, jwtSvc, logger, &cfg.Auth)
	clientService := services.NewClientService(clientRepo)
	employeeService := services.NewEmployeeService(employeeRepo, logger)
	installationService := services.NewInstallationService(installationRepo)
	workflowService := services.NewWorkflowService(
		stageRepo, eventRepo, installationRepo, employeeRepo,
		cacheRepo, txManager, docstoreClient, hub, logger,
	)
	stageEventService := services.NewStageEventService(eventRepo, employeeRepo, logger)
	microtaskService := services.NewMicrotaskService(microtaskRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo)
	visitService := services.NewVisitService(visitRepo)
	reportService := services.NewReportService(reportRepo, logger)

	// --- Контроллеры ---
	authController := controllers.NewAuthController(authService, logger)
	clientController := controllers.NewClientController(clientService, logger)
	employeeController := controllers.NewEmployeeController(employeeService, logger)
	installationController := controllers.NewInstallationController(installationService, logger)
	workflowController := controllers.NewWorkflowController(workflowService, stageEventService, logger)
	documentController := controllers.NewDocumentController(docstoreClient, logger)
	microtaskController := controllers.NewMicrotaskController(microtaskService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)
	visitController := controllers.NewVisitController(visitService, logger)
	reportController := controllers.NewReportController(reportService, logger)
	wsController := controllers.NewWebSocketController(hub, jwtSvc, logger)

	// --- Роутеры ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authController)
	runClientRouter(secureGroup, clientController, authMW)
	runEmployeeRouter(secureGroup, employeeController, authMW)
	runInstallationRouter(secureGroup, installationController, authMW)
	runWorkflowRouter(secureGroup, workflowController)
	runDocumentRouter(secureGroup, documentController)
	runMicrotaskRouter(secureGroup, microtaskController)
	runEquipmentRouter(secureGroup, equipmentController, authMW)
	runVisitRouter(secureGroup, visitController, authMW)
	runReportRouter(secureGroup, reportController, authMW)

	// WebSocket авторизуется токеном в query, вне общего middleware
	e.GET("/ws", wsController.ServeWs)

	logger.Info("InitRouter: Маршруты созданы")
}
