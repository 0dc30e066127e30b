package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей: репозитории, сервисы,
// контроллеры и маршруты. Подключение к БД передаётся параметром и
// нигде не хранится глобально.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")

	// --- Репозитории ---
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	teamRepo := repositories.NewTeamRepository(dbConn)
	categoryRepo := repositories.NewCategoryRepository(dbConn)
	workCenterRepo := repositories.NewWorkCenterRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn)
	worksheetRepo := repositories.NewWorksheetRepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn)

	// --- Сервисы ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg.Auth.BcryptCost, cfg.Auth.ResetTokenTTL, logger)
	userService := services.NewUserService(userRepo, teamRepo, cfg.Auth.BcryptCost)
	teamService := services.NewTeamService(teamRepo, userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	workCenterService := services.NewWorkCenterService(workCenterRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo, requestRepo)
	requestService := services.NewRequestService(requestRepo, equipmentRepo, userRepo, worksheetRepo, notificationRepo, txManager, logger)
	worksheetService := services.NewWorksheetService(worksheetRepo, requestRepo, dbConn)
	notificationService := services.NewNotificationService(notificationRepo)
	dashboardService := services.NewDashboardService(dashboardRepo)

	// --- Контроллеры ---
	authCtrl := controllers.NewAuthController(authService, jwtSvc, cfg.Cookie, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	teamCtrl := controllers.NewTeamController(teamService, logger)
	categoryCtrl := controllers.NewCategoryController(categoryService, logger)
	workCenterCtrl := controllers.NewWorkCenterController(workCenterService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	requestCtrl := controllers.NewRequestController(requestService, logger)
	worksheetCtrl := controllers.NewWorksheetController(worksheetService, logger)
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)

	// --- Маршруты ---
	authMW := middleware.NewAuthMiddleware(jwtSvc, userRepo, logger)
	secure := api.Group("", authMW.Authenticate)

	runAuthRouter(api, authCtrl, authMW)
	runUserRouter(secure, userCtrl, authMW)
	runTeamRouter(secure, teamCtrl, authMW)
	runCategoryRouter(secure, categoryCtrl, authMW)
	runWorkCenterRouter(secure, workCenterCtrl, authMW)
	runEquipmentRouter(secure, equipmentCtrl, authMW)
	runRequestRouter(secure, requestCtrl, worksheetCtrl, authMW)
	runWorksheetRouter(secure, worksheetCtrl)
	runNotificationRouter(secure, notificationCtrl)
	runDashboardRouter(secure, dashboardCtrl, authMW)

	logger.Info("Маршруты зарегистрированы")
}
