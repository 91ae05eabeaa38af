package routes

import (
	"sklad-backend/controllers"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupLogRoutes настраивает маршруты для журнала действий
func SetupLogRoutes(app *fiber.App, logController *controllers.LogController) {
	// Журнал доступен только администраторам
	logs := app.Group("/api/logs", utils.AuthMiddleware, utils.RequireAdmin)

	// GET /api/logs - последние записи журнала
	logs.Get("/", logController.GetLogs)
}
