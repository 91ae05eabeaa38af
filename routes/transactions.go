package routes

import (
	"sklad-backend/controllers"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupTransactionRoutes настраивает маршруты для операций
func SetupTransactionRoutes(app *fiber.App, transactionController *controllers.TransactionController) {
	// Группа маршрутов для операций
	transactions := app.Group("/api/transactions", utils.AuthMiddleware)

	// GET /api/transactions - список операций, начиная с последних
	transactions.Get("/", transactionController.GetTransactions)
}
