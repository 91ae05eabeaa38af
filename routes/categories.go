package routes

import (
	"sklad-backend/controllers"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes настраивает маршруты для категорий
func SetupCategoryRoutes(app *fiber.App, categoryController *controllers.CategoryController) {
	// Группа маршрутов для категорий
	categories := app.Group("/api/categories", utils.AuthMiddleware)

	// GET /api/categories - список категорий
	categories.Get("/", categoryController.GetCategories)

	// POST /api/categories - создание категории
	categories.Post("/", categoryController.CreateCategory)

	// DELETE /api/categories/:id - удаление пустой категории
	categories.Delete("/:id", categoryController.DeleteCategory)
}
