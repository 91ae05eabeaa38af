package routes

import (
	"sklad-backend/controllers"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupMaterialRoutes настраивает маршруты для материалов
func SetupMaterialRoutes(app *fiber.App, materialController *controllers.MaterialController) {
	// Группа маршрутов для материалов
	materials := app.Group("/api/materials", utils.AuthMiddleware)

	// GET /api/materials - список материалов
	materials.Get("/", materialController.GetMaterials)

	// POST /api/materials - создание материала
	materials.Post("/", materialController.CreateMaterial)

	// DELETE /api/materials/:id - удаление материала вместе с операциями
	materials.Delete("/:id", materialController.DeleteMaterial)

	// POST /api/materials/:id/increase - приход материала
	materials.Post("/:id/increase", materialController.IncreaseMaterial)

	// POST /api/materials/:id/decrease - расход материала
	materials.Post("/:id/decrease", materialController.DecreaseMaterial)
}
