package controllers

import (
	"errors"
	"strconv"

	"sklad-backend/models"
	"sklad-backend/services"

	"github.com/gofiber/fiber/v2"
)

// MaterialController контроллер для управления материалами
type MaterialController struct {
	Catalog *services.CatalogService
	Ledger  *services.LedgerService
}

// NewMaterialController создает новый экземпляр MaterialController
func NewMaterialController(catalog *services.CatalogService, ledger *services.LedgerService) *MaterialController {
	return &MaterialController{Catalog: catalog, Ledger: ledger}
}

// CreateMaterialRequest структура запроса создания материала
type CreateMaterialRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Unit        string `json:"unit" validate:"required,max=50"`
	Quantity    int    `json:"quantity" validate:"min=0"`
	MinQuantity int    `json:"min_quantity" validate:"min=0"`
	CategoryID  *uint  `json:"category_id"`
}

// AmountRequest структура запроса прихода или расхода
type AmountRequest struct {
	Amount int `json:"amount" validate:"required,min=1"`
}

// MaterialResponse структура ответа с материалом
type MaterialResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Material *models.Material `json:"material,omitempty"`
}

// MaterialsResponse структура ответа со списком материалов
type MaterialsResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Materials []models.Material `json:"materials,omitempty"`
}

// GetMaterials возвращает список материалов
func (mc *MaterialController) GetMaterials(c *fiber.Ctx) error {
	materials, err := mc.Catalog.ListMaterials()
	if err != nil {
		return c.Status(500).JSON(MaterialsResponse{
			Success: false,
			Message: "Ошибка при получении материалов",
		})
	}

	return c.JSON(MaterialsResponse{
		Success:   true,
		Message:   "Материалы получены",
		Materials: materials,
	})
}

// CreateMaterial создает новый материал
func (mc *MaterialController) CreateMaterial(c *fiber.Ctx) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.Status(401).JSON(MaterialResponse{
			Success: false,
			Message: "Неавторизованный доступ",
		})
	}

	var req CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(MaterialResponse{
			Success: false,
			Message: "Неверный формат данных",
		})
	}

	materialID, err := mc.Catalog.AddMaterial(userID, req.Name, req.Unit, req.Quantity, req.MinQuantity, req.CategoryID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(MaterialResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	var material models.Material
	if err := mc.Catalog.FindMaterial(materialID, &material); err != nil {
		return c.Status(500).JSON(MaterialResponse{
			Success: false,
			Message: "Ошибка при получении материала",
		})
	}

	return c.Status(201).JSON(MaterialResponse{
		Success:  true,
		Message:  "Материал успешно создан",
		Material: &material,
	})
}

// DeleteMaterial удаляет материал вместе с его операциями
func (mc *MaterialController) DeleteMaterial(c *fiber.Ctx) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.Status(401).JSON(MaterialResponse{
			Success: false,
			Message: "Неавторизованный доступ",
		})
	}

	materialID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(MaterialResponse{
			Success: false,
			Message: "Неверный ID материала",
		})
	}

	if err := mc.Catalog.DeleteMaterial(userID, materialID); err != nil {
		return c.Status(statusForError(err)).JSON(MaterialResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	return c.JSON(MaterialResponse{
		Success: true,
		Message: "Материал удален",
	})
}

// IncreaseMaterial регистрирует приход материала
func (mc *MaterialController) IncreaseMaterial(c *fiber.Ctx) error {
	return mc.applyAmount(c, mc.Ledger.Increase, "Приход зарегистрирован")
}

// DecreaseMaterial регистрирует расход материала
func (mc *MaterialController) DecreaseMaterial(c *fiber.Ctx) error {
	return mc.applyAmount(c, mc.Ledger.Decrease, "Расход зарегистрирован")
}

// applyAmount выполняет операцию прихода или расхода
func (mc *MaterialController) applyAmount(c *fiber.Ctx, operation func(uint, uint, int) error, message string) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.Status(401).JSON(MaterialResponse{
			Success: false,
			Message: "Неавторизованный доступ",
		})
	}

	materialID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(MaterialResponse{
			Success: false,
			Message: "Неверный ID материала",
		})
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(MaterialResponse{
			Success: false,
			Message: "Неверный формат данных",
		})
	}

	if err := operation(userID, materialID, req.Amount); err != nil {
		return c.Status(statusForError(err)).JSON(MaterialResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	return c.JSON(MaterialResponse{
		Success: true,
		Message: message,
	})
}

// Вспомогательные функции контроллеров

// getUserIDFromContext возвращает ID пользователя, сохраненный AuthMiddleware
func getUserIDFromContext(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return 0, errors.New("user not authenticated")
	}
	return userID, nil
}

// parseIDParam разбирает числовой параметр пути
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// statusForError сопоставляет ошибку бизнес-логики с HTTP статусом
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrEmptyName):
		return 400
	case errors.Is(err, services.ErrMaterialNotFound), errors.Is(err, services.ErrCategoryNotFound):
		return 404
	case errors.Is(err, services.ErrInsufficientStock), errors.Is(err, services.ErrCategoryNotEmpty):
		return 409
	default:
		return 500
	}
}
