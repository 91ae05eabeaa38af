package controllers

import (
	"sklad-backend/models"
	"sklad-backend/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryController контроллер для управления категориями
type CategoryController struct {
	Catalog *services.CatalogService
}

// NewCategoryController создает новый экземпляр CategoryController
func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{Catalog: catalog}
}

// CreateCategoryRequest структура запроса создания категории
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// CategoryResponse структура ответа с категорией
type CategoryResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	CategoryID uint   `json:"category_id,omitempty"`
}

// CategoriesResponse структура ответа со списком категорий
type CategoriesResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Categories []models.Category `json:"categories,omitempty"`
}

// GetCategories возвращает список категорий
func (cc *CategoryController) GetCategories(c *fiber.Ctx) error {
	categories, err := cc.Catalog.ListCategories()
	if err != nil {
		return c.Status(500).JSON(CategoriesResponse{
			Success: false,
			Message: "Ошибка при получении категорий",
		})
	}

	return c.JSON(CategoriesResponse{
		Success:    true,
		Message:    "Категории получены",
		Categories: categories,
	})
}

// CreateCategory создает новую категорию
func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.Status(401).JSON(CategoryResponse{
			Success: false,
			Message: "Неавторизованный доступ",
		})
	}

	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(CategoryResponse{
			Success: false,
			Message: "Неверный формат данных",
		})
	}

	categoryID, err := cc.Catalog.AddCategory(userID, req.Name)
	if err != nil {
		return c.Status(statusForError(err)).JSON(CategoryResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	return c.Status(201).JSON(CategoryResponse{
		Success:    true,
		Message:    "Категория успешно создана",
		CategoryID: categoryID,
	})
}

// DeleteCategory удаляет категорию, если она пуста
func (cc *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.Status(401).JSON(CategoryResponse{
			Success: false,
			Message: "Неавторизованный доступ",
		})
	}

	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(CategoryResponse{
			Success: false,
			Message: "Неверный ID категории",
		})
	}

	if err := cc.Catalog.DeleteCategory(userID, categoryID); err != nil {
		return c.Status(statusForError(err)).JSON(CategoryResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	return c.JSON(CategoryResponse{
		Success: true,
		Message: "Категория удалена",
	})
}
