package controllers

import (
	"sklad-backend/models"
	"sklad-backend/services"

	"github.com/gofiber/fiber/v2"
)

// TransactionController контроллер для просмотра операций
type TransactionController struct {
	Catalog *services.CatalogService
}

// NewTransactionController создает новый экземпляр TransactionController
func NewTransactionController(catalog *services.CatalogService) *TransactionController {
	return &TransactionController{Catalog: catalog}
}

// TransactionsResponse структура ответа со списком операций
type TransactionsResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Transactions []models.Transaction `json:"transactions,omitempty"`
}

// GetTransactions возвращает операции, начиная с последних
func (tc *TransactionController) GetTransactions(c *fiber.Ctx) error {
	transactions, err := tc.Catalog.ListTransactions()
	if err != nil {
		return c.Status(500).JSON(TransactionsResponse{
			Success: false,
			Message: "Ошибка при получении операций",
		})
	}

	return c.JSON(TransactionsResponse{
		Success:      true,
		Message:      "Операции получены",
		Transactions: transactions,
	})
}
