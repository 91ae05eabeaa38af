package controllers

import (
	"strconv"

	"sklad-backend/models"
	"sklad-backend/services"

	"github.com/gofiber/fiber/v2"
)

// LogController контроллер для просмотра журнала действий
type LogController struct {
	Audit *services.AuditService
}

// NewLogController создает новый экземпляр LogController
func NewLogController(audit *services.AuditService) *LogController {
	return &LogController{Audit: audit}
}

// LogsResponse структура ответа со списком записей журнала
type LogsResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Logs    []models.LogEntry `json:"logs,omitempty"`
}

// GetLogs возвращает последние записи журнала
func (lc *LogController) GetLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	logs, err := lc.Audit.List(limit)
	if err != nil {
		return c.Status(500).JSON(LogsResponse{
			Success: false,
			Message: "Ошибка при получении журнала",
		})
	}

	return c.JSON(LogsResponse{
		Success: true,
		Message: "Журнал получен",
		Logs:    logs,
	})
}
