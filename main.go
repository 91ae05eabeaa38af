package main

import (
	"log"
	"os"
	"time"

	"sklad-backend/controllers"
	"sklad-backend/models"
	"sklad-backend/routes"
	"sklad-backend/services"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

func main() {
	// Инициализация базы данных
	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Автомиграция
	db.AutoMigrate(&models.User{}, &models.Category{}, &models.Material{}, &models.Transaction{}, &models.LogEntry{})

	// Создание администратора по умолчанию
	ensureAdmin(db)

	// Создание Fiber приложения
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	// CORS настройки
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Инициализация хаба событий склада
	hub := services.NewHub(db)
	go hub.Run()

	// Инициализация сервисов
	auditService := services.NewAuditService(db)
	ledgerService := services.NewLedgerService(db, auditService, hub)
	catalogService := services.NewCatalogService(db, auditService, hub)

	// Инициализация контроллеров
	authController := controllers.NewAuthController(db)
	materialController := controllers.NewMaterialController(catalogService, ledgerService)
	categoryController := controllers.NewCategoryController(catalogService)
	transactionController := controllers.NewTransactionController(catalogService)
	logController := controllers.NewLogController(auditService)

	// Настройка маршрутов
	routes.SetupAuthRoutes(app, authController)
	routes.SetupMaterialRoutes(app, materialController)
	routes.SetupCategoryRoutes(app, categoryController)
	routes.SetupTransactionRoutes(app, transactionController)
	routes.SetupLogRoutes(app, logController)

	// WebSocket маршрут
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.HandleWebSocket(c)
	}))

	// Общий health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Sklad Backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	// Запуск сервера
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// ensureAdmin создает администратора по умолчанию, если его еще нет
func ensureAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		log.Printf("Ошибка при создании администратора: %v", err)
		return
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Ошибка при создании администратора: %v", err)
		return
	}

	log.Println("Создан администратор: admin / admin123")
}
