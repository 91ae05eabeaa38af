package main

import (
	"time"

	"sklad-backend/models"
	"sklad-backend/services"
	"sklad-backend/utils"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB создает тестовую базу данных в памяти
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.User{}, &models.Category{}, &models.Material{}, &models.Transaction{}, &models.LogEntry{})
	return db
}

// setupTestServices создает сервисы поверх тестовой базы.
// Хаб не запускается: сервисы переживают его отсутствие.
func setupTestServices(db *gorm.DB) (*services.AuditService, *services.LedgerService, *services.CatalogService) {
	audit := services.NewAuditService(db)
	ledger := services.NewLedgerService(db, audit, nil)
	catalog := services.NewCatalogService(db, audit, nil)
	return audit, ledger, catalog
}

// createTestUser создает тестового пользователя и возвращает его ID
func createTestUser(db *gorm.DB, username, role string) uint {
	user := models.User{
		Username:     username,
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
	}
	db.Create(&user)
	return user.ID
}

// createTestCategory создает тестовую категорию и возвращает ее ID
func createTestCategory(db *gorm.DB, name string) uint {
	category := models.Category{Name: name}
	db.Create(&category)
	return category.ID
}

// createTestMaterial создает тестовый материал и возвращает его ID
func createTestMaterial(db *gorm.DB, name string, quantity int, categoryID *uint) uint {
	material := models.Material{
		Name:       name,
		Unit:       "шт",
		Quantity:   quantity,
		CategoryID: categoryID,
	}
	db.Create(&material)
	return material.ID
}

// countTransactions возвращает число операций по материалу
func countTransactions(db *gorm.DB, materialID uint) int64 {
	var count int64
	db.Model(&models.Transaction{}).Where("material_id = ?", materialID).Count(&count)
	return count
}

// countLogs возвращает число записей журнала с указанным действием
func countLogs(db *gorm.DB, action string) int64 {
	var count int64
	db.Model(&models.LogEntry{}).Where("action = ?", action).Count(&count)
	return count
}

// materialQuantity возвращает текущий остаток материала
func materialQuantity(db *gorm.DB, materialID uint) int {
	var material models.Material
	db.First(&material, materialID)
	return material.Quantity
}

// generateTestJWT создает тестовый JWT токен для указанного пользователя
func generateTestJWT(userID uint, role string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(utils.GetJWTSecret()))
	return tokenString
}
