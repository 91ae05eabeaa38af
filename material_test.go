package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"sklad-backend/controllers"
	"sklad-backend/models"
	"sklad-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// setupAPITestApp собирает приложение с полным набором маршрутов склада
func setupAPITestApp() (*fiber.App, *gorm.DB) {
	db := setupTestDB()
	audit, ledger, catalog := setupTestServices(db)

	app := fiber.New()

	routes.SetupMaterialRoutes(app, controllers.NewMaterialController(catalog, ledger))
	routes.SetupCategoryRoutes(app, controllers.NewCategoryController(catalog))
	routes.SetupTransactionRoutes(app, controllers.NewTransactionController(catalog))
	routes.SetupLogRoutes(app, controllers.NewLogController(audit))

	return app, db
}

func TestMaterialLifecycleOverHTTP(t *testing.T) {
	app, db := setupAPITestApp()

	userID := createTestUser(db, "kladovshik", models.RoleUser)
	token := generateTestJWT(userID, models.RoleUser)

	// Создаем категорию
	var categoryResp controllers.CategoryResponse
	resp := testRequest(t, app, "POST", "/api/categories/", token, controllers.CreateCategoryRequest{Name: "Крепеж"}, &categoryResp)
	assert.Equal(t, 201, resp)
	assert.True(t, categoryResp.Success)
	assert.NotZero(t, categoryResp.CategoryID)

	// Создаем материал с начальным остатком
	var materialResp controllers.MaterialResponse
	resp = testRequest(t, app, "POST", "/api/materials/", token, controllers.CreateMaterialRequest{
		Name:        "Болт М8",
		Unit:        "шт",
		Quantity:    100,
		MinQuantity: 10,
		CategoryID:  &categoryResp.CategoryID,
	}, &materialResp)
	assert.Equal(t, 201, resp)
	assert.True(t, materialResp.Success)
	assert.Equal(t, 100, materialResp.Material.Quantity)
	materialID := materialResp.Material.ID

	// Начальный остаток не создает операций
	var txResp controllers.TransactionsResponse
	resp = testRequest(t, app, "GET", "/api/transactions/", token, nil, &txResp)
	assert.Equal(t, 200, resp)
	assert.Empty(t, txResp.Transactions)

	// Приход
	var opResp controllers.MaterialResponse
	resp = testRequest(t, app, "POST", materialPath(materialID, "increase"), token, controllers.AmountRequest{Amount: 50}, &opResp)
	assert.Equal(t, 200, resp)
	assert.Equal(t, 150, materialQuantity(db, materialID))

	// Расход
	resp = testRequest(t, app, "POST", materialPath(materialID, "decrease"), token, controllers.AmountRequest{Amount: 30}, &opResp)
	assert.Equal(t, 200, resp)
	assert.Equal(t, 120, materialQuantity(db, materialID))

	// Расход сверх остатка отклоняется с кодом 409
	resp = testRequest(t, app, "POST", materialPath(materialID, "decrease"), token, controllers.AmountRequest{Amount: 1000}, &opResp)
	assert.Equal(t, 409, resp)
	assert.Equal(t, 120, materialQuantity(db, materialID))

	// Операций ровно две: приход и расход
	resp = testRequest(t, app, "GET", "/api/transactions/", token, nil, &txResp)
	assert.Equal(t, 200, resp)
	assert.Len(t, txResp.Transactions, 2)

	// Удаление материала уносит его операции
	resp = testRequest(t, app, "DELETE", materialPath(materialID, ""), token, nil, &opResp)
	assert.Equal(t, 200, resp)
	assert.Equal(t, int64(0), countTransactions(db, materialID))
}

func TestCategoryDeleteConflictOverHTTP(t *testing.T) {
	app, db := setupAPITestApp()

	userID := createTestUser(db, "kladovshik", models.RoleUser)
	token := generateTestJWT(userID, models.RoleUser)

	categoryID := createTestCategory(db, "Электрика")
	createTestMaterial(db, "Розетка", 80, &categoryID)

	var resp controllers.CategoryResponse
	status := testRequest(t, app, "DELETE", categoryPath(categoryID), token, nil, &resp)
	assert.Equal(t, 409, status)
	assert.False(t, resp.Success)

	// Категория на месте
	var count int64
	db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestInvalidAmountOverHTTP(t *testing.T) {
	app, db := setupAPITestApp()

	userID := createTestUser(db, "kladovshik", models.RoleUser)
	token := generateTestJWT(userID, models.RoleUser)
	materialID := createTestMaterial(db, "Ведро", 10, nil)

	var resp controllers.MaterialResponse
	status := testRequest(t, app, "POST", materialPath(materialID, "increase"), token, controllers.AmountRequest{Amount: 0}, &resp)
	assert.Equal(t, 400, status)
	assert.Equal(t, 10, materialQuantity(db, materialID))
}

func TestMaterialNotFoundOverHTTP(t *testing.T) {
	app, db := setupAPITestApp()

	userID := createTestUser(db, "kladovshik", models.RoleUser)
	token := generateTestJWT(userID, models.RoleUser)

	var resp controllers.MaterialResponse
	status := testRequest(t, app, "POST", "/api/materials/9999/increase", token, controllers.AmountRequest{Amount: 5}, &resp)
	assert.Equal(t, 404, status)
}

func TestRoutesRequireAuth(t *testing.T) {
	app, _ := setupAPITestApp()

	var resp controllers.MaterialsResponse
	status := testRequest(t, app, "GET", "/api/materials/", "", nil, &resp)
	assert.Equal(t, 401, status)
}

func TestLogsRequireAdmin(t *testing.T) {
	app, db := setupAPITestApp()

	userID := createTestUser(db, "kladovshik", models.RoleUser)
	adminID := createTestUser(db, "admin", models.RoleAdmin)

	// Обычному пользователю журнал недоступен
	var resp controllers.LogsResponse
	status := testRequest(t, app, "GET", "/api/logs/", generateTestJWT(userID, models.RoleUser), nil, &resp)
	assert.Equal(t, 403, status)

	// Администратор видит журнал
	status = testRequest(t, app, "GET", "/api/logs/", generateTestJWT(adminID, models.RoleAdmin), nil, &resp)
	assert.Equal(t, 200, status)
	assert.True(t, resp.Success)
}

// Вспомогательные функции HTTP тестов

func testRequest(t *testing.T, app *fiber.App, method, path, token string, body, out interface{}) int {
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	assert.NoError(t, err)

	if out != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func materialPath(materialID uint, suffix string) string {
	path := "/api/materials/" + itoa(materialID)
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}

func categoryPath(categoryID uint) string {
	return "/api/categories/" + itoa(categoryID)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
