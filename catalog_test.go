package main

import (
	"testing"

	"sklad-backend/models"
	"sklad-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestAddCategory(t *testing.T) {
	db := setupTestDB()
	_, _, catalog := setupTestServices(db)

	actorID := createTestUser(db, "admin", models.RoleAdmin)

	tests := []struct {
		name        string
		category    string
		expectedErr error
	}{
		{"Успешное создание", "Крепеж", nil},
		{"Пустое имя", "", services.ErrEmptyName},
		{"Имя из пробелов", "   ", services.ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryID, err := catalog.AddCategory(actorID, tt.category)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Zero(t, categoryID)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, categoryID)
			}
		})
	}

	// Создание категории оставило след в журнале
	assert.Equal(t, int64(1), countLogs(db, services.ActionAddCategory))
}

func TestAddMaterialInitialStockIsNotALedgerEvent(t *testing.T) {
	db := setupTestDB()
	_, _, catalog := setupTestServices(db)

	actorID := createTestUser(db, "admin", models.RoleAdmin)

	categoryID, err := catalog.AddCategory(actorID, "Крепеж")
	assert.NoError(t, err)

	materialID, err := catalog.AddMaterial(actorID, "Болт М8", "шт", 100, 10, &categoryID)
	assert.NoError(t, err)
	assert.NotZero(t, materialID)

	// Начальный остаток задан, но операций по материалу нет
	assert.Equal(t, 100, materialQuantity(db, materialID))
	assert.Equal(t, int64(0), countTransactions(db, materialID))
}

func TestAddMaterialValidation(t *testing.T) {
	db := setupTestDB()
	_, _, catalog := setupTestServices(db)

	actorID := createTestUser(db, "admin", models.RoleAdmin)

	_, err := catalog.AddMaterial(actorID, "  ", "шт", 10, 1, nil)
	assert.ErrorIs(t, err, services.ErrEmptyName)

	_, err = catalog.AddMaterial(actorID, "Болт М8", "шт", -1, 1, nil)
	assert.ErrorIs(t, err, services.ErrInvalidAmount)

	missingCategory := uint(9999)
	_, err = catalog.AddMaterial(actorID, "Болт М8", "шт", 10, 1, &missingCategory)
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestDeleteCategoryWithMaterials(t *testing.T) {
	db := setupTestDB()
	_, _, catalog := setupTestServices(db)

	actorID := createTestUser(db, "admin", models.RoleAdmin)
	categoryID := createTestCategory(db, "Электрика")
	materialID := createTestMaterial(db, "Розетка", 80, &categoryID)

	err := catalog.DeleteCategory(actorID, categoryID)
	assert.ErrorIs(t, err, services.ErrCategoryNotEmpty)

	// Категория и материал остались нетронутыми
	var category models.Category
	assert.NoError(t, db.First(&category, categoryID).Error)
	var material models.Material
	assert.NoError(t, db.First(&material, materialID).Error)
	assert.Equal(t, int64(0), countLogs(db, services.ActionDeleteCategory))
}

func TestDeleteEmptyCategory(t *testing.T) {
	db := setupTestDB()
	_, _, catalog := setupTestServices(db)

	actorID := createTestUser(db, "admin", models.RoleAdmin)
	categoryID := createTestCategory(db, "Пустая категория")

	assert.NoError(t, catalog.DeleteCategory(actorID, categoryID))

	var count int64
	db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Удаление зафиксировано в журнале с именем категории
	var entry models.LogEntry
	db.Where("action = ?", services.ActionDeleteCategory).First(&entry)
	assert.Equal(t, "Пустая категория", entry.Details)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	db := setupTestDB()
	_, _, catalog := setupTestServices(db)

	actorID := createTestUser(db, "admin", models.RoleAdmin)

	err := catalog.DeleteCategory(actorID, 9999)
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestDeleteMaterialCascadesTransactions(t *testing.T) {
	db := setupTestDB()
	_, ledger, catalog := setupTestServices(db)

	actorID := createTestUser(db, "admin", models.RoleAdmin)
	materialID := createTestMaterial(db, "Растворитель", 25, nil)

	// Накапливаем несколько операций
	assert.NoError(t, ledger.Increase(actorID, materialID, 10))
	assert.NoError(t, ledger.Decrease(actorID, materialID, 5))
	assert.Equal(t, int64(2), countTransactions(db, materialID))

	assert.NoError(t, catalog.DeleteMaterial(actorID, materialID))

	// Сирот не осталось: ни материала, ни его операций
	var materialCount int64
	db.Model(&models.Material{}).Where("id = ?", materialID).Count(&materialCount)
	assert.Equal(t, int64(0), materialCount)
	assert.Equal(t, int64(0), countTransactions(db, materialID))

	// Удаление зафиксировано одной записью журнала
	assert.Equal(t, int64(1), countLogs(db, services.ActionDeleteMaterial))
	var entry models.LogEntry
	db.Where("action = ?", services.ActionDeleteMaterial).First(&entry)
	assert.Contains(t, entry.Details, "Растворитель")
}

func TestDeleteMaterialNotFound(t *testing.T) {
	db := setupTestDB()
	_, _, catalog := setupTestServices(db)

	actorID := createTestUser(db, "admin", models.RoleAdmin)

	err := catalog.DeleteMaterial(actorID, 9999)
	assert.ErrorIs(t, err, services.ErrMaterialNotFound)
}

func TestListMaterialsWithCategories(t *testing.T) {
	db := setupTestDB()
	_, _, catalog := setupTestServices(db)

	categoryID := createTestCategory(db, "Крепеж")
	createTestMaterial(db, "Болт М8", 500, &categoryID)
	createTestMaterial(db, "Тряпки", 30, nil)

	materials, err := catalog.ListMaterials()
	assert.NoError(t, err)
	assert.Len(t, materials, 2)
	assert.NotNil(t, materials[0].Category)
	assert.Equal(t, "Крепеж", materials[0].Category.Name)
	assert.Nil(t, materials[1].Category)
}

func TestListCategories(t *testing.T) {
	db := setupTestDB()
	_, _, catalog := setupTestServices(db)

	createTestCategory(db, "Крепеж")
	createTestCategory(db, "Электрика")

	categories, err := catalog.ListCategories()
	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "Крепеж", categories[0].Name)
	assert.Equal(t, "Электрика", categories[1].Name)
}

func TestListTransactionsNewestFirst(t *testing.T) {
	db := setupTestDB()
	_, ledger, catalog := setupTestServices(db)

	actorID := createTestUser(db, "kladovshik", models.RoleUser)
	materialID := createTestMaterial(db, "Краска белая", 40, nil)

	assert.NoError(t, ledger.Increase(actorID, materialID, 3))
	assert.NoError(t, ledger.Decrease(actorID, materialID, 1))

	transactions, err := catalog.ListTransactions()
	assert.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, models.TransactionDecrease, transactions[0].Type)
	assert.Equal(t, models.TransactionIncrease, transactions[1].Type)
	assert.NotNil(t, transactions[0].Material)
	assert.Equal(t, "Краска белая", transactions[0].Material.Name)
}
