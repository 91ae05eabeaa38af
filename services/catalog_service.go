package services

import (
	"fmt"
	"strings"

	"sklad-backend/models"

	"gorm.io/gorm"
)

// CatalogService предоставляет методы для работы с категориями и материалами
type CatalogService struct {
	db    *gorm.DB
	audit *AuditService
	hub   *Hub
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(db *gorm.DB, audit *AuditService, hub *Hub) *CatalogService {
	return &CatalogService{db: db, audit: audit, hub: hub}
}

// AddCategory создает новую категорию и возвращает ее ID
func (s *CatalogService) AddCategory(actorID uint, name string) (uint, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrEmptyName
	}

	category := models.Category{Name: name}

	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&category).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := s.audit.Append(tx, &actorID, ActionAddCategory, name); err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	return category.ID, nil
}

// DeleteCategory удаляет категорию, если на нее не ссылается ни один материал
func (s *CatalogService) DeleteCategory(actorID, categoryID uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var category models.Category
	if err := tx.First(&category, categoryID).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return ErrCategoryNotFound
		}
		return err
	}

	// Проверяем, что в категории нет материалов
	var count int64
	if err := tx.Model(&models.Material{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		tx.Rollback()
		return err
	}
	if count > 0 {
		tx.Rollback()
		return ErrCategoryNotEmpty
	}

	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := s.audit.Append(tx, &actorID, ActionDeleteCategory, category.Name); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.hub.NotifyCategoryDeleted(categoryID)
	return nil
}

// AddMaterial создает новый материал с начальным остатком и возвращает его ID.
// Начальный остаток не считается операцией и не попадает в transactions.
func (s *CatalogService) AddMaterial(actorID uint, name, unit string, quantity, minQuantity int, categoryID *uint) (uint, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrEmptyName
	}
	if quantity < 0 || minQuantity < 0 {
		return 0, ErrInvalidAmount
	}

	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *categoryID).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return 0, ErrCategoryNotFound
		}
	}

	material := models.Material{
		Name:        name,
		Unit:        unit,
		Quantity:    quantity,
		MinQuantity: minQuantity,
		CategoryID:  categoryID,
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&material).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	details := fmt.Sprintf("%s (ID=%d)", material.Name, material.ID)
	if err := s.audit.Append(tx, &actorID, ActionAddMaterial, details); err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	return material.ID, nil
}

// DeleteMaterial удаляет материал вместе с его операциями.
// Сначала удаляются записи transactions, чтобы не оставалось сирот.
func (s *CatalogService) DeleteMaterial(actorID, materialID uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var material models.Material
	if err := tx.First(&material, materialID).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return ErrMaterialNotFound
		}
		return err
	}

	// Удаляем операции материала
	if err := tx.Where("material_id = ?", materialID).Delete(&models.Transaction{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	// Удаляем сам материал
	if err := tx.Delete(&material).Error; err != nil {
		tx.Rollback()
		return err
	}

	details := fmt.Sprintf("%s (ID=%d)", material.Name, material.ID)
	if err := s.audit.Append(tx, &actorID, ActionDeleteMaterial, details); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.hub.NotifyMaterialDeleted(materialID)
	return nil
}

// FindMaterial загружает материал с его категорией по ID
func (s *CatalogService) FindMaterial(materialID uint, material *models.Material) error {
	err := s.db.Preload("Category").First(material, materialID).Error
	if err == gorm.ErrRecordNotFound {
		return ErrMaterialNotFound
	}
	return err
}

// ListCategories возвращает все категории
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("id").Find(&categories).Error
	return categories, err
}

// ListMaterials возвращает все материалы с их категориями
func (s *CatalogService) ListMaterials() ([]models.Material, error) {
	var materials []models.Material
	err := s.db.Preload("Category").Order("id").Find(&materials).Error
	return materials, err
}

// ListTransactions возвращает операции, начиная с последних
func (s *CatalogService) ListTransactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.Preload("Material").Order("id DESC").Find(&transactions).Error
	return transactions, err
}
