package services

import (
	"fmt"

	"sklad-backend/models"

	"gorm.io/gorm"
)

// Комментарий к операциям, выполненным через программу
const operationComment = "Операция через программу"

// Действия, фиксируемые в журнале
const (
	ActionIncrease       = "Приход"
	ActionDecrease       = "Расход"
	ActionAddCategory    = "Добавление категории"
	ActionDeleteCategory = "Удаление категории"
	ActionAddMaterial    = "Добавление материала"
	ActionDeleteMaterial = "Удаление материала"
)

// LedgerService выполняет операции прихода и расхода материалов.
// Каждая операция атомарно изменяет остаток, добавляет запись
// в transactions и запись в журнал действий.
type LedgerService struct {
	db    *gorm.DB
	audit *AuditService
	hub   *Hub
}

// NewLedgerService создает новый сервис операций
func NewLedgerService(db *gorm.DB, audit *AuditService, hub *Hub) *LedgerService {
	return &LedgerService{db: db, audit: audit, hub: hub}
}

// Increase увеличивает остаток материала на amount
func (s *LedgerService) Increase(actorID, materialID uint, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Увеличиваем остаток
	res := tx.Model(&models.Material{}).
		Where("id = ?", materialID).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrMaterialNotFound
	}

	// Записываем операцию
	transaction := models.Transaction{
		MaterialID: materialID,
		Type:       models.TransactionIncrease,
		Amount:     amount,
		Comment:    operationComment,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		return err
	}

	// Записываем действие в журнал
	details := fmt.Sprintf("ID=%d, amount=%d", materialID, amount)
	if err := s.audit.Append(tx, &actorID, ActionIncrease, details); err != nil {
		tx.Rollback()
		return err
	}

	// Читаем новый остаток для оповещения
	var material models.Material
	if err := tx.First(&material, materialID).Error; err != nil {
		tx.Rollback()
		return err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.hub.NotifyStockChanged(&material)
	return nil
}

// Decrease уменьшает остаток материала на amount.
// Проверка достаточности остатка выполняется тем же UPDATE, который
// его уменьшает, поэтому параллельные расходы не могут увести
// остаток в минус.
func (s *LedgerService) Decrease(actorID, materialID uint, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Уменьшаем остаток, только если его хватает
	res := tx.Model(&models.Material{}).
		Where("id = ? AND quantity >= ?", materialID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}

	if res.RowsAffected == 0 {
		// Различаем отсутствие материала и нехватку остатка
		var count int64
		if err := tx.Model(&models.Material{}).Where("id = ?", materialID).Count(&count).Error; err != nil {
			tx.Rollback()
			return err
		}
		tx.Rollback()
		if count == 0 {
			return ErrMaterialNotFound
		}
		return ErrInsufficientStock
	}

	// Записываем операцию
	transaction := models.Transaction{
		MaterialID: materialID,
		Type:       models.TransactionDecrease,
		Amount:     amount,
		Comment:    operationComment,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		return err
	}

	// Записываем действие в журнал
	details := fmt.Sprintf("ID=%d, amount=%d", materialID, amount)
	if err := s.audit.Append(tx, &actorID, ActionDecrease, details); err != nil {
		tx.Rollback()
		return err
	}

	// Читаем новый остаток для оповещения
	var material models.Material
	if err := tx.First(&material, materialID).Error; err != nil {
		tx.Rollback()
		return err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.hub.NotifyStockChanged(&material)
	return nil
}
