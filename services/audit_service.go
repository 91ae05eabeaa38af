package services

import (
	"sklad-backend/models"

	"gorm.io/gorm"
)

// AuditService предоставляет методы для работы с журналом действий
type AuditService struct {
	db *gorm.DB
}

// NewAuditService создает новый сервис журнала
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Append добавляет запись в журнал внутри переданной транзакции.
// Запись фиксируется вместе с операцией, которую она документирует:
// откат операции откатывает и ее след в журнале.
func (s *AuditService) Append(tx *gorm.DB, userID *uint, action, details string) error {
	entry := models.LogEntry{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	return tx.Create(&entry).Error
}

// AddLog добавляет запись в журнал вне какой-либо транзакции
func (s *AuditService) AddLog(userID *uint, action, details string) error {
	return s.Append(s.db, userID, action, details)
}

// List возвращает последние записи журнала с данными пользователей
func (s *AuditService) List(limit int) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	query := s.db.Preload("User").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}
