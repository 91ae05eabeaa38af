package models

import (
	"time"

	"gorm.io/gorm"
)

// LogEntry представляет запись журнала действий пользователей.
// При удалении пользователя ссылка обнуляется, сама запись сохраняется.
type LogEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	Action    string    `json:"action" gorm:"not null;type:text"`
	Details   string    `json:"details" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`

	// Связи
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// BeforeCreate хук для установки времени создания
func (l *LogEntry) BeforeCreate(tx *gorm.DB) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	return nil
}
