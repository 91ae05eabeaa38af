package models

import (
	"time"

	"gorm.io/gorm"
)

// Material представляет материал на складе
type Material struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Unit        string    `json:"unit" gorm:"not null;size:50"` // Единица измерения: шт, кг, л и т.д.
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	MinQuantity int       `json:"min_quantity" gorm:"not null;default:0"` // Минимальный остаток для оповещения
	CategoryID  *uint     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Связи
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// IsLowStock проверяет, опустился ли остаток до минимального
func (m *Material) IsLowStock() bool {
	return m.Quantity <= m.MinQuantity
}

// BeforeCreate хук для установки времени создания
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (m *Material) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}
