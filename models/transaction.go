package models

import (
	"time"

	"gorm.io/gorm"
)

// Типы операций над остатком материала
const (
	TransactionIncrease = "приход"
	TransactionDecrease = "расход"
)

// Transaction представляет одну операцию прихода или расхода материала.
// Записи только добавляются и никогда не изменяются.
type Transaction struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	MaterialID    uint      `json:"material_id" gorm:"not null;index"`
	Type          string    `json:"type" gorm:"not null;size:20"` // 'приход' или 'расход'
	Amount        int       `json:"amount" gorm:"not null"`
	Comment       string    `json:"comment" gorm:"type:text"`
	OperationDate time.Time `json:"operation_date"`

	// Связи
	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

// BeforeCreate хук для установки даты операции
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.OperationDate.IsZero() {
		t.OperationDate = time.Now()
	}
	return nil
}
