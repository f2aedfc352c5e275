package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student представляет учащегося, проходящего тестирование
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	StudentNo string    `gorm:"size:64;not null;uniqueIndex" json:"student_no"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Student) TableName() string {
	return "students"
}

// BeforeCreate генерирует UUID до вставки записи
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
