package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt представляет одно прохождение теста учащимся.
// Машина из двух состояний: открыта -> отправлена (терминальное).
// Единственный переход охраняется проверкой submitted_at IS NULL
// под блокировкой строки.
type Attempt struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptToken uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"attempt_token"`

	PaperID   uint      `gorm:"not null;index" json:"paper_id"`
	Paper     TestPaper `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   Student   `json:"-"`

	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	DurationSeconds int     `gorm:"not null;default:0" json:"duration_seconds"`
	Score           float64 `gorm:"not null;default:0" json:"score"`
	TotalMarks      float64 `gorm:"not null;default:0" json:"total_marks"`

	UserAgent string  `gorm:"type:text" json:"-"`
	IPAddress string  `gorm:"size:45" json:"-"`
	Meta      JSONMap `gorm:"type:jsonb" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Attempt) TableName() string {
	return "attempts"
}

// BeforeCreate генерирует идентификатор и токен до вставки записи
func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AttemptToken == uuid.Nil {
		a.AttemptToken = uuid.New()
	}
	return nil
}

// IsSubmitted сообщает, находится ли попытка в терминальном состоянии
func (a *Attempt) IsSubmitted() bool {
	return a.SubmittedAt != nil
}
