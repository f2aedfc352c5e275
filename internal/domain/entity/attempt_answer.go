package entity

import (
	"github.com/google/uuid"
)

// AttemptAnswer - неизменяемая запись ответа на один вопрос в рамках одной
// попытки. Пара (attempt_id, question_id) уникальна; запись создаётся только
// сервисом отправки и никогда не обновляется.
type AttemptAnswer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AttemptID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question" json:"attempt_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_attempt_question" json:"question_id"`

	SelectedChoiceIDs UintArray `gorm:"type:jsonb;not null" json:"selected_choice_ids"`
	TextAnswer        string    `gorm:"type:text" json:"text_answer"`
	IsCorrect         bool      `gorm:"not null;default:false" json:"is_correct"`
	MarksAwarded      float64   `gorm:"not null;default:0" json:"marks_awarded"`
	TimeSpent         int       `gorm:"not null;default:0" json:"time_spent"`
}

// TableName определяет имя таблицы для GORM
func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
