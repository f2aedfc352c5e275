package entity

// Choice представляет вариант ответа на вопрос
type Choice struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:255;not null" json:"text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
}

// TableName определяет имя таблицы для GORM
func (Choice) TableName() string {
	return "choices"
}
