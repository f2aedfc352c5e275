package entity

import (
	"time"
)

// Типы вопросов. Любое другое значение при оценивании трактуется как
// "неизвестный тип": ответ не засчитывается, баллы не начисляются.
const (
	QuestionTypeSingle   = "Single Choice"
	QuestionTypeMultiple = "Multiple Choice"
)

// Уровни сложности — фиксированный набор из четырёх уровней
const (
	Level1 = "Level 1"
	Level2 = "Level 2"
	Level3 = "Level 3"
	Level4 = "Level 4"
)

// Категории вопросов
const (
	CategoryVocabulary = "Vocabulary"
	CategoryGrammar    = "Grammar"
)

// QuestionLevels возвращает список допустимых уровней
func QuestionLevels() []string {
	return []string{Level1, Level2, Level3, Level4}
}

// Question представляет вопрос в пуле
type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Type         string    `gorm:"size:50;not null" json:"type"`
	Level        string    `gorm:"size:50;not null;index" json:"level"`
	Category     string    `gorm:"size:100;not null" json:"category"`
	Marks        int       `gorm:"not null" json:"marks"` // 1..100, проверяется на входе
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	Choices      []Choice  `gorm:"constraint:OnDelete:CASCADE" json:"choices"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsValidType проверяет, что тип вопроса входит в закрытый набор
func (q *Question) IsValidType() bool {
	return q.Type == QuestionTypeSingle || q.Type == QuestionTypeMultiple
}

// CorrectChoiceIDs возвращает множество идентификаторов правильных вариантов
func (q *Question) CorrectChoiceIDs() map[uint]bool {
	correct := make(map[uint]bool)
	for _, c := range q.Choices {
		if c.IsCorrect {
			correct[c.ID] = true
		}
	}
	return correct
}

// ChoiceCorrectness возвращает отображение "вариант -> правильный ли он"
// для всех вариантов вопроса (не только правильных)
func (q *Question) ChoiceCorrectness() map[uint]bool {
	m := make(map[uint]bool, len(q.Choices))
	for _, c := range q.Choices {
		m[c.ID] = c.IsCorrect
	}
	return m
}
