package dto

import (
	"time"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// ChoiceResponse представляет вариант ответа в административном формате,
// включая признак правильности
type ChoiceResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// PublicChoiceResponse представляет вариант ответа для экзаменуемого.
// Признак правильности никогда не попадает в этот формат.
type PublicChoiceResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse представляет вопрос в административном формате
type QuestionResponse struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Level        string           `json:"level"`
	Category     string           `json:"category"`
	Marks        int              `json:"marks"`
	QuestionText string           `json:"question_text"`
	Choices      []ChoiceResponse `json:"choices"`
	CreatedAt    time.Time        `json:"created_at"`
}

// PublicQuestionResponse представляет вопрос для экзаменуемого
type PublicQuestionResponse struct {
	ID      uint                   `json:"id"`
	Text    string                 `json:"text"`
	Type    string                 `json:"type"`
	Marks   int                    `json:"marks"`
	Choices []PublicChoiceResponse `json:"choices"`
}

// PaginatedQuestionsResponse представляет пагинированный список вопросов
type PaginatedQuestionsResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PerPage   int                `json:"per_page"`
}

// NewQuestionResponse создает DTO вопроса для административных ответов
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	choices := make([]ChoiceResponse, 0, len(q.Choices))
	for _, c := range q.Choices {
		choices = append(choices, ChoiceResponse{ID: c.ID, Text: c.Text, IsCorrect: c.IsCorrect})
	}
	return QuestionResponse{
		ID:           q.ID,
		Name:         q.Name,
		Type:         q.Type,
		Level:        q.Level,
		Category:     q.Category,
		Marks:        q.Marks,
		QuestionText: q.QuestionText,
		Choices:      choices,
		CreatedAt:    q.CreatedAt,
	}
}

// NewPublicQuestionResponse создает DTO вопроса без признаков правильности
func NewPublicQuestionResponse(q *entity.Question) PublicQuestionResponse {
	choices := make([]PublicChoiceResponse, 0, len(q.Choices))
	for _, c := range q.Choices {
		choices = append(choices, PublicChoiceResponse{ID: c.ID, Text: c.Text})
	}
	return PublicQuestionResponse{
		ID:      q.ID,
		Text:    q.QuestionText,
		Type:    q.Type,
		Marks:   q.Marks,
		Choices: choices,
	}
}
