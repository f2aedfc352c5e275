package dto

import (
	"time"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// PaperResponse представляет вариант теста в административном формате
type PaperResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Level       *string            `json:"level"`
	Category    *string            `json:"category"`
	Status      string             `json:"status"`
	LevelConfig entity.LevelConfig `json:"level_config"`
	TotalMarks  int                `json:"total_marks"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// PaginatedPapersResponse представляет пагинированный список вариантов
type PaginatedPapersResponse struct {
	Papers  []PaperResponse `json:"papers"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// GeneratedPaperResponse представляет результат генерации состава варианта.
// Конфигурация, статус и сохранённый список вопросов в ответ не входят,
// правильность вариантов ответов скрыта.
type GeneratedPaperResponse struct {
	ID                 uint                     `json:"id"`
	Title              string                   `json:"title"`
	Level              *string                  `json:"level"`
	Category           *string                  `json:"category"`
	GeneratedQuestions []PublicQuestionResponse `json:"generated_questions"`
}

// NewPaperResponse создает DTO варианта
func NewPaperResponse(paper *entity.TestPaper, includeQuestions bool) *PaperResponse {
	resp := &PaperResponse{
		ID:          paper.ID,
		Title:       paper.Title,
		Level:       paper.Level,
		Category:    paper.Category,
		Status:      paper.Status,
		LevelConfig: paper.LevelConfig,
		TotalMarks:  paper.TotalMarks(),
		CreatedAt:   paper.CreatedAt,
	}
	if includeQuestions {
		resp.Questions = make([]QuestionResponse, 0, len(paper.Questions))
		for i := range paper.Questions {
			resp.Questions = append(resp.Questions, NewQuestionResponse(&paper.Questions[i]))
		}
	}
	return resp
}

// NewGeneratedPaperResponse создает DTO сгенерированного состава варианта
func NewGeneratedPaperResponse(paper *entity.TestPaper, questions []entity.Question) *GeneratedPaperResponse {
	generated := make([]PublicQuestionResponse, 0, len(questions))
	for i := range questions {
		generated = append(generated, NewPublicQuestionResponse(&questions[i]))
	}
	return &GeneratedPaperResponse{
		ID:                 paper.ID,
		Title:              paper.Title,
		Level:              paper.Level,
		Category:           paper.Category,
		GeneratedQuestions: generated,
	}
}
