package service

import (
	"fmt"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// QuestionService предоставляет методы для работы с пулом вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
	statRepo     repository.StatRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, statRepo repository.StatRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		statRepo:     statRepo,
	}
}

// ChoiceInput - один вариант ответа при создании/обновлении вопроса
type ChoiceInput struct {
	Text      string
	IsCorrect bool
}

// CreateQuestionInput - входные данные создания/обновления вопроса
type CreateQuestionInput struct {
	Name         string
	Type         string
	Level        string
	Category     string
	Marks        int
	QuestionText string
	Choices      []ChoiceInput
}

func (in CreateQuestionInput) validate() error {
	if in.Type != entity.QuestionTypeSingle && in.Type != entity.QuestionTypeMultiple {
		return fmt.Errorf("unknown question type %q: %w", in.Type, apperrors.ErrValidation)
	}
	if in.Marks < 1 || in.Marks > 100 {
		return fmt.Errorf("marks must be between 1 and 100, got %d: %w", in.Marks, apperrors.ErrValidation)
	}
	if len(in.Choices) < 2 {
		return fmt.Errorf("question needs at least 2 choices: %w", apperrors.ErrValidation)
	}
	correct := 0
	for _, c := range in.Choices {
		if c.IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		return fmt.Errorf("question needs at least one correct choice: %w", apperrors.ErrValidation)
	}
	if in.Type == entity.QuestionTypeSingle && correct > 1 {
		return fmt.Errorf("single choice question cannot have %d correct choices: %w", correct, apperrors.ErrValidation)
	}
	return nil
}

func (in CreateQuestionInput) toEntity() *entity.Question {
	q := &entity.Question{
		Name:         in.Name,
		Type:         in.Type,
		Level:        in.Level,
		Category:     in.Category,
		Marks:        in.Marks,
		QuestionText: in.QuestionText,
	}
	for _, c := range in.Choices {
		q.Choices = append(q.Choices, entity.Choice{Text: c.Text, IsCorrect: c.IsCorrect})
	}
	return q
}

// Create создает вопрос вместе с вариантами ответов
func (s *QuestionService) Create(in CreateQuestionInput) (*entity.Question, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	question := in.toEntity()
	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// GetByID возвращает вопрос с вариантами ответов
func (s *QuestionService) GetByID(id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// List возвращает страницу вопросов по фильтру и общее количество
func (s *QuestionService) List(filter repository.QuestionFilter) ([]entity.Question, int64, error) {
	return s.questionRepo.List(filter)
}

// Update заменяет содержимое вопроса, включая полный набор вариантов ответов.
// Строки choice_stats старых вариантов при этом осиротевают и из отчётов
// выпадают, накопленная статистика вопроса сохраняется.
func (s *QuestionService) Update(id uint, in CreateQuestionInput) (*entity.Question, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	updated := in.toEntity()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.questionRepo.Update(updated); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return s.questionRepo.GetByID(id)
}

// Delete удаляет вопрос, если на него ещё никто не отвечал
func (s *QuestionService) Delete(id uint) error {
	answered, err := s.statRepo.CountQuestionAnswers(id)
	if err != nil {
		return err
	}
	if answered > 0 {
		return fmt.Errorf("question %d has %d recorded answers and cannot be deleted: %w",
			id, answered, apperrors.ErrConflict)
	}
	return s.questionRepo.Delete(id)
}
