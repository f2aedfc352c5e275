package service

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/internal/service/papergen"
)

// PaperService предоставляет методы для работы с вариантами теста
type PaperService struct {
	paperRepo    repository.PaperRepository
	questionRepo repository.QuestionRepository
}

// NewPaperService создает новый сервис вариантов
func NewPaperService(paperRepo repository.PaperRepository, questionRepo repository.QuestionRepository) *PaperService {
	return &PaperService{
		paperRepo:    paperRepo,
		questionRepo: questionRepo,
	}
}

// CreatePaperInput - входные данные создания/обновления варианта
type CreatePaperInput struct {
	Title       string
	Level       *string
	Category    *string
	Status      string
	QuestionIDs []uint
	LevelConfig entity.LevelConfig
}

// Create создает вариант и привязывает перечисленные вопросы
func (s *PaperService) Create(in CreatePaperInput) (*entity.TestPaper, error) {
	if err := validateLevelConfig(in.LevelConfig); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.PaperStatusDraft
	}
	paper := &entity.TestPaper{
		Title:       in.Title,
		Level:       in.Level,
		Category:    in.Category,
		Status:      status,
		LevelConfig: in.LevelConfig,
	}
	if err := s.paperRepo.Create(paper); err != nil {
		return nil, fmt.Errorf("failed to create paper: %w", err)
	}
	if len(in.QuestionIDs) > 0 {
		if err := s.paperRepo.ReplaceQuestions(paper.ID, in.QuestionIDs); err != nil {
			return nil, err
		}
	}
	return s.paperRepo.GetWithQuestions(paper.ID)
}

// GetByID возвращает вариант без списка вопросов
func (s *PaperService) GetByID(id uint) (*entity.TestPaper, error) {
	return s.paperRepo.GetByID(id)
}

// GetWithQuestions возвращает вариант вместе с вопросами и их вариантами ответов
func (s *PaperService) GetWithQuestions(id uint) (*entity.TestPaper, error) {
	return s.paperRepo.GetWithQuestions(id)
}

// List возвращает страницу вариантов и общее количество
func (s *PaperService) List(limit, offset int) ([]entity.TestPaper, int64, error) {
	return s.paperRepo.List(limit, offset)
}

// Update обновляет вариант и перезаписывает привязку вопросов
func (s *PaperService) Update(id uint, in CreatePaperInput) (*entity.TestPaper, error) {
	if err := validateLevelConfig(in.LevelConfig); err != nil {
		return nil, err
	}

	paper, err := s.paperRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	paper.Title = in.Title
	paper.Level = in.Level
	paper.Category = in.Category
	if in.Status != "" {
		paper.Status = in.Status
	}
	paper.LevelConfig = in.LevelConfig

	if err := s.paperRepo.Update(paper); err != nil {
		return nil, fmt.Errorf("failed to update paper: %w", err)
	}
	if in.QuestionIDs != nil {
		if err := s.paperRepo.ReplaceQuestions(paper.ID, in.QuestionIDs); err != nil {
			return nil, err
		}
	}
	return s.paperRepo.GetWithQuestions(paper.ID)
}

// Delete удаляет вариант
func (s *PaperService) Delete(id uint) error {
	return s.paperRepo.Delete(id)
}

// LevelSummary - итог подбора по одному уровню
type LevelSummary struct {
	Mode *string `json:"mode"`
	Need int     `json:"need"`
	Got  int     `json:"got"`
}

// GenerationError - совокупный отказ генерации: хотя бы один уровень не
// смог выполнить своё правило. Ошибки всех уровней собраны целиком, чтобы
// оператор исправил пул или правила за один заход.
type GenerationError struct {
	Errors  []string                `json:"errors"`
	Summary map[string]LevelSummary `json:"summary"`
}

func (e *GenerationError) Error() string {
	return "paper generation failed: " + strings.Join(e.Errors, "; ")
}

// Unwrap позволяет errors.Is распознавать отказ подбора
func (e *GenerationError) Unwrap() error {
	return apperrors.ErrInfeasible
}

// GeneratePaper подбирает состав вопросов варианта по его level_config.
// Результат эфемерный: ничего не сохраняется, повторный вызов даёт новый
// случайный состав. Выбранные вопросы объединяются по всем уровням и
// дедуплицируются по идентификатору.
//
// Уровень без распознанного режима не участвует в подборе и отражается в
// сводке нулевым требованием. Отказ любого уровня проваливает весь вызов.
func (s *PaperService) GeneratePaper(paperID uint) (*entity.TestPaper, []entity.Question, map[string]LevelSummary, error) {
	paper, err := s.paperRepo.GetByID(paperID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(paper.LevelConfig) == 0 {
		return nil, nil, nil, fmt.Errorf("paper %d has no level_config: %w", paperID, apperrors.ErrValidation)
	}

	// Стабильный порядок обхода уровней: детерминированные сводки и логи
	levels := make([]string, 0, len(paper.LevelConfig))
	for level := range paper.LevelConfig {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	summary := make(map[string]LevelSummary, len(levels))
	var genErrors []string
	seen := make(map[uint]bool)
	var picked []entity.Question

	for _, level := range levels {
		rule := paper.LevelConfig[level]

		var need int
		switch rule.Mode {
		case entity.SelectionModeCount:
			need = rule.ExamQuestions
		case entity.SelectionModeMarks:
			need = rule.TotalMarks
		default:
			// Уровень настроен без режима подбора: нулевое требование, не ошибка
			summary[level] = LevelSummary{Mode: nil, Need: 0, Got: 0}
			continue
		}

		pool, err := s.questionRepo.GetByLevel(level)
		if err != nil {
			return nil, nil, nil, err
		}

		var selected []entity.Question
		switch rule.Mode {
		case entity.SelectionModeCount:
			selected, err = papergen.PickByCount(pool, need, level)
		case entity.SelectionModeMarks:
			selected, err = papergen.PickByMarks(pool, need, level)
		}

		got := 0
		if rule.Mode == entity.SelectionModeMarks {
			for _, q := range selected {
				got += q.Marks
			}
		} else {
			got = len(selected)
		}

		mode := rule.Mode
		summary[level] = LevelSummary{Mode: &mode, Need: need, Got: got}

		if err != nil {
			genErrors = append(genErrors, err.Error())
			continue
		}

		for _, q := range selected {
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			picked = append(picked, q)
		}
	}

	if len(genErrors) > 0 {
		log.Printf("[PaperService] Генерация варианта #%d отклонена: %d уровней с ошибками", paperID, len(genErrors))
		return nil, nil, nil, &GenerationError{Errors: genErrors, Summary: summary}
	}

	log.Printf("[PaperService] Вариант #%d сгенерирован: %d вопросов", paperID, len(picked))
	return paper, picked, summary, nil
}

// validateLevelConfig проверяет правила подбора перед сохранением варианта
func validateLevelConfig(cfg entity.LevelConfig) error {
	for level, rule := range cfg {
		switch rule.Mode {
		case "":
			continue
		case entity.SelectionModeCount:
			if rule.ExamQuestions <= 0 {
				return fmt.Errorf("level %q: exam_questions must be positive in count mode: %w", level, apperrors.ErrValidation)
			}
		case entity.SelectionModeMarks:
			if rule.TotalMarks <= 0 {
				return fmt.Errorf("level %q: total_marks must be positive in marks mode: %w", level, apperrors.ErrValidation)
			}
		default:
			return fmt.Errorf("level %q: unknown selection mode %q: %w", level, rule.Mode, apperrors.ErrValidation)
		}
	}
	return nil
}
