package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// statsCacheTTL - время жизни кешированных отчётов. Отчёты допускают
// небольшое отставание от живых счётчиков, TTL короткий.
const statsCacheTTL = 60 * time.Second

// StatsService собирает отчёты по накопленной статистике ответов.
// Все методы только читают: счётчики пишет сервис отправки попытки.
type StatsService struct {
	statRepo     repository.StatRepository
	paperRepo    repository.PaperRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
}

// NewStatsService создает новый сервис отчётов
func NewStatsService(
	statRepo repository.StatRepository,
	paperRepo repository.PaperRepository,
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
) *StatsService {
	return &StatsService{
		statRepo:     statRepo,
		paperRepo:    paperRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
	}
}

// QuestionStatsRow - отчётная строка по одному вопросу варианта
type QuestionStatsRow struct {
	QuestionID   uint              `json:"question_id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Level        string            `json:"level"`
	Marks        int               `json:"marks"`
	Attempts     int64             `json:"attempts"`
	Correct      int64             `json:"correct"`
	Wrong        int64             `json:"wrong"`
	CorrectRate  float64           `json:"correct_rate"`
	AvgMarks     float64           `json:"avg_marks"`
	WrongChoices []WrongChoiceStat `json:"wrong_choices,omitempty"`
}

// WrongChoiceStat - статистика одного ошибочного варианта ответа
type WrongChoiceStat struct {
	ChoiceID      uint   `json:"choice_id"`
	Text          string `json:"text"`
	WrongSelected int64  `json:"wrong_selected"`
	SelectedTotal int64  `json:"selected_total"`
}

// PaperStatsReport - полный отчёт по варианту
type PaperStatsReport struct {
	PaperID     uint                     `json:"paper_id"`
	Title       string                   `json:"title"`
	Summary     *repository.PaperSummary `json:"summary"`
	Questions   []QuestionStatsRow       `json:"questions"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// PaperStats возвращает отчёт по варианту: сводка по попыткам и разбивка по
// вопросам, опционально с ошибочными вариантами, упорядоченными по числу
// неверных выборов. Результат кешируется с коротким TTL; недоступность
// кеша не мешает отчёту.
func (s *StatsService) PaperStats(paperID uint, withWrongChoices bool) (*PaperStatsReport, error) {
	cacheKey := fmt.Sprintf("stats:paper:%d:wrong:%t", paperID, withWrongChoices)
	var cached PaperStatsReport
	if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
		return &cached, nil
	}

	paper, err := s.paperRepo.GetWithQuestions(paperID)
	if err != nil {
		return nil, err
	}

	summary, err := s.statRepo.GetPaperSummary(paperID)
	if err != nil {
		return nil, err
	}

	aggregates, err := s.statRepo.GetQuestionAggregates(paperID)
	if err != nil {
		return nil, err
	}
	aggByQuestion := make(map[uint]repository.QuestionAggregate, len(aggregates))
	for _, a := range aggregates {
		aggByQuestion[a.QuestionID] = a
	}

	var wrongByQuestion map[uint][]WrongChoiceStat
	if withWrongChoices {
		questionIDs := make([]uint, 0, len(paper.Questions))
		for _, q := range paper.Questions {
			questionIDs = append(questionIDs, q.ID)
		}
		rows, err := s.statRepo.GetWrongChoiceRows(questionIDs)
		if err != nil {
			return nil, err
		}
		wrongByQuestion = make(map[uint][]WrongChoiceStat)
		for _, row := range rows {
			wrongByQuestion[row.QuestionID] = append(wrongByQuestion[row.QuestionID], WrongChoiceStat{
				ChoiceID:      row.ChoiceID,
				Text:          row.Text,
				WrongSelected: row.WrongSelected,
				SelectedTotal: row.SelectedTotal,
			})
		}
		for _, list := range wrongByQuestion {
			sort.Slice(list, func(i, j int) bool {
				return list[i].WrongSelected > list[j].WrongSelected
			})
		}
	}

	report := &PaperStatsReport{
		PaperID:     paper.ID,
		Title:       paper.Title,
		Summary:     summary,
		Questions:   make([]QuestionStatsRow, 0, len(paper.Questions)),
		GeneratedAt: time.Now(),
	}
	for _, q := range paper.Questions {
		agg := aggByQuestion[q.ID]
		row := QuestionStatsRow{
			QuestionID: q.ID,
			Name:       q.Name,
			Type:       q.Type,
			Level:      q.Level,
			Marks:      q.Marks,
			Attempts:   agg.Attempts,
			Correct:    agg.Correct,
			Wrong:      agg.Wrong,
		}
		if agg.AvgMarks != nil {
			row.AvgMarks = *agg.AvgMarks
		}
		if agg.Attempts > 0 {
			row.CorrectRate = float64(agg.Correct) / float64(agg.Attempts)
		}
		if withWrongChoices {
			row.WrongChoices = wrongByQuestion[q.ID]
		}
		report.Questions = append(report.Questions, row)
	}

	if err := s.cacheRepo.SetJSON(cacheKey, report, statsCacheTTL); err != nil {
		log.Printf("[StatsService] Не удалось закешировать отчёт по варианту #%d: %v", paperID, err)
	}
	return report, nil
}

// ChoiceStatsRow - счётчики одного варианта ответа с долей ошибочных
// выборов на попытку ответа
type ChoiceStatsRow struct {
	ChoiceID           uint    `json:"choice_id"`
	Text               string  `json:"text"`
	IsCorrect          bool    `json:"is_correct"`
	SelectedCount      int64   `json:"selected_count"`
	WrongSelectedCount int64   `json:"wrong_selected_count"`
	WrongRatePerAnswer float64 `json:"wrong_rate_per_attempt"`
}

// QuestionChoiceStatsReport - статистика выбора вариантов одного вопроса
type QuestionChoiceStatsReport struct {
	QuestionID   uint             `json:"question_id"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	TotalAnswers int64            `json:"total_answers"`
	Choices      []ChoiceStatsRow `json:"choices"`
}

// QuestionChoiceStats возвращает статистику выбора вариантов одного вопроса.
// Вопрос, на который ещё никто не отвечал, даёт валидный отчёт с нулями.
func (s *StatsService) QuestionChoiceStats(questionID uint) (*QuestionChoiceStatsReport, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if len(question.Choices) == 0 {
		return nil, fmt.Errorf("question %d has no choices: %w", questionID, apperrors.ErrNotFound)
	}

	totalAnswers, err := s.statRepo.CountQuestionAnswers(questionID)
	if err != nil {
		return nil, err
	}

	choiceIDs := make([]uint, 0, len(question.Choices))
	for _, c := range question.Choices {
		choiceIDs = append(choiceIDs, c.ID)
	}
	stats, err := s.statRepo.GetChoiceStats(choiceIDs)
	if err != nil {
		return nil, err
	}

	report := &QuestionChoiceStatsReport{
		QuestionID:   question.ID,
		Name:         question.Name,
		Type:         question.Type,
		TotalAnswers: totalAnswers,
		Choices:      make([]ChoiceStatsRow, 0, len(question.Choices)),
	}
	for _, c := range question.Choices {
		st := stats[c.ID]
		row := ChoiceStatsRow{
			ChoiceID:           c.ID,
			Text:               c.Text,
			IsCorrect:          c.IsCorrect,
			SelectedCount:      st.SelectedCount,
			WrongSelectedCount: st.WrongSelectedCount,
		}
		if totalAnswers > 0 {
			row.WrongRatePerAnswer = float64(st.WrongSelectedCount) / float64(totalAnswers)
		}
		report.Choices = append(report.Choices, row)
	}
	return report, nil
}
