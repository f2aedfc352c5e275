package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// PaperSummary - сводка по варианту: только завершённые попытки
type PaperSummary struct {
	TotalAttempts int64    `json:"total_attempts"`
	AvgScore      *float64 `json:"avg_score"`
	MaxScore      *float64 `json:"max_score"`
	SumScore      *float64 `json:"sum_score"`
	AvgDuration   *float64 `json:"avg_duration"`
}

// QuestionAggregate - агрегаты по одному вопросу варианта
type QuestionAggregate struct {
	QuestionID uint     `json:"question_id"`
	Attempts   int64    `json:"attempts"`
	Correct    int64    `json:"correct"`
	Wrong      int64    `json:"wrong"`
	AvgMarks   *float64 `json:"avg_marks"`
}

// WrongChoiceRow - накопленная статистика по неправильному варианту ответа
type WrongChoiceRow struct {
	QuestionID    uint   `json:"-"`
	ChoiceID      uint   `json:"choice_id"`
	Text          string `json:"text"`
	WrongSelected int64  `json:"wrong_selected"`
	SelectedTotal int64  `json:"selected_total"`
}

// StatRepository - агрегатор статистики. Все изменения счётчиков выполняются
// относительными инкрементами на уровне хранилища (никогда не
// read-modify-write в памяти приложения), поэтому конкурирующие отправки не
// теряют обновления.
type StatRepository interface {
	// BumpQuestion атомарно создаёт строку статистики вопроса (при первом
	// вкладе) и увеличивает attempts_count и correct_count либо wrong_count.
	BumpQuestion(tx *gorm.DB, questionID uint, correct bool) error

	// BumpChoice атомарно создаёт строку статистики варианта и прибавляет
	// заранее просуммированные дельты одной отправки.
	BumpChoice(tx *gorm.DB, choiceID uint, selected, wrongSelected int64) error

	// Запросы отчётного слоя
	GetPaperSummary(paperID uint) (*PaperSummary, error)
	GetQuestionAggregates(paperID uint) ([]QuestionAggregate, error)
	GetWrongChoiceRows(questionIDs []uint) ([]WrongChoiceRow, error)
	GetChoiceStats(choiceIDs []uint) (map[uint]entity.ChoiceStat, error)
	CountQuestionAnswers(questionID uint) (int64, error)
}
