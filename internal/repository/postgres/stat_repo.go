package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// StatRepo реализует repository.StatRepository.
// Центральное свойство корректности: каждый счётчик меняется относительным
// инкрементом на уровне SQL (INSERT ... ON CONFLICT ... DO UPDATE
// SET col = col + delta), поэтому конкурирующие отправки, задевшие один и
// тот же вопрос или вариант, не теряют обновлений. Создание строки и
// инкремент - одна атомарная операция, дубликаты при одновременном первом
// касании исключены уникальным индексом.
type StatRepo struct {
	db *gorm.DB
}

// NewStatRepo создает новый репозиторий статистики
func NewStatRepo(db *gorm.DB) *StatRepo {
	return &StatRepo{db: db}
}

// BumpQuestion увеличивает счётчики вопроса на один ответ
func (r *StatRepo) BumpQuestion(tx *gorm.DB, questionID uint, correct bool) error {
	correctDelta := 0
	wrongDelta := 0
	if correct {
		correctDelta = 1
	} else {
		wrongDelta = 1
	}

	sql := `
	INSERT INTO question_stats (question_id, attempts_count, correct_count, wrong_count)
	VALUES (?, 1, ?, ?)
	ON CONFLICT (question_id) DO UPDATE SET
		attempts_count = question_stats.attempts_count + 1,
		correct_count  = question_stats.correct_count + EXCLUDED.correct_count,
		wrong_count    = question_stats.wrong_count + EXCLUDED.wrong_count`

	return tx.Exec(sql, questionID, correctDelta, wrongDelta).Error
}

// BumpChoice прибавляет просуммированные дельты одной отправки к счётчикам
// варианта ответа
func (r *StatRepo) BumpChoice(tx *gorm.DB, choiceID uint, selected, wrongSelected int64) error {
	sql := `
	INSERT INTO choice_stats (choice_id, selected_count, wrong_selected_count)
	VALUES (?, ?, ?)
	ON CONFLICT (choice_id) DO UPDATE SET
		selected_count       = choice_stats.selected_count + EXCLUDED.selected_count,
		wrong_selected_count = choice_stats.wrong_selected_count + EXCLUDED.wrong_selected_count`

	return tx.Exec(sql, choiceID, selected, wrongSelected).Error
}

// GetPaperSummary возвращает сводку по завершённым попыткам варианта
func (r *StatRepo) GetPaperSummary(paperID uint) (*repository.PaperSummary, error) {
	var summary repository.PaperSummary
	sql := `
	SELECT
		COUNT(id)             AS total_attempts,
		AVG(score)            AS avg_score,
		MAX(score)            AS max_score,
		SUM(score)            AS sum_score,
		AVG(duration_seconds) AS avg_duration
	FROM attempts
	WHERE paper_id = ? AND submitted_at IS NOT NULL`

	err := r.db.Raw(sql, paperID).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetQuestionAggregates возвращает агрегаты по каждому вопросу варианта
func (r *StatRepo) GetQuestionAggregates(paperID uint) ([]repository.QuestionAggregate, error) {
	var rows []repository.QuestionAggregate
	sql := `
	SELECT
		aa.question_id                                   AS question_id,
		COUNT(aa.id)                                     AS attempts,
		COUNT(aa.id) FILTER (WHERE aa.is_correct)        AS correct,
		COUNT(aa.id) FILTER (WHERE NOT aa.is_correct)    AS wrong,
		AVG(aa.marks_awarded)                            AS avg_marks
	FROM attempt_answers aa
	JOIN attempts a ON a.id = aa.attempt_id
	WHERE a.paper_id = ?
	GROUP BY aa.question_id
	ORDER BY aa.question_id`

	err := r.db.Raw(sql, paperID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetWrongChoiceRows возвращает статистику ошибочных вариантов для набора
// вопросов. Строка choice_stats может отсутствовать (по варианту ещё никто
// не кликал) - счётчики тогда нулевые.
func (r *StatRepo) GetWrongChoiceRows(questionIDs []uint) ([]repository.WrongChoiceRow, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var rows []repository.WrongChoiceRow
	sql := `
	SELECT
		c.question_id                        AS question_id,
		c.id                                 AS choice_id,
		c.text                               AS text,
		COALESCE(cs.wrong_selected_count, 0) AS wrong_selected,
		COALESCE(cs.selected_count, 0)       AS selected_total
	FROM choices c
	LEFT JOIN choice_stats cs ON cs.choice_id = c.id
	WHERE c.question_id IN ? AND c.is_correct = false
	ORDER BY c.question_id, c.id`

	err := r.db.Raw(sql, questionIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetChoiceStats возвращает накопленные счётчики для набора вариантов.
// Отсутствие строки - валидное состояние с нулевыми счётчиками.
func (r *StatRepo) GetChoiceStats(choiceIDs []uint) (map[uint]entity.ChoiceStat, error) {
	result := make(map[uint]entity.ChoiceStat, len(choiceIDs))
	if len(choiceIDs) == 0 {
		return result, nil
	}

	var stats []entity.ChoiceStat
	err := r.db.Where("choice_id IN ?", choiceIDs).Find(&stats).Error
	if err != nil {
		return nil, err
	}
	for _, s := range stats {
		result[s.ChoiceID] = s
	}
	return result, nil
}

// CountQuestionAnswers возвращает общее число ответов на вопрос
func (r *StatRepo) CountQuestionAnswers(questionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.AttemptAnswer{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count, err
}
