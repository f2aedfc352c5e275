// Package scoring содержит чистое правило оценивания одного ответа.
// Никакого состояния и I/O: функция вызывается сервисом отправки попытки
// и напрямую из unit-тестов.
package scoring

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// Evaluate проверяет ответ на вопрос и возвращает признак правильности и
// количество начисленных баллов.
//
// Правила:
//   - Single Choice: правильно, если выбран ровно один вариант и он входит
//     в множество правильных;
//   - Multiple Choice: правильно, если множество выбранных вариантов в
//     точности совпадает с множеством правильных (ни больше, ни меньше);
//   - любой другой тип: неправильно, 0 баллов (явный fallback, не ошибка).
//
// За правильный ответ начисляется question.Marks, иначе 0.
func Evaluate(q *entity.Question, selected []uint) (bool, float64) {
	switch q.Type {
	case entity.QuestionTypeSingle:
		if len(selected) != 1 {
			return false, 0
		}
		if q.CorrectChoiceIDs()[selected[0]] {
			return true, float64(q.Marks)
		}
		return false, 0

	case entity.QuestionTypeMultiple:
		correct := q.CorrectChoiceIDs()
		picked := make(map[uint]bool, len(selected))
		for _, id := range selected {
			picked[id] = true
		}
		if len(picked) != len(correct) {
			return false, 0
		}
		for id := range picked {
			if !correct[id] {
				return false, 0
			}
		}
		return true, float64(q.Marks)

	default:
		return false, 0
	}
}
