// Package papergen содержит отбор вопросов для генерации варианта по
// требованию. Отбор не имеет состояния, работает только с переданным пулом
// и не требует блокировок: конкурирующие вызовы над одним пулом независимы
// и могут законно вернуть разные подмножества.
package papergen

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// PickByCount выбирает ровно need вопросов равновероятно без возвращения.
// Если в пуле меньше need вопросов - жёсткий отказ, частичного добора нет.
func PickByCount(pool []entity.Question, need int, levelName string) ([]entity.Question, error) {
	if len(pool) < need {
		return nil, fmt.Errorf(
			"[%s] not enough questions: need %d, only %d available: %w",
			levelName, need, len(pool), apperrors.ErrInfeasible,
		)
	}

	shuffled := make([]entity.Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:need], nil
}

// PickByMarks выбирает подмножество пула, сумма баллов которого РОВНО равна
// target. Пул перемешивается для рандомизации результата между вызовами,
// затем выполняется однопроходный поиск подмножества: достижимая частичная
// сумма -> список индексов, которыми она получена, начиная с {0 -> пусто}.
// Для каждого вопроса расширяются только суммы, записанные ДО его
// рассмотрения (снимок), чтобы один вопрос не был учтён дважды за проход.
// Возвращается первый путь, достигший target.
//
// Политика "первый найденный, не лучший": поиск не перебирает все допустимые
// подмножества, и при неудачном порядке перемешивания может вернуть отказ,
// хотя решение существует при другом порядке. Повторный вызов генерации -
// это повторное перемешивание.
func PickByMarks(pool []entity.Question, target int, levelName string) ([]entity.Question, error) {
	shuffled := make([]entity.Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	type reached struct {
		sum  int
		used []int
	}

	paths := map[int][]int{0: {}}

	for idx, q := range shuffled {
		m := q.Marks

		// Снимок достижимых сумм до учёта текущего вопроса
		snapshot := make([]reached, 0, len(paths))
		for sum, used := range paths {
			snapshot = append(snapshot, reached{sum: sum, used: used})
		}

		for _, cur := range snapshot {
			newSum := cur.sum + m
			if newSum > target {
				continue
			}
			if _, ok := paths[newSum]; ok {
				continue // сумма уже достигнута более ранним путём
			}

			path := make([]int, len(cur.used), len(cur.used)+1)
			copy(path, cur.used)
			path = append(path, idx)
			paths[newSum] = path

			if newSum == target {
				picked := make([]entity.Question, 0, len(path))
				for _, i := range path {
					picked = append(picked, shuffled[i])
				}
				return picked, nil
			}
		}
	}

	return nil, fmt.Errorf(
		"[%s] cannot reach exact total marks = %d with available questions: %w",
		levelName, target, apperrors.ErrInfeasible,
	)
}
