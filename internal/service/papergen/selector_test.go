package papergen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

func makePool(marks ...int) []entity.Question {
	pool := make([]entity.Question, 0, len(marks))
	for i, m := range marks {
		pool = append(pool, entity.Question{ID: uint(i + 1), Marks: m})
	}
	return pool
}

// ============================================================================
// PickByCount
// ============================================================================

func TestPickByCount_ExactPoolSize(t *testing.T) {
	pool := makePool(1, 2, 3)

	picked, err := PickByCount(pool, 3, "level1")

	require.NoError(t, err, "Запрос ровно размера пула должен быть успешным")
	assert.Len(t, picked, 3, "Возвращён весь пул")

	ids := make(map[uint]bool)
	for _, q := range picked {
		ids[q.ID] = true
	}
	assert.Len(t, ids, 3, "Вопросы не повторяются")
}

func TestPickByCount_PoolTooSmall(t *testing.T) {
	pool := makePool(1, 2, 3)

	picked, err := PickByCount(pool, 4, "level1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInfeasible), "Нехватка пула - это Infeasible, а не частичный добор")
	assert.Nil(t, picked, "При отказе вопросы не возвращаются")
	assert.Contains(t, err.Error(), "level1", "Текст ошибки называет уровень")
	assert.Contains(t, err.Error(), "need 4", "Текст ошибки называет требуемое количество")
}

func TestPickByCount_Subset(t *testing.T) {
	pool := makePool(1, 1, 1, 1, 1)

	picked, err := PickByCount(pool, 2, "level2")

	require.NoError(t, err)
	assert.Len(t, picked, 2)

	// Выбранные вопросы принадлежат пулу и не повторяются
	ids := make(map[uint]bool)
	for _, q := range picked {
		assert.False(t, ids[q.ID], "Вопрос не должен повторяться")
		ids[q.ID] = true
		assert.True(t, q.ID >= 1 && q.ID <= 5)
	}
}

func TestPickByCount_DoesNotMutatePool(t *testing.T) {
	pool := makePool(1, 2, 3, 4)
	originalIDs := []uint{pool[0].ID, pool[1].ID, pool[2].ID, pool[3].ID}

	_, err := PickByCount(pool, 2, "level1")

	require.NoError(t, err)
	for i, id := range originalIDs {
		assert.Equal(t, id, pool[i].ID, "Исходный пул не перемешивается")
	}
}

// ============================================================================
// PickByMarks
// ============================================================================

func TestPickByMarks_ExactSum(t *testing.T) {
	pool := makePool(2, 3, 5, 7)

	picked, err := PickByMarks(pool, 5, "level3")

	require.NoError(t, err, "Сумма 5 достижима: {2,3} или {5}")

	sum := 0
	ids := make(map[uint]bool)
	for _, q := range picked {
		sum += q.Marks
		assert.False(t, ids[q.ID], "Вопрос не используется дважды")
		ids[q.ID] = true
	}
	assert.Equal(t, 5, sum, "Сумма баллов ровно равна цели")
}

func TestPickByMarks_WholePool(t *testing.T) {
	pool := makePool(2, 2, 2)

	picked, err := PickByMarks(pool, 6, "level1")

	require.NoError(t, err)
	assert.Len(t, picked, 3, "Цель равна сумме всего пула")
}

func TestPickByMarks_UnreachableTarget(t *testing.T) {
	pool := makePool(2, 2, 2)

	picked, err := PickByMarks(pool, 5, "level1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInfeasible), "Недостижимая сумма - это Infeasible")
	assert.Nil(t, picked)
	assert.Contains(t, err.Error(), "level1")
}

func TestPickByMarks_TargetBelowAnyQuestion(t *testing.T) {
	pool := makePool(2, 3, 4)

	_, err := PickByMarks(pool, 1, "level2")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInfeasible), "Цель меньше минимального балла недостижима")
}

func TestPickByMarks_EmptyPool(t *testing.T) {
	_, err := PickByMarks(nil, 10, "level4")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInfeasible))
}

func TestPickByMarks_RepeatedRuns_AlwaysExact(t *testing.T) {
	// Перемешивание рандомизирует состав, но инвариант точной суммы
	// держится на каждом прогоне
	pool := makePool(1, 2, 3, 4, 5, 6)

	for i := 0; i < 50; i++ {
		picked, err := PickByMarks(pool, 7, "level1")
		require.NoError(t, err)

		sum := 0
		ids := make(map[uint]bool)
		for _, q := range picked {
			sum += q.Marks
			assert.False(t, ids[q.ID])
			ids[q.ID] = true
		}
		assert.Equal(t, 7, sum)
	}
}

func TestPickByMarks_DoesNotMutatePool(t *testing.T) {
	pool := makePool(1, 2, 3)
	originalIDs := []uint{pool[0].ID, pool[1].ID, pool[2].ID}

	_, err := PickByMarks(pool, 3, "level1")

	require.NoError(t, err)
	for i, id := range originalIDs {
		assert.Equal(t, id, pool[i].ID, "Исходный пул не перемешивается")
	}
}
