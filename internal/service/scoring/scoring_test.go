package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

func singleChoiceQuestion(marks int) *entity.Question {
	return &entity.Question{
		ID:    1,
		Type:  entity.QuestionTypeSingle,
		Marks: marks,
		Choices: []entity.Choice{
			{ID: 10, Text: "правильный", IsCorrect: true},
			{ID: 11, Text: "неправильный", IsCorrect: false},
			{ID: 12, Text: "тоже неправильный", IsCorrect: false},
		},
	}
}

func multipleChoiceQuestion(marks int) *entity.Question {
	return &entity.Question{
		ID:    2,
		Type:  entity.QuestionTypeMultiple,
		Marks: marks,
		Choices: []entity.Choice{
			{ID: 1, IsCorrect: true},
			{ID: 2, IsCorrect: true},
			{ID: 3, IsCorrect: false},
			{ID: 4, IsCorrect: false},
		},
	}
}

func TestEvaluate_SingleChoice_Correct(t *testing.T) {
	q := singleChoiceQuestion(5)

	ok, marks := Evaluate(q, []uint{10})

	assert.True(t, ok, "Выбор правильного варианта должен быть засчитан")
	assert.Equal(t, 5.0, marks, "Начислены полные баллы вопроса")
}

func TestEvaluate_SingleChoice_WrongChoice(t *testing.T) {
	q := singleChoiceQuestion(5)

	ok, marks := Evaluate(q, []uint{11})

	assert.False(t, ok, "Выбор неправильного варианта не засчитывается")
	assert.Equal(t, 0.0, marks)
}

func TestEvaluate_SingleChoice_MultipleSelected(t *testing.T) {
	q := singleChoiceQuestion(5)

	// Выбор нескольких вариантов в single choice неправилен, даже если
	// правильный вариант среди них
	ok, marks := Evaluate(q, []uint{10, 11})

	assert.False(t, ok, "Несколько вариантов в single choice не засчитываются")
	assert.Equal(t, 0.0, marks)
}

func TestEvaluate_SingleChoice_NothingSelected(t *testing.T) {
	q := singleChoiceQuestion(5)

	ok, marks := Evaluate(q, nil)

	assert.False(t, ok, "Пустой выбор не засчитывается")
	assert.Equal(t, 0.0, marks)
}

func TestEvaluate_MultipleChoice_ExactMatch(t *testing.T) {
	q := multipleChoiceQuestion(8)

	ok, marks := Evaluate(q, []uint{2, 1})

	assert.True(t, ok, "Точное совпадение множеств засчитывается независимо от порядка")
	assert.Equal(t, 8.0, marks)
}

func TestEvaluate_MultipleChoice_Subset(t *testing.T) {
	q := multipleChoiceQuestion(8)

	ok, marks := Evaluate(q, []uint{1})

	assert.False(t, ok, "Неполный выбор правильных вариантов не засчитывается")
	assert.Equal(t, 0.0, marks)
}

func TestEvaluate_MultipleChoice_Superset(t *testing.T) {
	q := multipleChoiceQuestion(8)

	ok, marks := Evaluate(q, []uint{1, 2, 3})

	assert.False(t, ok, "Лишний вариант сверх правильного множества не засчитывается")
	assert.Equal(t, 0.0, marks)
}

func TestEvaluate_MultipleChoice_Disjoint(t *testing.T) {
	q := multipleChoiceQuestion(8)

	ok, marks := Evaluate(q, []uint{3, 4})

	assert.False(t, ok)
	assert.Equal(t, 0.0, marks)
}

func TestEvaluate_MultipleChoice_DuplicateSelections(t *testing.T) {
	q := multipleChoiceQuestion(8)

	// Повторы в выборе схлопываются до множества
	ok, marks := Evaluate(q, []uint{1, 1, 2})

	assert.True(t, ok, "Повторно перечисленный правильный вариант не меняет множество")
	assert.Equal(t, 8.0, marks)
}

func TestEvaluate_UnknownType(t *testing.T) {
	q := &entity.Question{
		ID:    3,
		Type:  "Essay",
		Marks: 10,
		Choices: []entity.Choice{
			{ID: 1, IsCorrect: true},
		},
	}

	ok, marks := Evaluate(q, []uint{1})

	assert.False(t, ok, "Неизвестный тип вопроса не засчитывается, а не падает")
	assert.Equal(t, 0.0, marks)
}
