package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_IsValidType(t *testing.T) {
	tests := []struct {
		qType string
		valid bool
	}{
		{QuestionTypeSingle, true},
		{QuestionTypeMultiple, true},
		{"Essay", false},
		{"", false},
		{"single choice", false}, // регистр имеет значение
	}

	for _, tt := range tests {
		q := Question{Type: tt.qType}
		assert.Equal(t, tt.valid, q.IsValidType(), "Тип %q", tt.qType)
	}
}

func TestQuestion_CorrectChoiceIDs(t *testing.T) {
	q := Question{
		Choices: []Choice{
			{ID: 1, IsCorrect: true},
			{ID: 2, IsCorrect: false},
			{ID: 3, IsCorrect: true},
		},
	}

	correct := q.CorrectChoiceIDs()

	assert.Len(t, correct, 2, "Только правильные варианты")
	assert.True(t, correct[1])
	assert.True(t, correct[3])
	assert.False(t, correct[2])
}

func TestQuestion_ChoiceCorrectness(t *testing.T) {
	q := Question{
		Choices: []Choice{
			{ID: 1, IsCorrect: true},
			{ID: 2, IsCorrect: false},
		},
	}

	m := q.ChoiceCorrectness()

	assert.Len(t, m, 2, "Все варианты, не только правильные")
	assert.True(t, m[1])
	assert.False(t, m[2])
	assert.False(t, m[99], "Отсутствующий вариант трактуется как неправильный")
}

func TestQuestionLevels(t *testing.T) {
	levels := QuestionLevels()

	assert.Equal(t, []string{Level1, Level2, Level3, Level4}, levels, "Фиксированный набор из четырёх уровней")
}

func TestTestPaper_TotalMarks(t *testing.T) {
	paper := TestPaper{
		Questions: []Question{
			{Marks: 5},
			{Marks: 3},
			{Marks: 2},
		},
	}

	assert.Equal(t, 10, paper.TotalMarks())
	assert.Equal(t, 0, (&TestPaper{}).TotalMarks(), "Вариант без вопросов даёт ноль")
}

func TestAttempt_IsSubmitted(t *testing.T) {
	attempt := Attempt{}
	assert.False(t, attempt.IsSubmitted(), "Открытая попытка не считается отправленной")

	now := attempt.StartedAt
	attempt.SubmittedAt = &now
	assert.True(t, attempt.IsSubmitted())
}
