package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// ============================================================================
// Моки для AttemptService
// ============================================================================

// MockAttemptRepo реализует repository.AttemptRepository
type MockAttemptRepo struct {
	mock.Mock
}

func (m *MockAttemptRepo) Create(attempt *entity.Attempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockAttemptRepo) GetByToken(token uuid.UUID) (*entity.Attempt, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepo) LockByToken(tx *gorm.DB, token uuid.UUID) (*entity.Attempt, error) {
	args := m.Called(tx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepo) CreateAnswers(tx *gorm.DB, answers []entity.AttemptAnswer) error {
	args := m.Called(tx, answers)
	return args.Error(0)
}

func (m *MockAttemptRepo) FinalizeSubmission(tx *gorm.DB, attempt *entity.Attempt) error {
	args := m.Called(tx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepo) GetAnswers(attemptID uuid.UUID) ([]entity.AttemptAnswer, error) {
	args := m.Called(attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AttemptAnswer), args.Error(1)
}

// MockQuestionRepo реализует repository.QuestionRepository
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) List(filter repository.QuestionFilter) ([]entity.Question, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepo) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetByLevel(level string) ([]entity.Question, error) {
	args := m.Called(level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetByIDsWithChoices(tx *gorm.DB, ids []uint) ([]entity.Question, error) {
	args := m.Called(tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

// MockStatRepo реализует repository.StatRepository
type MockStatRepo struct {
	mock.Mock
}

func (m *MockStatRepo) BumpQuestion(tx *gorm.DB, questionID uint, correct bool) error {
	args := m.Called(tx, questionID, correct)
	return args.Error(0)
}

func (m *MockStatRepo) BumpChoice(tx *gorm.DB, choiceID uint, selected, wrongSelected int64) error {
	args := m.Called(tx, choiceID, selected, wrongSelected)
	return args.Error(0)
}

func (m *MockStatRepo) GetPaperSummary(paperID uint) (*repository.PaperSummary, error) {
	args := m.Called(paperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PaperSummary), args.Error(1)
}

func (m *MockStatRepo) GetQuestionAggregates(paperID uint) ([]repository.QuestionAggregate, error) {
	args := m.Called(paperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.QuestionAggregate), args.Error(1)
}

func (m *MockStatRepo) GetWrongChoiceRows(questionIDs []uint) ([]repository.WrongChoiceRow, error) {
	args := m.Called(questionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.WrongChoiceRow), args.Error(1)
}

func (m *MockStatRepo) GetChoiceStats(choiceIDs []uint) (map[uint]entity.ChoiceStat, error) {
	args := m.Called(choiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]entity.ChoiceStat), args.Error(1)
}

func (m *MockStatRepo) CountQuestionAnswers(questionID uint) (int64, error) {
	args := m.Called(questionID)
	return args.Get(0).(int64), args.Error(1)
}

// createTestAttemptService создаёт AttemptService с моками; db=nil, т.к.
// submitTx получает транзакцию снаружи
func createTestAttemptService(
	attemptRepo *MockAttemptRepo,
	questionRepo *MockQuestionRepo,
	statRepo *MockStatRepo,
) *AttemptService {
	return &AttemptService{
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		statRepo:     statRepo,
	}
}

func openAttempt(startedAt time.Time) *entity.Attempt {
	return &entity.Attempt{
		ID:           uuid.New(),
		AttemptToken: uuid.New(),
		PaperID:      1,
		StudentID:    uuid.New(),
		StartedAt:    startedAt,
	}
}

// ============================================================================
// Тесты чистой фазы buildSubmission
// ============================================================================

func TestBuildSubmission_SingleChoiceCorrect(t *testing.T) {
	attemptID := uuid.New()
	questions := []entity.Question{
		{
			ID:    100,
			Type:  entity.QuestionTypeSingle,
			Marks: 5,
			Choices: []entity.Choice{
				{ID: 10, IsCorrect: true},
				{ID: 11, IsCorrect: false},
			},
		},
	}
	answers := []SubmitAnswerInput{
		{QuestionID: 100, SelectedChoiceIDs: []uint{10}},
	}

	outcome, err := buildSubmission(attemptID, questions, answers)

	require.NoError(t, err)
	assert.Equal(t, 5.0, outcome.score, "Начислены полные баллы вопроса")
	assert.Equal(t, 5.0, outcome.totalMarks)
	require.Len(t, outcome.answers, 1)
	assert.True(t, outcome.answers[0].IsCorrect)
	assert.Equal(t, 5.0, outcome.answers[0].MarksAwarded)
	assert.Equal(t, attemptID, outcome.answers[0].AttemptID)

	// Правильный выбор увеличивает selected, но не wrong_selected
	require.Contains(t, outcome.choiceDeltas, uint(10))
	assert.Equal(t, int64(1), outcome.choiceDeltas[10].selected)
	assert.Equal(t, int64(0), outcome.choiceDeltas[10].wrongSelected)
}

func TestBuildSubmission_WrongAnswerStillAccumulatesTotal(t *testing.T) {
	questions := []entity.Question{
		{
			ID:    100,
			Type:  entity.QuestionTypeSingle,
			Marks: 5,
			Choices: []entity.Choice{
				{ID: 10, IsCorrect: true},
				{ID: 11, IsCorrect: false},
			},
		},
	}
	answers := []SubmitAnswerInput{
		{QuestionID: 100, SelectedChoiceIDs: []uint{11}},
	}

	outcome, err := buildSubmission(uuid.New(), questions, answers)

	require.NoError(t, err)
	assert.Equal(t, 0.0, outcome.score)
	assert.Equal(t, 5.0, outcome.totalMarks, "total_marks растёт независимо от правильности")
	assert.Equal(t, int64(1), outcome.choiceDeltas[11].selected)
	assert.Equal(t, int64(1), outcome.choiceDeltas[11].wrongSelected, "Неправильный выбор увеличивает wrong_selected")
}

func TestBuildSubmission_IncompleteMultipleChoice(t *testing.T) {
	// Правильное множество {1,2}, выбран только {1}: ответ неверен, но
	// вариант 1 сам по себе правильный и wrong_selected не растёт
	questions := []entity.Question{
		{
			ID:    200,
			Type:  entity.QuestionTypeMultiple,
			Marks: 8,
			Choices: []entity.Choice{
				{ID: 1, IsCorrect: true},
				{ID: 2, IsCorrect: true},
				{ID: 3, IsCorrect: false},
			},
		},
	}
	answers := []SubmitAnswerInput{
		{QuestionID: 200, SelectedChoiceIDs: []uint{1}},
	}

	outcome, err := buildSubmission(uuid.New(), questions, answers)

	require.NoError(t, err)
	require.Len(t, outcome.answers, 1)
	assert.False(t, outcome.answers[0].IsCorrect)
	assert.Equal(t, 0.0, outcome.answers[0].MarksAwarded)
	assert.Equal(t, int64(1), outcome.choiceDeltas[1].selected)
	assert.Equal(t, int64(0), outcome.choiceDeltas[1].wrongSelected,
		"Выбор правильного варианта при неполном ответе не считается ошибочным выбором")
}

func TestBuildSubmission_UnknownChoiceCountsAsWrong(t *testing.T) {
	questions := []entity.Question{
		{
			ID:    100,
			Type:  entity.QuestionTypeSingle,
			Marks: 3,
			Choices: []entity.Choice{
				{ID: 10, IsCorrect: true},
			},
		},
	}
	answers := []SubmitAnswerInput{
		{QuestionID: 100, SelectedChoiceIDs: []uint{999}},
	}

	outcome, err := buildSubmission(uuid.New(), questions, answers)

	require.NoError(t, err)
	assert.False(t, outcome.answers[0].IsCorrect)
	assert.Equal(t, int64(1), outcome.choiceDeltas[999].selected)
	assert.Equal(t, int64(1), outcome.choiceDeltas[999].wrongSelected,
		"Неизвестный идентификатор варианта считается неправильным выбором")
}

func TestBuildSubmission_UnknownQuestionRejected(t *testing.T) {
	questions := []entity.Question{
		{ID: 100, Type: entity.QuestionTypeSingle, Marks: 5},
	}
	answers := []SubmitAnswerInput{
		{QuestionID: 100, SelectedChoiceIDs: []uint{1}},
		{QuestionID: 777, SelectedChoiceIDs: []uint{2}},
	}

	outcome, err := buildSubmission(uuid.New(), questions, answers)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation), "Ответ на чужой вопрос отвергается, а не падает")
	assert.Nil(t, outcome)
}

func TestBuildSubmission_DuplicateQuestionRejected(t *testing.T) {
	questions := []entity.Question{
		{ID: 100, Type: entity.QuestionTypeSingle, Marks: 5},
	}
	answers := []SubmitAnswerInput{
		{QuestionID: 100, SelectedChoiceIDs: []uint{1}},
		{QuestionID: 100, SelectedChoiceIDs: []uint{2}},
	}

	outcome, err := buildSubmission(uuid.New(), questions, answers)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Nil(t, outcome)
}

func TestBuildSubmission_ChoiceDeltasBatchedAcrossAnswers(t *testing.T) {
	// Один затронутый вариант - одна дельта, сколько бы ответов его ни выбрало
	questions := []entity.Question{
		{
			ID: 1, Type: entity.QuestionTypeSingle, Marks: 2,
			Choices: []entity.Choice{{ID: 10, IsCorrect: true}, {ID: 11, IsCorrect: false}},
		},
		{
			ID: 2, Type: entity.QuestionTypeSingle, Marks: 2,
			Choices: []entity.Choice{{ID: 20, IsCorrect: true}, {ID: 21, IsCorrect: false}},
		},
	}
	answers := []SubmitAnswerInput{
		{QuestionID: 1, SelectedChoiceIDs: []uint{10}},
		{QuestionID: 2, SelectedChoiceIDs: []uint{21}},
	}

	outcome, err := buildSubmission(uuid.New(), questions, answers)

	require.NoError(t, err)
	assert.Len(t, outcome.choiceDeltas, 2, "По одной дельте на затронутый вариант")
	assert.Equal(t, []uint{10, 21}, outcome.sortedChoiceIDs(), "Дельты обходятся в возрастающем порядке")
	assert.Equal(t, 2.0, outcome.score)
	assert.Equal(t, 4.0, outcome.totalMarks)
}

// ============================================================================
// Тесты submitTx с моками репозиториев
// ============================================================================

func TestSubmitTx_Success(t *testing.T) {
	// Arrange
	mockAttemptRepo := new(MockAttemptRepo)
	mockQuestionRepo := new(MockQuestionRepo)
	mockStatRepo := new(MockStatRepo)

	startedAt := time.Now().Add(-10 * time.Minute)
	attempt := openAttempt(startedAt)
	questions := []entity.Question{
		{
			ID:    100,
			Type:  entity.QuestionTypeSingle,
			Marks: 5,
			Choices: []entity.Choice{
				{ID: 10, IsCorrect: true},
				{ID: 11, IsCorrect: false},
			},
		},
	}

	mockAttemptRepo.On("LockByToken", mock.Anything, attempt.AttemptToken).Return(attempt, nil)
	mockQuestionRepo.On("GetByIDsWithChoices", mock.Anything, []uint{100}).Return(questions, nil)
	mockAttemptRepo.On("CreateAnswers", mock.Anything, mock.Anything).Return(nil)
	mockAttemptRepo.On("FinalizeSubmission", mock.Anything, attempt).Return(nil)
	mockStatRepo.On("BumpQuestion", mock.Anything, uint(100), true).Return(nil)
	mockStatRepo.On("BumpChoice", mock.Anything, uint(10), int64(1), int64(0)).Return(nil)

	svc := createTestAttemptService(mockAttemptRepo, mockQuestionRepo, mockStatRepo)

	// Act
	result, answers, err := svc.submitTx(nil, SubmitAttemptInput{
		AttemptToken: attempt.AttemptToken,
		Answers: []SubmitAnswerInput{
			{QuestionID: 100, SelectedChoiceIDs: []uint{10}},
		},
	})

	// Assert
	require.NoError(t, err, "Отправка должна быть успешной")
	assert.Equal(t, 5.0, result.Score)
	assert.Equal(t, 5.0, result.TotalMarks)
	require.NotNil(t, result.SubmittedAt, "submitted_at проставлен")
	assert.GreaterOrEqual(t, result.DurationSeconds, 599, "Длительность выведена из временных меток")
	require.Len(t, answers, 1)
	assert.True(t, answers[0].IsCorrect)
	mockAttemptRepo.AssertExpectations(t)
	mockQuestionRepo.AssertExpectations(t)
	mockStatRepo.AssertExpectations(t)
}

func TestSubmitTx_AlreadySubmitted_NoSideEffects(t *testing.T) {
	// Arrange
	mockAttemptRepo := new(MockAttemptRepo)
	mockQuestionRepo := new(MockQuestionRepo)
	mockStatRepo := new(MockStatRepo)

	submittedAt := time.Now().Add(-time.Hour)
	attempt := openAttempt(submittedAt.Add(-time.Hour))
	attempt.SubmittedAt = &submittedAt
	attempt.Score = 5

	mockAttemptRepo.On("LockByToken", mock.Anything, attempt.AttemptToken).Return(attempt, nil)

	svc := createTestAttemptService(mockAttemptRepo, mockQuestionRepo, mockStatRepo)

	// Act
	result, answers, err := svc.submitTx(nil, SubmitAttemptInput{
		AttemptToken: attempt.AttemptToken,
		Answers: []SubmitAnswerInput{
			{QuestionID: 100, SelectedChoiceIDs: []uint{11}},
		},
	})

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "Повторная отправка - это Conflict")
	assert.Nil(t, result)
	assert.Nil(t, answers)
	assert.Equal(t, 5.0, attempt.Score, "Счёт первой отправки не изменился")

	// Никаких побочных действий после отказа
	mockAttemptRepo.AssertNotCalled(t, "CreateAnswers", mock.Anything, mock.Anything)
	mockAttemptRepo.AssertNotCalled(t, "FinalizeSubmission", mock.Anything, mock.Anything)
	mockStatRepo.AssertNotCalled(t, "BumpQuestion", mock.Anything, mock.Anything, mock.Anything)
	mockStatRepo.AssertNotCalled(t, "BumpChoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitTx_AttemptNotFound(t *testing.T) {
	mockAttemptRepo := new(MockAttemptRepo)
	mockQuestionRepo := new(MockQuestionRepo)
	mockStatRepo := new(MockStatRepo)

	token := uuid.New()
	mockAttemptRepo.On("LockByToken", mock.Anything, token).Return(nil, apperrors.ErrNotFound)

	svc := createTestAttemptService(mockAttemptRepo, mockQuestionRepo, mockStatRepo)

	_, _, err := svc.submitTx(nil, SubmitAttemptInput{AttemptToken: token})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSubmitTx_UnknownQuestionAbortsBeforeWrites(t *testing.T) {
	mockAttemptRepo := new(MockAttemptRepo)
	mockQuestionRepo := new(MockQuestionRepo)
	mockStatRepo := new(MockStatRepo)

	attempt := openAttempt(time.Now())
	mockAttemptRepo.On("LockByToken", mock.Anything, attempt.AttemptToken).Return(attempt, nil)
	mockQuestionRepo.On("GetByIDsWithChoices", mock.Anything, []uint{777}).
		Return([]entity.Question{}, nil)

	svc := createTestAttemptService(mockAttemptRepo, mockQuestionRepo, mockStatRepo)

	_, _, err := svc.submitTx(nil, SubmitAttemptInput{
		AttemptToken: attempt.AttemptToken,
		Answers: []SubmitAnswerInput{
			{QuestionID: 777, SelectedChoiceIDs: []uint{1}},
		},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	mockAttemptRepo.AssertNotCalled(t, "CreateAnswers", mock.Anything, mock.Anything)
	mockAttemptRepo.AssertNotCalled(t, "FinalizeSubmission", mock.Anything, mock.Anything)
}

func TestSubmitTx_SubmittedAtFromRequest(t *testing.T) {
	mockAttemptRepo := new(MockAttemptRepo)
	mockQuestionRepo := new(MockQuestionRepo)
	mockStatRepo := new(MockStatRepo)

	startedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	submittedAt := startedAt.Add(25 * time.Minute)
	attempt := openAttempt(startedAt)
	questions := []entity.Question{
		{
			ID: 100, Type: entity.QuestionTypeSingle, Marks: 5,
			Choices: []entity.Choice{{ID: 10, IsCorrect: true}},
		},
	}

	mockAttemptRepo.On("LockByToken", mock.Anything, attempt.AttemptToken).Return(attempt, nil)
	mockQuestionRepo.On("GetByIDsWithChoices", mock.Anything, []uint{100}).Return(questions, nil)
	mockAttemptRepo.On("CreateAnswers", mock.Anything, mock.Anything).Return(nil)
	mockAttemptRepo.On("FinalizeSubmission", mock.Anything, attempt).Return(nil)
	mockStatRepo.On("BumpQuestion", mock.Anything, uint(100), true).Return(nil)
	mockStatRepo.On("BumpChoice", mock.Anything, uint(10), int64(1), int64(0)).Return(nil)

	svc := createTestAttemptService(mockAttemptRepo, mockQuestionRepo, mockStatRepo)

	result, _, err := svc.submitTx(nil, SubmitAttemptInput{
		AttemptToken: attempt.AttemptToken,
		SubmittedAt:  &submittedAt,
		Answers: []SubmitAnswerInput{
			{QuestionID: 100, SelectedChoiceIDs: []uint{10}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, submittedAt, *result.SubmittedAt)
	assert.Equal(t, 1500, result.DurationSeconds, "Длительность всегда выводится как submitted_at - started_at")
}
