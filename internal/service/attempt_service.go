package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/internal/service/scoring"
)

// AttemptService управляет жизненным циклом попытки: старт и атомарная
// идемпотентная отправка с оцениванием и обновлением статистики.
type AttemptService struct {
	attemptRepo  repository.AttemptRepository
	questionRepo repository.QuestionRepository
	paperRepo    repository.PaperRepository
	studentRepo  repository.StudentRepository
	statRepo     repository.StatRepository
	db           *gorm.DB
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	paperRepo repository.PaperRepository,
	studentRepo repository.StudentRepository,
	statRepo repository.StatRepository,
	db *gorm.DB,
) *AttemptService {
	return &AttemptService{
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		paperRepo:    paperRepo,
		studentRepo:  studentRepo,
		statRepo:     statRepo,
		db:           db,
	}
}

// StartAttemptInput - входные данные старта попытки
type StartAttemptInput struct {
	PaperID   uint
	StudentNo string
	Name      string
	Email     string
	StartedAt *time.Time
	UserAgent string
	IPAddress string
}

// Start создает попытку в открытом состоянии. Учащийся находится или
// создаётся по student_no; имя и email обновляются, если изменились.
func (s *AttemptService) Start(in StartAttemptInput) (*entity.Attempt, error) {
	student, err := s.studentRepo.GetOrCreate(&entity.Student{
		Name:      in.Name,
		StudentNo: in.StudentNo,
		Email:     in.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}

	dirty := false
	if student.Name != in.Name {
		student.Name = in.Name
		dirty = true
	}
	if in.Email != "" && student.Email != in.Email {
		student.Email = in.Email
		dirty = true
	}
	if dirty {
		if err := s.studentRepo.Update(student); err != nil {
			return nil, fmt.Errorf("failed to update student: %w", err)
		}
	}

	paper, err := s.paperRepo.GetByID(in.PaperID)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	if in.StartedAt != nil {
		startedAt = *in.StartedAt
	}

	attempt := &entity.Attempt{
		PaperID:   paper.ID,
		StudentID: student.ID,
		StartedAt: startedAt,
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}
	attempt.Student = *student

	log.Printf("[AttemptService] Попытка %s начата: вариант #%d, учащийся %s", attempt.ID, paper.ID, student.StudentNo)
	return attempt, nil
}

// SubmitAnswerInput - один ответ в составе отправки
type SubmitAnswerInput struct {
	QuestionID        uint
	SelectedChoiceIDs []uint
	TextAnswer        string
	TimeSpent         int
}

// SubmitAttemptInput - входные данные отправки попытки
type SubmitAttemptInput struct {
	AttemptToken uuid.UUID
	SubmittedAt  *time.Time
	Answers      []SubmitAnswerInput
}

// Submit выполняет отправку попытки как одну атомарную транзакцию:
// блокировка строки попытки, отказ при повторной отправке, пакетная выборка
// вопросов, оценивание, пакетная запись ответов, одно обновление итогов и
// инкременты статистики. Любая ошибка откатывает всё - частичное состояние
// никогда не наблюдаемо.
func (s *AttemptService) Submit(in SubmitAttemptInput) (*entity.Attempt, []entity.AttemptAnswer, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during attempt submission: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	attempt, answers, err := s.submitTx(tx, in)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	log.Printf("[AttemptService] Попытка %s отправлена: score=%.1f/%.1f, ответов=%d",
		attempt.ID, attempt.Score, attempt.TotalMarks, len(answers))
	return attempt, answers, nil
}

// submitTx - тело отправки внутри переданной транзакции
func (s *AttemptService) submitTx(tx *gorm.DB, in SubmitAttemptInput) (*entity.Attempt, []entity.AttemptAnswer, error) {
	attempt, err := s.attemptRepo.LockByToken(tx, in.AttemptToken)
	if err != nil {
		return nil, nil, err
	}

	if attempt.IsSubmitted() {
		return nil, nil, fmt.Errorf("attempt %s was already submitted: %w", in.AttemptToken, apperrors.ErrConflict)
	}

	questionIDs := make([]uint, 0, len(in.Answers))
	for _, a := range in.Answers {
		questionIDs = append(questionIDs, a.QuestionID)
	}
	questions, err := s.questionRepo.GetByIDsWithChoices(tx, questionIDs)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := buildSubmission(attempt.ID, questions, in.Answers)
	if err != nil {
		return nil, nil, err
	}

	if err := s.attemptRepo.CreateAnswers(tx, outcome.answers); err != nil {
		return nil, nil, err
	}

	submittedAt := time.Now()
	if in.SubmittedAt != nil {
		submittedAt = *in.SubmittedAt
	}
	attempt.Score = outcome.score
	attempt.TotalMarks = outcome.totalMarks
	attempt.SubmittedAt = &submittedAt
	attempt.DurationSeconds = int(submittedAt.Sub(attempt.StartedAt).Seconds())
	if err := s.attemptRepo.FinalizeSubmission(tx, attempt); err != nil {
		return nil, nil, err
	}

	// Вклад в статистику: ровно один вызов на вопрос и на вариант ответа
	for _, ans := range outcome.answers {
		if err := s.statRepo.BumpQuestion(tx, ans.QuestionID, ans.IsCorrect); err != nil {
			return nil, nil, err
		}
	}
	for _, choiceID := range outcome.sortedChoiceIDs() {
		d := outcome.choiceDeltas[choiceID]
		if err := s.statRepo.BumpChoice(tx, choiceID, d.selected, d.wrongSelected); err != nil {
			return nil, nil, err
		}
	}

	return attempt, outcome.answers, nil
}

// GetResult возвращает отправленную попытку с ответами (для повторного
// чтения результата по токену)
func (s *AttemptService) GetResult(token uuid.UUID) (*entity.Attempt, []entity.AttemptAnswer, error) {
	attempt, err := s.attemptRepo.GetByToken(token)
	if err != nil {
		return nil, nil, err
	}
	answers, err := s.attemptRepo.GetAnswers(attempt.ID)
	if err != nil {
		return nil, nil, err
	}
	return attempt, answers, nil
}

// choiceDelta - накопленные за одну отправку изменения счётчиков варианта
type choiceDelta struct {
	selected      int64
	wrongSelected int64
}

// submissionOutcome - результат чистой фазы оценивания
type submissionOutcome struct {
	answers      []entity.AttemptAnswer
	score        float64
	totalMarks   float64
	choiceDeltas map[uint]*choiceDelta
}

// sortedChoiceIDs возвращает затронутые варианты в возрастающем порядке.
// Фиксированный порядок инкрементов исключает взаимные блокировки между
// конкурирующими отправками, задевшими пересекающиеся наборы вариантов.
func (o *submissionOutcome) sortedChoiceIDs() []uint {
	ids := make([]uint, 0, len(o.choiceDeltas))
	for id := range o.choiceDeltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// buildSubmission - чистая фаза отправки: оценивание каждого ответа в
// порядке подачи, накопление итогов и подельтовая агрегация по вариантам.
// Дельты по вариантам суммируются в памяти, чтобы на каждый затронутый
// вариант пришлась одна запись в хранилище, а не по записи на клик.
//
// Ответ на вопрос, отсутствующий в выбранном наборе, и повторный ответ на
// один и тот же вопрос отвергаются с ErrValidation - отправка целиком
// откатывается.
func buildSubmission(attemptID uuid.UUID, questions []entity.Question, answers []SubmitAnswerInput) (*submissionOutcome, error) {
	qmap := make(map[uint]*entity.Question, len(questions))
	for i := range questions {
		qmap[questions[i].ID] = &questions[i]
	}

	outcome := &submissionOutcome{
		answers:      make([]entity.AttemptAnswer, 0, len(answers)),
		choiceDeltas: make(map[uint]*choiceDelta),
	}
	seen := make(map[uint]bool, len(answers))

	for _, item := range answers {
		q, ok := qmap[item.QuestionID]
		if !ok {
			return nil, fmt.Errorf("question %d is not available for this submission: %w",
				item.QuestionID, apperrors.ErrValidation)
		}
		if seen[item.QuestionID] {
			return nil, fmt.Errorf("duplicate answer for question %d: %w",
				item.QuestionID, apperrors.ErrValidation)
		}
		seen[item.QuestionID] = true

		ok, awarded := scoring.Evaluate(q, item.SelectedChoiceIDs)
		outcome.totalMarks += float64(q.Marks)
		outcome.score += awarded

		selected := item.SelectedChoiceIDs
		if selected == nil {
			selected = []uint{}
		}
		outcome.answers = append(outcome.answers, entity.AttemptAnswer{
			AttemptID:         attemptID,
			QuestionID:        q.ID,
			SelectedChoiceIDs: entity.UintArray(selected),
			TextAnswer:        item.TextAnswer,
			IsCorrect:         ok,
			MarksAwarded:      awarded,
			TimeSpent:         item.TimeSpent,
		})

		// Подельтовая агрегация: выбор любого варианта увеличивает selected;
		// выбор варианта, не являющегося правильным, дополнительно wrong.
		// Неизвестный идентификатор варианта считается неправильным выбором.
		correctness := q.ChoiceCorrectness()
		for _, choiceID := range item.SelectedChoiceIDs {
			d, exists := outcome.choiceDeltas[choiceID]
			if !exists {
				d = &choiceDelta{}
				outcome.choiceDeltas[choiceID] = d
			}
			d.selected++
			if !correctness[choiceID] {
				d.wrongSelected++
			}
		}
	}

	return outcome, nil
}
