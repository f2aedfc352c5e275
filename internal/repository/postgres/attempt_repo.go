package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create создает новую попытку в открытом состоянии
func (r *AttemptRepo) Create(attempt *entity.Attempt) error {
	return r.db.Create(attempt).Error
}

// GetByToken возвращает попытку по токену вместе с данными учащегося
func (r *AttemptRepo) GetByToken(token uuid.UUID) (*entity.Attempt, error) {
	var attempt entity.Attempt
	err := r.db.Preload("Student").Where("attempt_token = ?", token).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// LockByToken получает попытку под эксклюзивной блокировкой строки
// (SELECT ... FOR UPDATE). Конкурирующая отправка того же токена будет
// ждать на этой строке и после коммита первой увидит submitted_at.
func (r *AttemptRepo) LockByToken(tx *gorm.DB, token uuid.UUID) (*entity.Attempt, error) {
	var attempt entity.Attempt
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("attempt_token = ?", token).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// CreateAnswers вставляет все ответы попытки одной пакетной записью
func (r *AttemptRepo) CreateAnswers(tx *gorm.DB, answers []entity.AttemptAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return tx.Create(&answers).Error
}

// FinalizeSubmission записывает итоги попытки одним обновлением
func (r *AttemptRepo) FinalizeSubmission(tx *gorm.DB, attempt *entity.Attempt) error {
	return tx.Model(&entity.Attempt{}).
		Where("id = ?", attempt.ID).
		Updates(map[string]interface{}{
			"score":            attempt.Score,
			"total_marks":      attempt.TotalMarks,
			"submitted_at":     attempt.SubmittedAt,
			"duration_seconds": attempt.DurationSeconds,
		}).Error
}

// GetAnswers возвращает ответы попытки в порядке создания
func (r *AttemptRepo) GetAnswers(attemptID uuid.UUID) ([]entity.AttemptAnswer, error) {
	var answers []entity.AttemptAnswer
	err := r.db.Where("attempt_id = ?", attemptID).Order("id").Find(&answers).Error
	return answers, err
}
