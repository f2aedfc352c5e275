package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками и их ответами
type AttemptRepository interface {
	Create(attempt *entity.Attempt) error
	GetByToken(token uuid.UUID) (*entity.Attempt, error)

	// LockByToken получает попытку по токену под эксклюзивной блокировкой
	// строки (SELECT ... FOR UPDATE) внутри переданной транзакции.
	// Сериализует конкурирующие отправки одной и той же попытки.
	LockByToken(tx *gorm.DB, token uuid.UUID) (*entity.Attempt, error)

	// CreateAnswers вставляет все ответы попытки одной пакетной записью
	CreateAnswers(tx *gorm.DB, answers []entity.AttemptAnswer) error

	// FinalizeSubmission записывает итоги попытки одним обновлением:
	// score, total_marks, submitted_at, duration_seconds
	FinalizeSubmission(tx *gorm.DB, attempt *entity.Attempt) error

	GetAnswers(attemptID uuid.UUID) ([]entity.AttemptAnswer, error)
}
