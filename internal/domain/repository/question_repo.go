package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// QuestionFilter описывает необязательные фильтры списка вопросов
type QuestionFilter struct {
	Level    string
	Category string
	Type     string
	Limit    int
	Offset   int
}

// QuestionRepository определяет методы для работы с пулом вопросов
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	List(filter QuestionFilter) ([]entity.Question, int64, error)
	Update(question *entity.Question) error
	Delete(id uint) error

	// GetByLevel возвращает пул вопросов уровня вместе с вариантами.
	// Используется генератором вариантов.
	GetByLevel(level string) ([]entity.Question, error)

	// GetByIDsWithChoices выполняет один пакетный запрос вопросов с вариантами
	// внутри переданной транзакции. Используется сервисом отправки попытки,
	// чтобы число запросов не зависело от количества ответов.
	GetByIDsWithChoices(tx *gorm.DB, ids []uint) ([]entity.Question, error)
}
