package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос вместе с вариантами ответа
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос с вариантами по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Preload("Choices").First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// List возвращает страницу вопросов с необязательными фильтрами
func (r *QuestionRepo) List(filter repository.QuestionFilter) ([]entity.Question, int64, error) {
	var questions []entity.Question
	var total int64

	query := r.db.Model(&entity.Question{})
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Choices").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// Update обновляет вопрос. Варианты заменяются целиком: старые удаляются,
// новые создаются вместе с вопросом.
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&entity.Choice{}).Error; err != nil {
			return err
		}
		return tx.Save(question).Error
	})
}

// Delete удаляет вопрос (варианты каскадно)
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetByLevel возвращает пул вопросов уровня вместе с вариантами
func (r *QuestionRepo) GetByLevel(level string) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Preload("Choices").Where("level = ?", level).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetByIDsWithChoices возвращает вопросы с вариантами одним пакетным запросом
// внутри переданной транзакции. Число запросов не зависит от числа ответов.
func (r *QuestionRepo) GetByIDsWithChoices(tx *gorm.DB, ids []uint) ([]entity.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []entity.Question
	err := tx.Preload("Choices").Where("id IN ?", ids).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
