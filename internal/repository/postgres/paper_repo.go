package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// PaperRepo реализует repository.PaperRepository
type PaperRepo struct {
	db *gorm.DB
}

// NewPaperRepo создает новый репозиторий вариантов теста
func NewPaperRepo(db *gorm.DB) *PaperRepo {
	return &PaperRepo{db: db}
}

// Create создает новый вариант теста
func (r *PaperRepo) Create(paper *entity.TestPaper) error {
	return r.db.Create(paper).Error
}

// GetByID возвращает вариант без закреплённых вопросов
func (r *PaperRepo) GetByID(id uint) (*entity.TestPaper, error) {
	var paper entity.TestPaper
	err := r.db.First(&paper, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &paper, nil
}

// GetWithQuestions возвращает вариант вместе с закреплёнными вопросами
// и их вариантами ответа
func (r *PaperRepo) GetWithQuestions(id uint) (*entity.TestPaper, error) {
	var paper entity.TestPaper
	err := r.db.Preload("Questions.Choices").First(&paper, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &paper, nil
}

// List возвращает страницу вариантов теста
func (r *PaperRepo) List(limit, offset int) ([]entity.TestPaper, int64, error) {
	var papers []entity.TestPaper
	var total int64

	if err := r.db.Model(&entity.TestPaper{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&papers).Error
	if err != nil {
		return nil, 0, err
	}
	return papers, total, nil
}

// Update обновляет поля варианта (без связи с вопросами)
func (r *PaperRepo) Update(paper *entity.TestPaper) error {
	return r.db.Omit("Questions").Save(paper).Error
}

// ReplaceQuestions заменяет закреплённый список вопросов варианта
func (r *PaperRepo) ReplaceQuestions(paperID uint, questionIDs []uint) error {
	paper := entity.TestPaper{ID: paperID}

	if len(questionIDs) == 0 {
		return r.db.Model(&paper).Association("Questions").Clear()
	}

	var questions []entity.Question
	if err := r.db.Where("id IN ?", questionIDs).Find(&questions).Error; err != nil {
		return err
	}
	if len(questions) != len(questionIDs) {
		return apperrors.ErrValidation
	}
	return r.db.Model(&paper).Association("Questions").Replace(questions)
}

// Delete удаляет вариант теста
func (r *PaperRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.TestPaper{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
