package repository

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// PaperRepository определяет методы для работы с вариантами теста
type PaperRepository interface {
	Create(paper *entity.TestPaper) error
	GetByID(id uint) (*entity.TestPaper, error)
	GetWithQuestions(id uint) (*entity.TestPaper, error)
	List(limit, offset int) ([]entity.TestPaper, int64, error)
	Update(paper *entity.TestPaper) error
	ReplaceQuestions(paperID uint, questionIDs []uint) error
	Delete(id uint) error
}
