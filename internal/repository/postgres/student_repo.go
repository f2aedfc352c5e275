package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// Код ошибки PostgreSQL "unique_violation"
const pgUniqueViolation = "23505"

// StudentRepo реализует repository.StudentRepository
type StudentRepo struct {
	db *gorm.DB
}

// NewStudentRepo создает новый репозиторий учащихся
func NewStudentRepo(db *gorm.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// GetByID возвращает учащегося по ID
func (r *StudentRepo) GetByID(id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := r.db.First(&student, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetByStudentNo возвращает учащегося по уникальному номеру
func (r *StudentRepo) GetByStudentNo(studentNo string) (*entity.Student, error) {
	var student entity.Student
	err := r.db.Where("student_no = ?", studentNo).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// List возвращает страницу учащихся
func (r *StudentRepo) List(limit, offset int) ([]entity.Student, int64, error) {
	var students []entity.Student
	var total int64

	if err := r.db.Model(&entity.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&students).Error
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// Update обновляет данные учащегося
func (r *StudentRepo) Update(student *entity.Student) error {
	return r.db.Save(student).Error
}

// GetOrCreate возвращает учащегося по student_no, создавая запись при
// отсутствии. Гонку одновременных первых обращений разрешает уникальный
// индекс: проигравшая вставка получает unique_violation и перечитывает строку.
func (r *StudentRepo) GetOrCreate(student *entity.Student) (*entity.Student, error) {
	existing, err := r.GetByStudentNo(student.StudentNo)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if err := r.db.Create(student).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return r.GetByStudentNo(student.StudentNo)
		}
		return nil, err
	}
	return student, nil
}
