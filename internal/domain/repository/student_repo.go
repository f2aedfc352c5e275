package repository

import (
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// StudentRepository определяет методы для работы с учащимися
type StudentRepository interface {
	GetByID(id uuid.UUID) (*entity.Student, error)
	GetByStudentNo(studentNo string) (*entity.Student, error)
	List(limit, offset int) ([]entity.Student, int64, error)
	Update(student *entity.Student) error

	// GetOrCreate возвращает учащегося по student_no, создавая запись при
	// отсутствии. Гонка одновременных первых обращений разрешается уникальным
	// индексом по student_no: проигравшая вставка перечитывает строку.
	GetOrCreate(student *entity.Student) (*entity.Student, error)
}
