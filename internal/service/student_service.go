package service

import (
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// StudentService предоставляет методы для работы с учащимися
type StudentService struct {
	studentRepo repository.StudentRepository
}

// NewStudentService создает новый сервис учащихся
func NewStudentService(studentRepo repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// GetByID возвращает учащегося по идентификатору
func (s *StudentService) GetByID(id uuid.UUID) (*entity.Student, error) {
	return s.studentRepo.GetByID(id)
}

// GetByStudentNo возвращает учащегося по номеру
func (s *StudentService) GetByStudentNo(studentNo string) (*entity.Student, error) {
	return s.studentRepo.GetByStudentNo(studentNo)
}

// List возвращает страницу учащихся и общее количество
func (s *StudentService) List(limit, offset int) ([]entity.Student, int64, error) {
	return s.studentRepo.List(limit, offset)
}
