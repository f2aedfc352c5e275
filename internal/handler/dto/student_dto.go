package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// StudentResponse представляет учащегося в формате для ответа клиенту
type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StudentNo string    `json:"student_no"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PaginatedStudentsResponse представляет пагинированный список учащихся
type PaginatedStudentsResponse struct {
	Students []StudentResponse `json:"students"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

// NewStudentResponse создает DTO учащегося
func NewStudentResponse(s *entity.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		Name:      s.Name,
		StudentNo: s.StudentNo,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
	}
}
