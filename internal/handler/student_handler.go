package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/internal/service"
)

// StudentHandler обрабатывает административные запросы по учащимся
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler создает новый обработчик учащихся
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// GetStudent возвращает учащегося по идентификатору
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	student, err := h.studentService.GetByID(id)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// ListStudents возвращает пагинированный список учащихся
func (h *StudentHandler) ListStudents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	students, total, err := h.studentService.List(perPage, (page-1)*perPage)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	resp := dto.PaginatedStudentsResponse{
		Students: make([]dto.StudentResponse, 0, len(students)),
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}
	for i := range students {
		resp.Students = append(resp.Students, dto.NewStudentResponse(&students[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// handleStudentError обрабатывает ошибки сервиса учащихся
func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in StudentHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
