package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/internal/service"
)

// AttemptHandler обрабатывает публичные запросы экзамена: старт попытки,
// отправка ответов, чтение результата
type AttemptHandler struct {
	attemptService *service.AttemptService
	studentService *service.StudentService
}

// NewAttemptHandler создает новый обработчик попыток
func NewAttemptHandler(attemptService *service.AttemptService, studentService *service.StudentService) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
		studentService: studentService,
	}
}

// StartAttemptRequest представляет запрос на старт попытки
type StartAttemptRequest struct {
	PaperID   uint       `json:"paper_id" binding:"required"`
	StudentNo string     `json:"student_no" binding:"required,max=64"`
	Name      string     `json:"name" binding:"required,max=120"`
	Email     string     `json:"email" binding:"omitempty,email"`
	StartedAt *time.Time `json:"started_at"`
}

// SubmitAnswerRequest представляет один ответ в составе отправки
type SubmitAnswerRequest struct {
	QuestionID        uint   `json:"question_id" binding:"required"`
	SelectedChoiceIDs []uint `json:"selected_choice_ids"`
	TextAnswer        string `json:"text_answer"`
	TimeSpent         int    `json:"time_spent" binding:"omitempty,min=0"`
}

// SubmitAttemptRequest представляет запрос на отправку попытки.
// Поле duration_seconds принимается для совместимости, но не используется:
// длительность всегда вычисляется по временным меткам на сервере.
type SubmitAttemptRequest struct {
	AttemptToken    uuid.UUID             `json:"attempt_token" binding:"required"`
	SubmittedAt     *time.Time            `json:"submitted_at"`
	DurationSeconds int                   `json:"duration_seconds"`
	Answers         []SubmitAnswerRequest `json:"answers" binding:"required,min=1,dive"`
}

// StartAttempt обрабатывает запрос на старт попытки
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	var req StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := h.attemptService.Start(service.StartAttemptInput{
		PaperID:   req.PaperID,
		StudentNo: req.StudentNo,
		Name:      req.Name,
		Email:     req.Email,
		StartedAt: req.StartedAt,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewStartAttemptResponse(attempt))
}

// SubmitAttempt обрабатывает отправку ответов попытки
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	var req SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]service.SubmitAnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, service.SubmitAnswerInput{
			QuestionID:        a.QuestionID,
			SelectedChoiceIDs: a.SelectedChoiceIDs,
			TextAnswer:        a.TextAnswer,
			TimeSpent:         a.TimeSpent,
		})
	}

	attempt, attemptAnswers, err := h.attemptService.Submit(service.SubmitAttemptInput{
		AttemptToken: req.AttemptToken,
		SubmittedAt:  req.SubmittedAt,
		Answers:      answers,
	})
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	student, err := h.studentService.GetByID(attempt.StudentID)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmitAttemptResponse(attempt, student, attemptAnswers))
}

// GetResult возвращает результат отправленной попытки по токену
func (h *AttemptHandler) GetResult(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attempt token"})
		return
	}

	attempt, answers, err := h.attemptService.GetResult(token)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}
	if !attempt.IsSubmitted() {
		c.JSON(http.StatusConflict, gin.H{"error": "Attempt is not submitted yet"})
		return
	}

	student, err := h.studentService.GetByID(attempt.StudentID)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmitAttemptResponse(attempt, student, answers))
}

// handleAttemptError обрабатывает ошибки сервиса попыток
func (h *AttemptHandler) handleAttemptError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in AttemptHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
