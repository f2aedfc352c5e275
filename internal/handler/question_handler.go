package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/domain/repository"
	"github.com/yourusername/assessment-api/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с пулом вопросов
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ChoiceRequest представляет вариант ответа в запросе
type ChoiceRequest struct {
	Text      string `json:"text" binding:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionRequest представляет запрос на создание или обновление вопроса
type QuestionRequest struct {
	Name         string          `json:"name" binding:"required,max=200"`
	Type         string          `json:"type" binding:"required"`
	Level        string          `json:"level" binding:"required"`
	Category     string          `json:"category" binding:"omitempty,max=100"`
	Marks        int             `json:"marks" binding:"required,min=1,max=100"`
	QuestionText string          `json:"question_text" binding:"required"`
	Choices      []ChoiceRequest `json:"choices" binding:"required,min=2,dive"`
}

func (r QuestionRequest) toInput() service.CreateQuestionInput {
	in := service.CreateQuestionInput{
		Name:         r.Name,
		Type:         r.Type,
		Level:        r.Level,
		Category:     r.Category,
		Marks:        r.Marks,
		QuestionText: r.QuestionText,
	}
	for _, c := range r.Choices {
		in.Choices = append(in.Choices, service.ChoiceInput{Text: c.Text, IsCorrect: c.IsCorrect})
	}
	return in
}

// CreateQuestion обрабатывает запрос на создание вопроса
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.Create(req.toInput())
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// GetQuestion возвращает вопрос с вариантами ответов
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	question, err := h.questionService.GetByID(uint(id))
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// ListQuestions возвращает пагинированный список вопросов по фильтру
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	filter := repository.QuestionFilter{
		Level:    c.Query("level"),
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}
	questions, total, err := h.questionService.List(filter)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	resp := dto.PaginatedQuestionsResponse{
		Questions: make([]dto.QuestionResponse, 0, len(questions)),
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}
	for i := range questions {
		resp.Questions = append(resp.Questions, dto.NewQuestionResponse(&questions[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateQuestion обрабатывает запрос на обновление вопроса
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.Update(uint(id), req.toInput())
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// DeleteQuestion обрабатывает запрос на удаление вопроса
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	if err := h.questionService.Delete(uint(id)); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// handleQuestionError обрабатывает ошибки сервиса вопросов
func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuestionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
