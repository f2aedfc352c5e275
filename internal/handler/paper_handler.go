package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/internal/service"
)

// PaperHandler обрабатывает запросы, связанные с вариантами теста
type PaperHandler struct {
	paperService *service.PaperService
}

// NewPaperHandler создает новый обработчик вариантов
func NewPaperHandler(paperService *service.PaperService) *PaperHandler {
	return &PaperHandler{paperService: paperService}
}

// PaperRequest представляет запрос на создание или обновление варианта
type PaperRequest struct {
	Title       string             `json:"title" binding:"required,min=3,max=200"`
	Level       *string            `json:"level"`
	Category    *string            `json:"category"`
	Status      string             `json:"status" binding:"omitempty,oneof=Draft Published"`
	QuestionIDs []uint             `json:"question_ids"`
	LevelConfig entity.LevelConfig `json:"level_config"`
}

// CreatePaper обрабатывает запрос на создание варианта
func (h *PaperHandler) CreatePaper(c *gin.Context) {
	var req PaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paper, err := h.paperService.Create(service.CreatePaperInput{
		Title:       req.Title,
		Level:       req.Level,
		Category:    req.Category,
		Status:      req.Status,
		QuestionIDs: req.QuestionIDs,
		LevelConfig: req.LevelConfig,
	})
	if err != nil {
		h.handlePaperError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPaperResponse(paper, true))
}

// GetPaper возвращает вариант с вопросами
func (h *PaperHandler) GetPaper(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	paper, err := h.paperService.GetWithQuestions(uint(id))
	if err != nil {
		h.handlePaperError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaperResponse(paper, true))
}

// ListPapers возвращает пагинированный список вариантов
func (h *PaperHandler) ListPapers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	papers, total, err := h.paperService.List(perPage, (page-1)*perPage)
	if err != nil {
		h.handlePaperError(c, err)
		return
	}

	resp := dto.PaginatedPapersResponse{
		Papers:  make([]dto.PaperResponse, 0, len(papers)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for i := range papers {
		resp.Papers = append(resp.Papers, *dto.NewPaperResponse(&papers[i], false))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdatePaper обрабатывает запрос на обновление варианта
func (h *PaperHandler) UpdatePaper(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	var req PaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paper, err := h.paperService.Update(uint(id), service.CreatePaperInput{
		Title:       req.Title,
		Level:       req.Level,
		Category:    req.Category,
		Status:      req.Status,
		QuestionIDs: req.QuestionIDs,
		LevelConfig: req.LevelConfig,
	})
	if err != nil {
		h.handlePaperError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaperResponse(paper, true))
}

// DeletePaper обрабатывает запрос на удаление варианта
func (h *PaperHandler) DeletePaper(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	if err := h.paperService.Delete(uint(id)); err != nil {
		h.handlePaperError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Paper deleted successfully"})
}

// GeneratePaper подбирает состав вопросов варианта по level_config.
// Состав не сохраняется, каждый вызов даёт новый случайный набор. Отказ
// подбора возвращается полностью: текст по каждому уровню и сводка
// need/got, чтобы оператор видел все проблемы сразу.
func (h *PaperHandler) GeneratePaper(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	paper, questions, _, err := h.paperService.GeneratePaper(uint(id))
	if err != nil {
		var genErr *service.GenerationError
		if errors.As(err, &genErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"detail":  "Failed to generate paper questions",
				"errors":  genErr.Errors,
				"summary": genErr.Summary,
			})
			return
		}
		h.handlePaperError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGeneratedPaperResponse(paper, questions))
}

// handlePaperError обрабатывает ошибки сервиса вариантов
func (h *PaperHandler) handlePaperError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in PaperHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
