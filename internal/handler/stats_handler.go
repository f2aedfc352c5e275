package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/internal/service"
)

// StatsHandler обрабатывает административные запросы отчётности
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler создает новый обработчик отчётов
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetPaperStats возвращает отчёт по варианту. Параметр wrong_choices=1
// добавляет к каждому вопросу разбивку ошибочных вариантов ответа.
func (h *StatsHandler) GetPaperStats(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	withWrong := c.Query("wrong_choices") == "1" || c.Query("wrong_choices") == "true"

	report, err := h.statsService.PaperStats(uint(id), withWrong)
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetQuestionChoiceStats возвращает статистику выбора вариантов вопроса
func (h *StatsHandler) GetQuestionChoiceStats(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	report, err := h.statsService.QuestionChoiceStats(uint(id))
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportPaperStats выгружает отчёт по варианту в формате xlsx
func (h *StatsHandler) ExportPaperStats(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	report, err := h.statsService.PaperStats(uint(id), true)
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	h.exportXLSX(c, report, fmt.Sprintf("paper_%d_stats", id))
}

// exportXLSX пишет отчёт в Excel через StreamWriter
func (h *StatsHandler) exportXLSX(c *gin.Context, report *service.PaperStatsReport, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Статистика"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[StatsHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"Вопрос", "Название", "Тип", "Уровень", "Баллы", "Ответов", "Правильных", "Неправильных", "Доля правильных", "Средний балл"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[StatsHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, row := range report.Questions {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		values := []interface{}{
			row.QuestionID,
			row.Name,
			row.Type,
			row.Level,
			row.Marks,
			row.Attempts,
			row.Correct,
			row.Wrong,
			fmt.Sprintf("%.1f%%", row.CorrectRate*100),
			fmt.Sprintf("%.2f", row.AvgMarks),
		}
		if err := sw.SetRow(cell, values); err != nil {
			log.Printf("[StatsHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[StatsHandler] Ошибка завершения StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize Excel file"})
		return
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[StatsHandler] Ошибка отправки файла: %v", err)
	}
}

// handleStatsError обрабатывает ошибки сервиса отчётов
func (h *StatsHandler) handleStatsError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in StatsHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
