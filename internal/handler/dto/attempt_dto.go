package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// StartAttemptResponse представляет открытую попытку
type StartAttemptResponse struct {
	AttemptID    uuid.UUID `json:"attempt_id"`
	AttemptToken uuid.UUID `json:"attempt_token"`
	PaperID      uint      `json:"paper_id"`
	StudentNo    string    `json:"student_no"`
	StartedAt    time.Time `json:"started_at"`
}

// AnswerDetailResponse представляет итог оценивания одного ответа
type AnswerDetailResponse struct {
	QuestionID        uint    `json:"question_id"`
	IsCorrect         bool    `json:"is_correct"`
	MarksAwarded      float64 `json:"marks_awarded"`
	SelectedChoiceIDs []uint  `json:"selected_choice_ids"`
	TextAnswer        string  `json:"text_answer,omitempty"`
}

// SubmitAttemptResponse представляет итог отправленной попытки
type SubmitAttemptResponse struct {
	AttemptID       uuid.UUID              `json:"attempt_id"`
	PaperID         uint                   `json:"paper_id"`
	StudentNo       string                 `json:"student_no"`
	Name            string                 `json:"name"`
	Score           float64                `json:"score"`
	TotalMarks      float64                `json:"total_marks"`
	DurationSeconds int                    `json:"duration_seconds"`
	SubmittedAt     *time.Time             `json:"submitted_at"`
	Details         []AnswerDetailResponse `json:"details"`
}

// NewStartAttemptResponse создает DTO открытой попытки
func NewStartAttemptResponse(attempt *entity.Attempt) *StartAttemptResponse {
	return &StartAttemptResponse{
		AttemptID:    attempt.ID,
		AttemptToken: attempt.AttemptToken,
		PaperID:      attempt.PaperID,
		StudentNo:    attempt.Student.StudentNo,
		StartedAt:    attempt.StartedAt,
	}
}

// NewSubmitAttemptResponse создает DTO итога попытки
func NewSubmitAttemptResponse(attempt *entity.Attempt, student *entity.Student, answers []entity.AttemptAnswer) *SubmitAttemptResponse {
	details := make([]AnswerDetailResponse, 0, len(answers))
	for _, a := range answers {
		details = append(details, AnswerDetailResponse{
			QuestionID:        a.QuestionID,
			IsCorrect:         a.IsCorrect,
			MarksAwarded:      a.MarksAwarded,
			SelectedChoiceIDs: a.SelectedChoiceIDs,
			TextAnswer:        a.TextAnswer,
		})
	}
	return &SubmitAttemptResponse{
		AttemptID:       attempt.ID,
		PaperID:         attempt.PaperID,
		StudentNo:       student.StudentNo,
		Name:            student.Name,
		Score:           attempt.Score,
		TotalMarks:      attempt.TotalMarks,
		DurationSeconds: attempt.DurationSeconds,
		SubmittedAt:     attempt.SubmittedAt,
		Details:         details,
	}
}
