package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Статусы варианта теста
const (
	PaperStatusDraft     = "Draft"
	PaperStatusPublished = "Published"
)

// Режимы отбора вопросов в level_config
const (
	SelectionModeCount = "count"
	SelectionModeMarks = "marks"
)

// LevelRule описывает правило отбора вопросов для одного уровня:
// либо ровно ExamQuestions вопросов (mode=count),
// либо подмножество с суммой баллов ровно TotalMarks (mode=marks).
type LevelRule struct {
	Mode          string `json:"mode"`
	ExamQuestions int    `json:"exam_questions,omitempty"`
	TotalMarks    int    `json:"total_marks,omitempty"`
}

// LevelConfig - отображение "уровень -> правило отбора", хранится в JSONB
type LevelConfig map[string]LevelRule

// Scan реализует интерфейс sql.Scanner для LevelConfig
func (c *LevelConfig) Scan(value interface{}) error {
	if value == nil {
		*c = LevelConfig{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*c = LevelConfig{}
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// Value реализует интерфейс driver.Valuer для LevelConfig
func (c LevelConfig) Value() (driver.Value, error) {
	if len(c) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// TestPaper представляет вариант теста.
// Поле Questions - закреплённый список вопросов (негенеративный путь);
// LevelConfig - декларативные правила для генерации по требованию,
// от закреплённого списка не зависит.
type TestPaper struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Level       *string     `gorm:"size:50" json:"level,omitempty"`
	Category    *string     `gorm:"size:100" json:"category,omitempty"`
	Status      string      `gorm:"size:20;not null;default:Draft" json:"status"`
	Questions   []Question  `gorm:"many2many:test_paper_questions" json:"questions,omitempty"`
	LevelConfig LevelConfig `gorm:"type:jsonb" json:"level_config"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (TestPaper) TableName() string {
	return "test_papers"
}

// TotalMarks возвращает сумму баллов закреплённых вопросов
func (p *TestPaper) TotalMarks() int {
	total := 0
	for _, q := range p.Questions {
		total += q.Marks
	}
	return total
}
