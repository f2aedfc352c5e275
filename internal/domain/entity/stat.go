package entity

// QuestionStat - накопительные счётчики по вопросу: сколько раз отвечали,
// сколько ответов правильных/неправильных. Строка создаётся лениво при
// первом вкладе; счётчики только растут и меняются исключительно
// относительными инкрементами на уровне хранилища.
type QuestionStat struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	QuestionID    uint  `gorm:"not null;uniqueIndex" json:"question_id"`
	AttemptsCount int64 `gorm:"not null;default:0" json:"attempts_count"`
	CorrectCount  int64 `gorm:"not null;default:0" json:"correct_count"`
	WrongCount    int64 `gorm:"not null;default:0" json:"wrong_count"`
}

// TableName определяет имя таблицы для GORM
func (QuestionStat) TableName() string {
	return "question_stats"
}

// ChoiceStat - накопительные счётчики по варианту ответа:
// SelectedCount - сколько раз вариант выбирали (независимо от правильности);
// WrongSelectedCount - сколько раз выбирали вариант, который не является
// правильным (счётчик ошибочных выборов).
type ChoiceStat struct {
	ID                 uint  `gorm:"primaryKey" json:"id"`
	ChoiceID           uint  `gorm:"not null;uniqueIndex" json:"choice_id"`
	SelectedCount      int64 `gorm:"not null;default:0" json:"selected_count"`
	WrongSelectedCount int64 `gorm:"not null;default:0" json:"wrong_selected_count"`
}

// TableName определяет имя таблицы для GORM
func (ChoiceStat) TableName() string {
	return "choice_stats"
}
