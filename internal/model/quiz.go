package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	ContentItemID uint       `gorm:"uniqueIndex;type:bigint unsigned" json:"contentItemId"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	PassingScore  *int       `json:"passingScore,omitempty"` // 及格线（百分比 0-100），为空表示不设及格线
	Questions     []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID  uint     `gorm:"index;type:bigint unsigned" json:"quizId"`
	Content string   `gorm:"type:text;not null" json:"content"`
	Order   int      `gorm:"default:0" json:"order"`
	Options []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Option
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (Option) TableName() string {
	return "options"
}
