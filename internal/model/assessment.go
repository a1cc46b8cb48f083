package model

// Topic 学前测评的知识主题，题目与主题多对多关联
// swagger:model Topic
type Topic struct {
	BaseModel
	Code        string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (Topic) TableName() string {
	return "topics"
}

// AssessmentQuestion 学前测评题库中的题目，不属于任何课程
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	Content     string             `gorm:"type:text;not null" json:"content"`
	Explanation string             `gorm:"type:text" json:"explanation"`
	Order       int                `gorm:"default:0" json:"order"`
	Topics      []Topic            `gorm:"many2many:assessment_question_topics" json:"topics,omitempty"`
	Options     []AssessmentOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// swagger:model AssessmentOption
type AssessmentOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (AssessmentOption) TableName() string {
	return "assessment_options"
}
