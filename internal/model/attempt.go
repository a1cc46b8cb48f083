package model

import (
	"encoding/json"
	"time"
)

// QuizAttempt 一次测验提交的评分记录。只追加，评分后不再修改：
// TotalScore 固定为提交时刻测验的题目数，之后教师修改题目不影响历史记录。
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	QuizID      uint            `gorm:"index;type:bigint unsigned" json:"quizId"`
	UserID      uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	User        *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Score       int             `gorm:"default:0" json:"score"`
	TotalScore  int             `gorm:"default:0" json:"totalScore"`
	Answers     json.RawMessage `gorm:"type:json" json:"answers"` // JSON: questionId -> optionId
	Feedback    string          `gorm:"type:text" json:"feedback"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// Percentage 按提交时存储的 Score/TotalScore 计算百分比（四舍五入取整）。
// 永远不要用测验当前的题目数重新计算，否则历史成绩会被追溯性改写。
func (a *QuizAttempt) Percentage() int {
	if a.TotalScore == 0 {
		return 0
	}
	return int(float64(a.Score)/float64(a.TotalScore)*100 + 0.5)
}
