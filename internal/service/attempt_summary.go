package service

import (
	"edulearn_backend/internal/model"
	"math"
	"time"
)

// RecentAttemptLimit 摘要中“最近记录”条数上限
const RecentAttemptLimit = 5

type AttemptView struct {
	ID          string    `json:"id"`
	QuizID      uint      `json:"quizId"`
	QuizTitle   string    `json:"quizTitle,omitempty"`
	Score       int       `json:"score"`
	TotalScore  int       `json:"totalScore"`
	Percentage  int       `json:"percentage"`
	Feedback    string    `json:"feedback,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// AttemptSummary 一组评分记录的汇总视图
type AttemptSummary struct {
	TotalAttempts  int           `json:"totalAttempts"`
	AverageScore   float64       `json:"averageScore"`
	BestScore      float64       `json:"bestScore"`
	RecentAttempts []AttemptView `json:"recentAttempts"`
}

// SummarizeAttempts 汇总一组评分记录：总次数、平均百分比（两位小数）、
// 最高百分比、最近 5 次投影。attempts 需按提交时间倒序传入；
// 空集合返回全零摘要而不是错误。quizTitles 可为 nil，仅跨测验汇总时需要。
func SummarizeAttempts(attempts []model.QuizAttempt, quizTitles map[uint]string) AttemptSummary {
	summary := AttemptSummary{
		RecentAttempts: []AttemptView{},
	}
	if len(attempts) == 0 {
		return summary
	}

	summary.TotalAttempts = len(attempts)

	sum := 0
	best := 0
	for _, a := range attempts {
		// 百分比一律用记录上存储的 Score/TotalScore 推导，
		// 测验后来被编辑也不影响历史成绩
		p := a.Percentage()
		sum += p
		if p > best {
			best = p
		}
	}

	summary.AverageScore = math.Round(float64(sum)/float64(len(attempts))*100) / 100
	summary.BestScore = float64(best)

	limit := RecentAttemptLimit
	if len(attempts) < limit {
		limit = len(attempts)
	}
	for _, a := range attempts[:limit] {
		view := AttemptView{
			ID:          a.ID,
			QuizID:      a.QuizID,
			Score:       a.Score,
			TotalScore:  a.TotalScore,
			Percentage:  a.Percentage(),
			Feedback:    a.Feedback,
			SubmittedAt: a.SubmittedAt,
		}
		if quizTitles != nil {
			view.QuizTitle = quizTitles[a.QuizID]
		}
		summary.RecentAttempts = append(summary.RecentAttempts, view)
	}

	return summary
}
