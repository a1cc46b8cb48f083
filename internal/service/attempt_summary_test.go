package service

import (
	"fmt"
	"testing"
	"time"

	"edulearn_backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func attempt(quizID uint, score, total int, submittedAt time.Time) model.QuizAttempt {
	return model.QuizAttempt{
		UUIDBase:    model.UUIDBase{ID: fmt.Sprintf("attempt-%d-%d-%d", quizID, score, total)},
		QuizID:      quizID,
		Score:       score,
		TotalScore:  total,
		SubmittedAt: submittedAt,
	}
}

func TestSummarizeAttemptsEmpty(t *testing.T) {
	summary := SummarizeAttempts(nil, nil)

	assert.Equal(t, 0, summary.TotalAttempts)
	assert.Equal(t, 0.0, summary.AverageScore)
	assert.Equal(t, 0.0, summary.BestScore)
	assert.NotNil(t, summary.RecentAttempts)
	assert.Empty(t, summary.RecentAttempts)
}

func TestSummarizeAttempts(t *testing.T) {
	now := time.Now()
	attempts := []model.QuizAttempt{
		attempt(1, 3, 4, now),                    // 75%
		attempt(1, 2, 4, now.Add(-time.Hour)),    // 50%
		attempt(1, 4, 4, now.Add(-2*time.Hour)),  // 100%
	}

	summary := SummarizeAttempts(attempts, nil)

	assert.Equal(t, 3, summary.TotalAttempts)
	assert.Equal(t, 75.0, summary.AverageScore)
	assert.Equal(t, 100.0, summary.BestScore)
	assert.Len(t, summary.RecentAttempts, 3)
	// 最近记录保持传入的倒序
	assert.Equal(t, 75, summary.RecentAttempts[0].Percentage)
	assert.Equal(t, 50, summary.RecentAttempts[1].Percentage)
	assert.Equal(t, 100, summary.RecentAttempts[2].Percentage)
}

func TestSummarizeAttemptsAverageTwoDecimals(t *testing.T) {
	now := time.Now()
	attempts := []model.QuizAttempt{
		attempt(1, 1, 3, now), // 33%
		attempt(1, 2, 3, now), // 67%
		attempt(1, 3, 3, now), // 100%
	}

	summary := SummarizeAttempts(attempts, nil)

	// (33+67+100)/3 = 66.666... -> 66.67
	assert.Equal(t, 66.67, summary.AverageScore)
}

func TestSummarizeAttemptsRecentLimit(t *testing.T) {
	now := time.Now()
	var attempts []model.QuizAttempt
	for i := 0; i < RecentAttemptLimit+3; i++ {
		attempts = append(attempts, attempt(1, i, 10, now.Add(-time.Duration(i)*time.Hour)))
	}

	summary := SummarizeAttempts(attempts, nil)

	assert.Equal(t, RecentAttemptLimit+3, summary.TotalAttempts)
	assert.Len(t, summary.RecentAttempts, RecentAttemptLimit)
	// 最近的一条在最前
	assert.Equal(t, 0, summary.RecentAttempts[0].Score)
}

func TestSummarizeAttemptsUsesStoredTotals(t *testing.T) {
	now := time.Now()
	// 两条记录的测验题数不同：历史成绩各按自己提交时的总数换算
	attempts := []model.QuizAttempt{
		attempt(1, 4, 5, now),  // 80%
		attempt(1, 3, 4, now),  // 75%
	}

	summary := SummarizeAttempts(attempts, nil)

	assert.Equal(t, 77.5, summary.AverageScore)
	assert.Equal(t, 80.0, summary.BestScore)
}

func TestSummarizeAttemptsQuizTitles(t *testing.T) {
	now := time.Now()
	attempts := []model.QuizAttempt{
		attempt(1, 1, 2, now),
		attempt(2, 2, 2, now),
	}
	titles := map[uint]string{1: "指针基础", 2: "循环结构"}

	summary := SummarizeAttempts(attempts, titles)

	assert.Equal(t, "指针基础", summary.RecentAttempts[0].QuizTitle)
	assert.Equal(t, "循环结构", summary.RecentAttempts[1].QuizTitle)
}

func TestAttemptPercentage(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{0, 0, 0},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
	}

	for _, tt := range tests {
		a := model.QuizAttempt{Score: tt.score, TotalScore: tt.total}
		assert.Equal(t, tt.want, a.Percentage(), "Percentage of %d/%d", tt.score, tt.total)
	}
}
