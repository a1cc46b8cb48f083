package service

import (
	"testing"

	"edulearn_backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func assessmentQuestion(id uint, opts ...model.AssessmentOption) model.AssessmentQuestion {
	return model.AssessmentQuestion{
		BaseModel: model.BaseModel{ID: id},
		Content:   "question",
		Options:   opts,
	}
}

func assessmentOption(id uint, order int, correct bool) model.AssessmentOption {
	return model.AssessmentOption{
		BaseModel: model.BaseModel{ID: id},
		Text:      "option",
		IsCorrect: correct,
		Order:     order,
	}
}

func buildPool(n int) []model.AssessmentQuestion {
	pool := make([]model.AssessmentQuestion, n)
	for i := 0; i < n; i++ {
		pool[i] = assessmentQuestion(uint(i + 1))
	}
	return pool
}

func questionIDs(questions []model.AssessmentQuestion) map[uint]bool {
	ids := make(map[uint]bool, len(questions))
	for _, q := range questions {
		ids[q.ID] = true
	}
	return ids
}

func TestSampleQuestions(t *testing.T) {
	pool := buildPool(10)

	t.Run("returns requested count", func(t *testing.T) {
		sampled := sampleQuestions(pool, 5)
		assert.Len(t, sampled, 5)
		// 无放回：不会重复
		assert.Len(t, questionIDs(sampled), 5)
	})

	t.Run("count larger than pool returns whole pool", func(t *testing.T) {
		sampled := sampleQuestions(pool, 50)
		assert.Len(t, sampled, 10)
		assert.Len(t, questionIDs(sampled), 10)
	})

	t.Run("zero or negative count", func(t *testing.T) {
		assert.Nil(t, sampleQuestions(pool, 0))
		assert.Nil(t, sampleQuestions(pool, -1))
	})

	t.Run("empty pool", func(t *testing.T) {
		assert.Nil(t, sampleQuestions(nil, 5))
	})

	t.Run("does not mutate the pool", func(t *testing.T) {
		before := make([]uint, len(pool))
		for i, q := range pool {
			before[i] = q.ID
		}
		sampleQuestions(pool, 10)
		for i, q := range pool {
			assert.Equal(t, before[i], q.ID)
		}
	})

	t.Run("sampled questions come from the pool", func(t *testing.T) {
		valid := questionIDs(pool)
		for _, q := range sampleQuestions(pool, 7) {
			assert.True(t, valid[q.ID])
		}
	})
}

func TestGradeAssessment(t *testing.T) {
	questions := []model.AssessmentQuestion{
		assessmentQuestion(1, assessmentOption(11, 0, true), assessmentOption(12, 1, false)),
		assessmentQuestion(2, assessmentOption(21, 0, false), assessmentOption(22, 1, true)),
		assessmentQuestion(3, assessmentOption(31, 0, true), assessmentOption(32, 1, false)),
	}

	tests := []struct {
		name      string
		answers   map[uint]uint
		wantScore int
	}{
		{"all correct", map[uint]uint{1: 11, 2: 22, 3: 31}, 3},
		{"partially correct", map[uint]uint{1: 11, 2: 21, 3: 31}, 2},
		{"unanswered counts as wrong", map[uint]uint{1: 11}, 1},
		{"empty answers", map[uint]uint{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, total := gradeAssessment(questions, tt.answers)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, 3, total)
		})
	}
}

func TestCanonicalAssessmentOptionFirstByOrder(t *testing.T) {
	options := []model.AssessmentOption{
		assessmentOption(5, 3, true),
		assessmentOption(6, 1, true),
		assessmentOption(7, 2, false),
	}

	id, ok := canonicalAssessmentOption(options)
	assert.True(t, ok)
	assert.Equal(t, uint(6), id)
}
