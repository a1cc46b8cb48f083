package service

import (
	"edulearn_backend/internal/model"
)

// GradeQuiz 对一次提交评分。questions 为测验当前的全部题目（含选项），
// answers 为 题目ID -> 所选选项ID；未作答的题目按答错计，不报错。
// 返回答对题数与题目总数，总数固定为调用时刻的题目数。
func GradeQuiz(questions []model.Question, answers map[uint]uint) (score, totalScore int) {
	totalScore = len(questions)
	for _, q := range questions {
		correctID, ok := canonicalCorrectOption(q.Options)
		if !ok {
			// 没有标记正确答案的题目永远不得分
			continue
		}
		if chosen, answered := answers[q.ID]; answered && chosen == correctID {
			score++
		}
	}
	return score, totalScore
}

// canonicalCorrectOption 选出题目的标准答案：按显示顺序第一个 IsCorrect 的选项。
// 数据里出现零个或多个正确选项时不报错，多个取第一个，零个返回 false。
func canonicalCorrectOption(options []model.Option) (uint, bool) {
	found := false
	var bestID uint
	var bestOrder int
	for _, opt := range options {
		if !opt.IsCorrect {
			continue
		}
		if !found || opt.Order < bestOrder || (opt.Order == bestOrder && opt.ID < bestID) {
			found = true
			bestID = opt.ID
			bestOrder = opt.Order
		}
	}
	return bestID, found
}

// RoundPercentage 四舍五入的整数百分比。total 为 0 时返回 0，
// 空测验是否视为通过由调用方决定。
func RoundPercentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(score)/float64(total)*100 + 0.5)
}
